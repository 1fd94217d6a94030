package service

import (
	"context"

	"ecoroute/internal/models"
)

// mockUsersRepo is a lightweight in-test mock for repository.Users.
// Unset function fields behave like an empty store.
type mockUsersRepo struct {
	CreateFn        func(u models.User) (int, error)
	GetByIDFn       func(id int) (*models.User, error)
	GetByEmailFn    func(email string) (*models.User, error)
	GetByUsernameFn func(username string) (*models.User, error)
	UpdateFn        func(u models.User) error
	ListFn          func() ([]models.User, error)

	createCalls []models.User
	updateCalls []models.User
}

func (m *mockUsersRepo) Create(_ context.Context, u models.User) (int, error) {
	m.createCalls = append(m.createCalls, u)
	if m.CreateFn == nil {
		return 1, nil
	}
	return m.CreateFn(u)
}

func (m *mockUsersRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(email)
}

func (m *mockUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFn == nil {
		return nil, nil
	}
	return m.GetByUsernameFn(username)
}

func (m *mockUsersRepo) Update(_ context.Context, u models.User) error {
	m.updateCalls = append(m.updateCalls, u)
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(u)
}

func (m *mockUsersRepo) List(_ context.Context) ([]models.User, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn()
}

// mockRoutesRepo is a lightweight in-test mock for repository.Routes.
type mockRoutesRepo struct {
	CreateFn       func(r models.EcoRoute) error
	GetByIDFn      func(id string) (*models.EcoRoute, error)
	ListFn         func() ([]models.EcoRoute, error)
	ListByRegionFn func(region string) ([]models.EcoRoute, error)
	UpdateFn       func(r models.EcoRoute) error
	DeleteFn       func(id string) (bool, error)

	createCalls []models.EcoRoute
	updateCalls []models.EcoRoute
	lastRegion  string
}

func (m *mockRoutesRepo) Create(_ context.Context, r models.EcoRoute) error {
	m.createCalls = append(m.createCalls, r)
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(r)
}

func (m *mockRoutesRepo) GetByID(_ context.Context, id string) (*models.EcoRoute, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockRoutesRepo) List(_ context.Context) ([]models.EcoRoute, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn()
}

func (m *mockRoutesRepo) ListByRegion(_ context.Context, region string) ([]models.EcoRoute, error) {
	m.lastRegion = region
	if m.ListByRegionFn == nil {
		return nil, nil
	}
	return m.ListByRegionFn(region)
}

func (m *mockRoutesRepo) Update(_ context.Context, r models.EcoRoute) error {
	m.updateCalls = append(m.updateCalls, r)
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(r)
}

func (m *mockRoutesRepo) Delete(_ context.Context, id string) (bool, error) {
	if m.DeleteFn == nil {
		return false, nil
	}
	return m.DeleteFn(id)
}

// shared pointer helpers for RouteParams in tests
func strPtr(s string) *string                   { return &s }
func floatPtr(f float64) *float64               { return &f }
func intPtr(i int) *int                         { return &i }
func locPtr(l models.Location) *models.Location { return &l }
