package handlers

import (
	"context"
	"net/http"

	"ecoroute/internal/models"
	"ecoroute/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerToken string
	registerUser  *models.User
	registerErr   error
	loginToken    string
	loginUser     *models.User
	loginErr      error
	parseID       int
	parseErr      error
	profileUser   *models.User
	profileErr    error
	updatedUser   *models.User
	updateErr     error

	lastRegister   service.RegisterInput
	lastLoginEmail string
	lastParseToken string
	lastUpdate     service.ProfileUpdate
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (string, *models.User, error) {
	m.lastRegister = in
	return m.registerToken, m.registerUser, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, _ string) (string, *models.User, error) {
	m.lastLoginEmail = email
	return m.loginToken, m.loginUser, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) GetProfile(_ context.Context, _ int) (*models.User, error) {
	return m.profileUser, m.profileErr
}

func (m *mockAuth) UpdateProfile(_ context.Context, _ int, in service.ProfileUpdate) (*models.User, error) {
	m.lastUpdate = in
	return m.updatedUser, m.updateErr
}

func (m *mockAuth) EnsureAdmin(_ context.Context, _, _, _ string) error { return nil }

type mockRoutes struct {
	listResp   []models.EcoRoute
	listErr    error
	getResp    *models.EcoRoute
	getErr     error
	regionResp []models.EcoRoute
	regionErr  error
	createResp *models.EcoRoute
	createErr  error
	updateResp *models.EcoRoute
	updateErr  error
	deleteErr  error

	lastRegion   string
	lastCreate   service.RouteParams
	lastUpdateID string
	lastUpdate   service.RouteParams
	lastDeleteID string
}

func (m *mockRoutes) List(_ context.Context) ([]models.EcoRoute, error) {
	return m.listResp, m.listErr
}

func (m *mockRoutes) GetByID(_ context.Context, _ string) (*models.EcoRoute, error) {
	return m.getResp, m.getErr
}

func (m *mockRoutes) ListByRegion(_ context.Context, code string) ([]models.EcoRoute, error) {
	m.lastRegion = code
	return m.regionResp, m.regionErr
}

func (m *mockRoutes) Create(_ context.Context, p service.RouteParams) (*models.EcoRoute, error) {
	m.lastCreate = p
	return m.createResp, m.createErr
}

func (m *mockRoutes) Update(_ context.Context, id string, p service.RouteParams) (*models.EcoRoute, error) {
	m.lastUpdateID = id
	m.lastUpdate = p
	return m.updateResp, m.updateErr
}

func (m *mockRoutes) Delete(_ context.Context, id string) error {
	m.lastDeleteID = id
	return m.deleteErr
}

type mockStats struct {
	overview    models.AdminStats
	overviewErr error
	users       []models.User
	usersErr    error
	system      models.SystemInfo
}

func (m *mockStats) Overview(_ context.Context) (models.AdminStats, error) {
	return m.overview, m.overviewErr
}

func (m *mockStats) ListUsers(_ context.Context) ([]models.User, error) {
	return m.users, m.usersErr
}

func (m *mockStats) System() models.SystemInfo { return m.system }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Config{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
