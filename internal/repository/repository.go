package repository

import (
	"context"
	"database/sql"

	"ecoroute/internal/models"
)

// Users fetches and persists account records.
// Lookup methods return (nil, nil) when no row matches.
type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, u models.User) error
	List(ctx context.Context) ([]models.User, error)
}

// Routes fetches and persists eco-route records.
// GetByID returns (nil, nil) when no row matches; Delete reports whether a row
// was removed.
type Routes interface {
	Create(ctx context.Context, r models.EcoRoute) error
	GetByID(ctx context.Context, id string) (*models.EcoRoute, error)
	List(ctx context.Context) ([]models.EcoRoute, error)
	ListByRegion(ctx context.Context, region string) ([]models.EcoRoute, error)
	Update(ctx context.Context, r models.EcoRoute) error
	Delete(ctx context.Context, id string) (bool, error)
}

type Repository struct {
	Users  Users
	Routes Routes
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:  NewUserRepository(db),
		Routes: NewRouteRepository(db),
	}
}
