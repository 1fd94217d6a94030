package service

import (
	"context"
	"time"

	"ecoroute/internal/models"
	"ecoroute/internal/repository"
)

// Authorization covers registration, login, token handling and profile access.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ParseToken(accessToken string) (int, error)
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, in ProfileUpdate) (*models.User, error)
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

// Routes exposes CRUD and region lookup over eco-route records.
type Routes interface {
	List(ctx context.Context) ([]models.EcoRoute, error)
	GetByID(ctx context.Context, id string) (*models.EcoRoute, error)
	ListByRegion(ctx context.Context, code string) ([]models.EcoRoute, error)
	Create(ctx context.Context, p RouteParams) (*models.EcoRoute, error)
	Update(ctx context.Context, id string, p RouteParams) (*models.EcoRoute, error)
	Delete(ctx context.Context, id string) error
}

// Stats exposes the read-only admin aggregation surface.
type Stats interface {
	Overview(ctx context.Context) (models.AdminStats, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	System() models.SystemInfo
}

// RegisterInput carries the new-account payload.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Picture     string
	Bio         string
	Location    string
	Website     string
	SocialLinks []models.SocialLink
}

// ProfileUpdate merges only the fields present (non-nil) into the profile.
type ProfileUpdate struct {
	Username    *string
	Email       *string
	FirstName   *string
	LastName    *string
	Picture     *string
	Bio         *string
	Location    *string
	Website     *string
	SocialLinks *[]models.SocialLink
}

// RouteParams is the route payload for both create (all required fields must
// be present) and update (present fields are merged).
type RouteParams struct {
	Start         *models.Location
	End           *models.Location
	CarbonSaved   *float64
	Distance      *float64
	TransportMode *string
	EstimatedTime *int
	Attractions   *[]models.Attraction
}

// AuthConfig holds token signing parameters, sourced from configuration.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

type Service struct {
	Authorization
	Routes
	Stats
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Routes:        NewRouteService(repos.Routes),
		Stats:         NewStatsService(repos.Users, repos.Routes),
	}
}
