package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecoroute/internal/models"
	"ecoroute/internal/repository"

	"github.com/google/uuid"
)

// RouteService implements CRUD and region lookup over eco-routes.
type RouteService struct {
	routes repository.Routes
}

func NewRouteService(routes repository.Routes) *RouteService {
	return &RouteService{routes: routes}
}

// List returns every route, unfiltered and unpaginated.
func (s *RouteService) List(ctx context.Context) ([]models.EcoRoute, error) {
	return s.routes.List(ctx)
}

// GetByID fails with ErrNotFound when no record matches.
func (s *RouteService) GetByID(ctx context.Context, id string) (*models.EcoRoute, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, fmt.Errorf("route %q %w", id, ErrNotFound)
	}
	return route, nil
}

// ListByRegion returns routes whose start or end region equals the code.
// An empty result fails with ErrNotFound.
func (s *RouteService) ListByRegion(ctx context.Context, code string) ([]models.EcoRoute, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: region code is required", ErrValidation)
	}
	routes, err := s.routes.ListByRegion(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("no routes in region %q: %w", code, ErrNotFound)
	}
	return routes, nil
}

// Create validates that every required field is present and stores the route.
func (s *RouteService) Create(ctx context.Context, p RouteParams) (*models.EcoRoute, error) {
	var missing []string
	if p.Start == nil {
		missing = append(missing, "start_point")
	}
	if p.End == nil {
		missing = append(missing, "end_point")
	}
	if p.CarbonSaved == nil {
		missing = append(missing, "carbon_saved")
	}
	if p.Distance == nil {
		missing = append(missing, "distance")
	}
	if p.TransportMode == nil {
		missing = append(missing, "transport_mode")
	}
	if p.EstimatedTime == nil {
		missing = append(missing, "estimated_time")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	route := models.EcoRoute{
		ID:            uuid.NewString(),
		Start:         *p.Start,
		End:           *p.End,
		CarbonSaved:   *p.CarbonSaved,
		Distance:      *p.Distance,
		TransportMode: *p.TransportMode,
		EstimatedTime: *p.EstimatedTime,
		CreatedAt:     time.Now().UTC(),
	}
	if p.Attractions != nil {
		route.Attractions = *p.Attractions
	}
	if err := validateRoute(route); err != nil {
		return nil, err
	}

	if err := s.routes.Create(ctx, route); err != nil {
		return nil, err
	}
	return &route, nil
}

// Update merges only the fields present in p into the stored route.
func (s *RouteService) Update(ctx context.Context, id string, p RouteParams) (*models.EcoRoute, error) {
	route, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Start != nil {
		route.Start = *p.Start
	}
	if p.End != nil {
		route.End = *p.End
	}
	if p.CarbonSaved != nil {
		route.CarbonSaved = *p.CarbonSaved
	}
	if p.Distance != nil {
		route.Distance = *p.Distance
	}
	if p.TransportMode != nil {
		route.TransportMode = *p.TransportMode
	}
	if p.EstimatedTime != nil {
		route.EstimatedTime = *p.EstimatedTime
	}
	if p.Attractions != nil {
		route.Attractions = *p.Attractions
	}
	if err := validateRoute(*route); err != nil {
		return nil, err
	}

	if err := s.routes.Update(ctx, *route); err != nil {
		return nil, err
	}
	return route, nil
}

// Delete fails with ErrNotFound when id does not exist.
func (s *RouteService) Delete(ctx context.Context, id string) error {
	deleted, err := s.routes.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("route %q %w", id, ErrNotFound)
	}
	return nil
}

// validateRoute enforces the enum and non-negative invariants.
func validateRoute(r models.EcoRoute) error {
	if !models.ValidTransportMode(r.TransportMode) {
		return fmt.Errorf("%w: transport_mode %q must be one of %s",
			ErrValidation, r.TransportMode, strings.Join(models.TransportModes, ", "))
	}
	if r.CarbonSaved < 0 {
		return fmt.Errorf("%w: carbon_saved must be non-negative", ErrValidation)
	}
	if r.Distance < 0 {
		return fmt.Errorf("%w: distance must be non-negative", ErrValidation)
	}
	if r.EstimatedTime < 0 {
		return fmt.Errorf("%w: estimated_time must be non-negative", ErrValidation)
	}
	return nil
}
