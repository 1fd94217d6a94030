package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecoroute/internal/models"

	"github.com/google/uuid"
)

type RouteRepository struct {
	db *sql.DB
}

func NewRouteRepository(db *sql.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

var _ Routes = (*RouteRepository)(nil)

const (
	routeColumns = `id, start_point, end_point, carbon_saved, distance, transport_mode, estimated_time, attractions, created_at`

	insertRouteSQL = `INSERT INTO ecoroutes (id, start_point, end_point, carbon_saved, distance, transport_mode, estimated_time, attractions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectRouteByIDSQL = `SELECT ` + routeColumns + ` FROM ecoroutes WHERE id = ?`

	listRoutesSQL = `SELECT ` + routeColumns + ` FROM ecoroutes ORDER BY created_at DESC`

	// Region lives inside the JSON location columns; match either endpoint.
	listRoutesByRegionSQL = `SELECT ` + routeColumns + ` FROM ecoroutes
		WHERE UPPER(json_extract(start_point, '$.region')) = ? OR UPPER(json_extract(end_point, '$.region')) = ?
		ORDER BY created_at DESC`

	updateRouteSQL = `UPDATE ecoroutes SET start_point = ?, end_point = ?, carbon_saved = ?, distance = ?, transport_mode = ?, estimated_time = ?, attractions = ? WHERE id = ?`

	deleteRouteSQL = `DELETE FROM ecoroutes WHERE id = ?`
)

func marshalLocation(l models.Location) (string, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("marshal location: %w", err)
	}
	return string(b), nil
}

func marshalAttractions(as []models.Attraction) (sql.NullString, error) {
	if len(as) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(as)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal attractions: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// Create inserts a route. An empty ID or CreatedAt is filled in.
func (r *RouteRepository) Create(ctx context.Context, route models.EcoRoute) error {
	if route.ID == "" {
		route.ID = uuid.NewString()
	}
	if route.CreatedAt.IsZero() {
		route.CreatedAt = time.Now().UTC()
	}

	start, err := marshalLocation(route.Start)
	if err != nil {
		return err
	}
	end, err := marshalLocation(route.End)
	if err != nil {
		return err
	}
	attractions, err := marshalAttractions(route.Attractions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertRouteSQL,
		route.ID, start, end,
		route.CarbonSaved, route.Distance, route.TransportMode, route.EstimatedTime,
		attractions, route.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert route %q: %w", route.ID, err)
	}
	return nil
}

func scanRoute(scan func(dest ...any) error) (*models.EcoRoute, error) {
	var (
		route       models.EcoRoute
		start, end  string
		attractions sql.NullString
	)
	if err := scan(
		&route.ID, &start, &end,
		&route.CarbonSaved, &route.Distance, &route.TransportMode, &route.EstimatedTime,
		&attractions, &route.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(start), &route.Start); err != nil {
		return nil, fmt.Errorf("unmarshal start point: %w", err)
	}
	if err := json.Unmarshal([]byte(end), &route.End); err != nil {
		return nil, fmt.Errorf("unmarshal end point: %w", err)
	}
	if attractions.Valid && attractions.String != "" {
		if err := json.Unmarshal([]byte(attractions.String), &route.Attractions); err != nil {
			return nil, fmt.Errorf("unmarshal attractions: %w", err)
		}
	}
	route.CreatedAt = route.CreatedAt.UTC()
	return &route, nil
}

// GetByID fetches a route by id. Returns (nil, nil) if not found.
func (r *RouteRepository) GetByID(ctx context.Context, id string) (*models.EcoRoute, error) {
	row := r.db.QueryRowContext(ctx, selectRouteByIDSQL, id)
	route, err := scanRoute(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select route %q: %w", id, err)
	}
	return route, nil
}

func (r *RouteRepository) queryRoutes(ctx context.Context, query string, args ...any) ([]models.EcoRoute, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.EcoRoute, 0, 64)
	for rows.Next() {
		route, err := scanRoute(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *route)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every route, newest first.
func (r *RouteRepository) List(ctx context.Context) ([]models.EcoRoute, error) {
	routes, err := r.queryRoutes(ctx, listRoutesSQL)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}

// ListByRegion returns routes whose start or end region equals the code.
func (r *RouteRepository) ListByRegion(ctx context.Context, region string) ([]models.EcoRoute, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	routes, err := r.queryRoutes(ctx, listRoutesByRegionSQL, region, region)
	if err != nil {
		return nil, fmt.Errorf("list routes region=%q: %w", region, err)
	}
	return routes, nil
}

// Update overwrites the full route row. ID and CreatedAt are immutable.
func (r *RouteRepository) Update(ctx context.Context, route models.EcoRoute) error {
	start, err := marshalLocation(route.Start)
	if err != nil {
		return err
	}
	end, err := marshalLocation(route.End)
	if err != nil {
		return err
	}
	attractions, err := marshalAttractions(route.Attractions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, updateRouteSQL,
		start, end,
		route.CarbonSaved, route.Distance, route.TransportMode, route.EstimatedTime,
		attractions, route.ID,
	)
	if err != nil {
		return fmt.Errorf("update route %q: %w", route.ID, err)
	}
	return nil
}

// Delete removes a route, reporting whether a row was deleted.
func (r *RouteRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteRouteSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete route %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for route %q: %w", id, err)
	}
	return n > 0, nil
}
