package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecoroute/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	userColumns = `id, username, email, password_hash, role, first_name, last_name, picture, bio, location, website, social_links, created_at`

	insertUserSQL = `INSERT INTO users (username, email, password_hash, role, first_name, last_name, picture, bio, location, website, social_links, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectUserByIDSQL       = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	selectUserByEmailSQL    = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	updateUserSQL = `UPDATE users SET username = ?, email = ?, password_hash = ?, role = ?, first_name = ?, last_name = ?, picture = ?, bio = ?, location = ?, website = ?, social_links = ?, created_at = ? WHERE id = ?`

	listUsersSQL = `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`
)

// marshalSocialLinks converts the slice to a JSON string; nil stays NULL.
func marshalSocialLinks(links []models.SocialLink) (sql.NullString, error) {
	if len(links) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(links)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal social links: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalSocialLinks(s sql.NullString) ([]models.SocialLink, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var links []models.SocialLink
	if err := json.Unmarshal([]byte(s.String), &links); err != nil {
		return nil, fmt.Errorf("unmarshal social links: %w", err)
	}
	return links, nil
}

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	links, err := marshalSocialLinks(u.SocialLinks)
	if err != nil {
		return 0, err
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username, u.Email, u.PasswordHash, u.Role,
		u.FirstName, u.LastName, u.Picture, u.Bio, u.Location, u.Website,
		links, u.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var links sql.NullString
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.FirstName, &u.LastName, &u.Picture, &u.Bio, &u.Location, &u.Website,
		&links, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.SocialLinks, err = unmarshalSocialLinks(links)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return u, nil
}

// GetByEmail fetches a user by (lowercase) email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user email=%q: %w", email, err)
	}
	return u, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// Update overwrites the full user row.
func (r *UserRepository) Update(ctx context.Context, u models.User) error {
	links, err := marshalSocialLinks(u.SocialLinks)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, updateUserSQL,
		u.Username, u.Email, u.PasswordHash, u.Role,
		u.FirstName, u.LastName, u.Picture, u.Bio, u.Location, u.Website,
		links, u.CreatedAt.UTC(), u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user id=%d: %w", u.ID, err)
	}
	return nil
}

// List returns every user ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]models.User, 0, 64)
	for rows.Next() {
		var u models.User
		var links sql.NullString
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.FirstName, &u.LastName, &u.Picture, &u.Bio, &u.Location, &u.Website,
			&links, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		u.SocialLinks, err = unmarshalSocialLinks(links)
		if err != nil {
			return nil, err
		}
		u.CreatedAt = u.CreatedAt.UTC()
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}
