package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecoroute/internal/models"
	"ecoroute/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// AuthService handles account creation, credential checks and JWT issuance.
type AuthService struct {
	users      repository.Users
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		users:      users,
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
	}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// Register creates an account and returns a signed token plus the public
// user view. Username and email collisions fail with ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" {
		return "", nil, fmt.Errorf("%w: username and email are required", ErrValidation)
	}

	if existing, err := s.users.GetByUsername(ctx, username); err != nil {
		return "", nil, err
	} else if existing != nil {
		return "", nil, fmt.Errorf("username %q %w", username, ErrConflict)
	}
	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return "", nil, err
	} else if existing != nil {
		return "", nil, fmt.Errorf("email %q %w", email, ErrConflict)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	u := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Picture:      in.Picture,
		Bio:          in.Bio,
		Location:     in.Location,
		Website:      in.Website,
		SocialLinks:  in.SocialLinks,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return "", nil, err
	}
	u.ID = id

	token, err := s.issueToken(id)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

// Login validates credentials and returns a signed token plus the public
// user view. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// GetProfile loads the full record of the authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d %w", userID, ErrNotFound)
	}
	return u, nil
}

// UpdateProfile merges the present fields into the user's own profile.
// A new username/email that collides with a different user fails with ErrConflict.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int, in ProfileUpdate) (*models.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
		}
		if other, err := s.users.GetByUsername(ctx, username); err != nil {
			return nil, err
		} else if other != nil && other.ID != userID {
			return nil, fmt.Errorf("username %q %w", username, ErrConflict)
		}
		u.Username = username
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
		}
		if other, err := s.users.GetByEmail(ctx, email); err != nil {
			return nil, err
		} else if other != nil && other.ID != userID {
			return nil, fmt.Errorf("email %q %w", email, ErrConflict)
		}
		u.Email = email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Picture != nil {
		u.Picture = *in.Picture
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Location != nil {
		u.Location = *in.Location
	}
	if in.Website != nil {
		u.Website = *in.Website
	}
	if in.SocialLinks != nil {
		u.SocialLinks = *in.SocialLinks
	}

	if err := s.users.Update(ctx, *u); err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureAdmin creates (or promotes) the configured admin account at startup.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	email = normalizeEmail(email)
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u != nil {
		if u.Role == models.RoleAdmin {
			return nil
		}
		u.Role = models.RoleAdmin
		return s.users.Update(ctx, *u)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("admin bootstrap: %w", err)
	}
	_, err = s.users.Create(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	return err
}

// helper: normalize email for the lowercase-unique invariant
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
