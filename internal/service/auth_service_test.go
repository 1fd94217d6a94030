package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"ecoroute/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key"

func newTestAuthService(users *mockUsersRepo) *AuthService {
	return NewAuthService(users, AuthConfig{SigningKey: testSigningKey, TokenTTL: time.Hour})
}

// --- Register tests ---

func TestAuthService_Register_HashesPasswordAndReturnsToken(t *testing.T) {
	mock := &mockUsersRepo{
		CreateFn: func(u models.User) (int, error) { return 42, nil },
	}
	svc := newTestAuthService(mock)

	token, user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "Alice@Example.COM",
		Password: "s3cr3t",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != 42 {
		t.Fatalf("expected id 42, got %d", user.ID)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Errorf("expected role %q, got %q", models.RoleUser, user.Role)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	stored := mock.createCalls[0]
	if stored.PasswordHash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(stored.PasswordHash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	// The returned token must resolve back to the new user id.
	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 42 {
		t.Fatalf("expected user id 42 from token, got %d", uid)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	existing := &models.User{ID: 1, Username: "first", Email: "dup@example.com"}
	mock := &mockUsersRepo{
		GetByEmailFn: func(email string) (*models.User, error) { return existing, nil },
	}
	svc := newTestAuthService(mock)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "second",
		Email:    "dup@example.com",
		Password: "pw",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got: %v", err)
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	existing := &models.User{ID: 1, Username: "taken", Email: "one@example.com"}
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) { return existing, nil },
	}
	svc := newTestAuthService(mock)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "taken",
		Email:    "two@example.com",
		Password: "pw",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got: %v", err)
	}
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	mock := &mockUsersRepo{}
	svc := newTestAuthService(mock)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "   ",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty password, got: %v", err)
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

// --- Login tests ---

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: 7, Username: "diana", Email: "diana@example.com", PasswordHash: hash}

	mock := &mockUsersRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email != "diana@example.com" {
				t.Fatalf("expected lowercased email lookup, got %q", email)
			}
			return user, nil
		},
	}
	svc := newTestAuthService(mock)

	token, got, err := svc.Login(context.Background(), "Diana@Example.com", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("expected user id 7, got %d", got.ID)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 7 {
		t.Fatalf("expected user id 7 from token, got %d", uid)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(&mockUsersRepo{})

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	mock := &mockUsersRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: 1, Username: "eve", Email: email, PasswordHash: correctHash}, nil
		},
	}
	svc := newTestAuthService(mock)

	_, _, err = svc.Login(context.Background(), "eve@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	mock := &mockUsersRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := newTestAuthService(mock)

	_, _, err := svc.Login(context.Background(), "john@example.com", "pw")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := newTestAuthService(&mockUsersRepo{})
	if _, err := svc.ParseToken("not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestAuthService_ParseToken_InvalidSignature(t *testing.T) {
	svc := newTestAuthService(&mockUsersRepo{})

	// Create a token signed with a different key.
	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 5,
	})
	badToken, err := tk.SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(badToken); err == nil {
		t.Fatalf("expected signature verification error")
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := newTestAuthService(&mockUsersRepo{})

	past := time.Now().Add(-2 * time.Hour)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
		UserID: 11,
	})
	expiredToken, err := tk.SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(expiredToken); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestAuthService_ParseToken_UnexpectedAlg(t *testing.T) {
	svc := newTestAuthService(&mockUsersRepo{})

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 12,
	})
	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(tokenStr); err == nil {
		t.Fatalf("expected error due to unexpected signing method")
	}
}

// --- Profile tests ---

func TestAuthService_UpdateProfile_MergesPresentFieldsOnly(t *testing.T) {
	stored := models.User{
		ID:       3,
		Username: "frank",
		Email:    "frank@example.com",
		Bio:      "old bio",
		Location: "Lisbon",
	}
	mock := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			u := stored
			return &u, nil
		},
	}
	svc := newTestAuthService(mock)

	updated, err := svc.UpdateProfile(context.Background(), 3, ProfileUpdate{
		Bio: strPtr("new bio"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Bio != "new bio" {
		t.Errorf("expected bio updated, got %q", updated.Bio)
	}
	if updated.Location != "Lisbon" || updated.Username != "frank" || updated.Email != "frank@example.com" {
		t.Errorf("expected untouched fields preserved, got %+v", updated)
	}
	if len(mock.updateCalls) != 1 {
		t.Fatalf("expected 1 Update call, got %d", len(mock.updateCalls))
	}
}

func TestAuthService_UpdateProfile_EmailCollision(t *testing.T) {
	mock := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			return &models.User{ID: 3, Username: "frank", Email: "frank@example.com"}, nil
		},
		GetByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: 9, Username: "other", Email: email}, nil
		},
	}
	svc := newTestAuthService(mock)

	_, err := svc.UpdateProfile(context.Background(), 3, ProfileUpdate{
		Email: strPtr("other@example.com"),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got: %v", err)
	}
	if len(mock.updateCalls) != 0 {
		t.Fatalf("expected no Update calls, got %d", len(mock.updateCalls))
	}
}

func TestAuthService_UpdateProfile_SameUserKeepsOwnEmail(t *testing.T) {
	self := &models.User{ID: 3, Username: "frank", Email: "frank@example.com"}
	mock := &mockUsersRepo{
		GetByIDFn:    func(id int) (*models.User, error) { u := *self; return &u, nil },
		GetByEmailFn: func(email string) (*models.User, error) { u := *self; return &u, nil },
	}
	svc := newTestAuthService(mock)

	if _, err := svc.UpdateProfile(context.Background(), 3, ProfileUpdate{
		Email: strPtr("frank@example.com"),
	}); err != nil {
		t.Fatalf("expected no conflict for own email, got: %v", err)
	}
}

func TestAuthService_GetProfile_NotFound(t *testing.T) {
	svc := newTestAuthService(&mockUsersRepo{})
	_, err := svc.GetProfile(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

// --- EnsureAdmin tests ---

func TestAuthService_EnsureAdmin_CreatesWhenAbsent(t *testing.T) {
	mock := &mockUsersRepo{}
	svc := newTestAuthService(mock)

	if err := svc.EnsureAdmin(context.Background(), "admin", "Admin@Example.com", "pw"); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	created := mock.createCalls[0]
	if created.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %q", created.Role)
	}
	if created.Email != "admin@example.com" {
		t.Errorf("expected lowercased email, got %q", created.Email)
	}
}

func TestAuthService_EnsureAdmin_PromotesExisting(t *testing.T) {
	mock := &mockUsersRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: 5, Username: "gwen", Email: email, Role: models.RoleUser}, nil
		},
	}
	svc := newTestAuthService(mock)

	if err := svc.EnsureAdmin(context.Background(), "admin", "gwen@example.com", "pw"); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if len(mock.updateCalls) != 1 {
		t.Fatalf("expected 1 Update call, got %d", len(mock.updateCalls))
	}
	if mock.updateCalls[0].Role != models.RoleAdmin {
		t.Errorf("expected promotion to admin, got %q", mock.updateCalls[0].Role)
	}
}
