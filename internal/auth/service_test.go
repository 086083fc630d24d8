package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/doxacleaning/doxa-backend/pkg/auth"
	"github.com/doxacleaning/doxa-backend/pkg/config"
	"github.com/doxacleaning/doxa-backend/pkg/db/models"
	"github.com/doxacleaning/doxa-backend/pkg/enums"
	pkgerrors "github.com/doxacleaning/doxa-backend/pkg/errors"
	"github.com/doxacleaning/doxa-backend/pkg/security"
)

type stubUserRepo struct {
	user          *models.User
	findErr       error
	lastLoginErr  error
	lastLoginID   uuid.UUID
	lastLoginSeen bool
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLoginSeen = true
	s.lastLoginID = id
	return s.lastLoginErr
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "doxa-api", ExpirationMinutes: 1440}
}

func seededUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{BcryptCost: 4})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         enums.RoleEmployee,
		Name:         "Dana",
		Phone:        "555-0000",
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{JWTConfig: testJWTConfig()}); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestLoginSuccess(t *testing.T) {
	user := seededUser(t, "dana@doxa.com", "pw123456")
	repo := &stubUserRepo{user: user}
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTConfig()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Dana@Doxa.com ", Password: "pw123456"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Email != user.Email {
		t.Fatalf("unexpected user %q", resp.User.Email)
	}
	if !repo.lastLoginSeen || repo.lastLoginID != user.ID {
		t.Fatal("expected last login stamp for the user")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.Token)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != user.Role {
		t.Fatalf("claims do not match stored identity: %+v", claims)
	}
}

func TestLoginWrongPasswordAndUnknownEmailAreIndistinguishable(t *testing.T) {
	user := seededUser(t, "dana@doxa.com", "pw123456")
	repo := &stubUserRepo{user: user}
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTConfig()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, wrongPw := errFromLogin(t, svc, "dana@doxa.com", "nope12345")
	_, unknown := errFromLogin(t, svc, "ghost@doxa.com", "pw123456")

	for _, e := range []error{wrongPw, unknown} {
		typed := pkgerrors.As(e)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", e)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("expected uniform message, got %q", typed.Message())
		}
	}
}

func TestLoginRepoFailure(t *testing.T) {
	repo := &stubUserRepo{findErr: errors.New("connection reset")}
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTConfig()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, loginErr := svc.Login(context.Background(), LoginRequest{Email: "dana@doxa.com", Password: "pw123456"})
	if typed := pkgerrors.As(loginErr); typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", loginErr)
	}
}

func errFromLogin(t *testing.T, svc Service, email, password string) (*LoginResponse, error) {
	t.Helper()
	resp, err := svc.Login(context.Background(), LoginRequest{Email: email, Password: password})
	if err == nil {
		t.Fatalf("expected login failure for %s", email)
	}
	return resp, err
}
