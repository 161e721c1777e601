package service

import (
	"errors"
	"testing"

	"github.com/lingocert/lingocert/config"
	"github.com/lingocert/lingocert/internal/dto"
	"github.com/lingocert/lingocert/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, secret string) (AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = secret
	cfg.Auth.TokenTTLHours = 1
	return NewAuthService(repository.NewUserRepository(db), cfg), db
}

func TestRegisterAndVerifyToken(t *testing.T) {
	svc, db := newAuthService(t, "test-secret")

	resp, err := svc.Register(dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "correct horse",
		FullName: "Ana Petrova",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if resp.User.ID == "" {
		t.Fatal("registered user has empty id")
	}
	if resp.User.Email != "ana@example.com" || resp.User.FullName != "Ana Petrova" {
		t.Errorf("User = %+v, want registered fields echoed back", resp.User)
	}

	userID, err := svc.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("VerifyToken() error: %v", err)
	}
	if userID != resp.User.ID {
		t.Errorf("VerifyToken() = %q, want %q", userID, resp.User.ID)
	}

	// The stored hash must not be the plaintext password.
	user, err := repository.NewUserRepository(db).FindByEmail("ana@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t, "test-secret")

	req := dto.RegisterRequest{Email: "ana@example.com", Password: "correct horse", FullName: "Ana Petrova"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	if _, err := svc.Register(req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t, "test-secret")

	if _, err := svc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "correct horse", FullName: "Ana Petrova"}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	resp, err := svc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if _, err := svc.VerifyToken(resp.Token); err != nil {
		t.Errorf("login token does not verify: %v", err)
	}

	if _, err := svc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "correct horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyTokenRejectsBadTokens(t *testing.T) {
	svc, _ := newAuthService(t, "test-secret")
	otherSvc, _ := newAuthService(t, "other-secret")

	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token error = %v, want ErrInvalidToken", err)
	}

	resp, err := otherSvc.Register(dto.RegisterRequest{Email: "eve@example.com", Password: "correct horse", FullName: "Eve"})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if _, err := svc.VerifyToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("cross-secret token error = %v, want ErrInvalidToken", err)
	}
}
