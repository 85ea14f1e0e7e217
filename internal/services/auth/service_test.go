package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	redrepo "github.com/SodiqOgundairo/condolence-backend/internal/repo/redis"
	authsvc "github.com/SodiqOgundairo/condolence-backend/internal/services/auth"
)

type fakeCredentialStore struct {
	users map[string]model.AdminUser
}

func (f *fakeCredentialStore) FindByUsername(_ context.Context, username string) (model.AdminUser, error) {
	user, ok := f.users[username]
	if !ok {
		return model.AdminUser{}, errors.New("not found")
	}
	return user, nil
}

func TestLoginWithPassword(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	res, err := svc.Login(ctx, "caretaker", "correct horse", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatal("login returned empty tokens")
	}
	if res.Me.Role != authsvc.RoleAdmin {
		t.Fatalf("role = %q, want %q", res.Me.Role, authsvc.RoleAdmin)
	}

	claims, err := svc.ValidateAccessToken(ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.Role != authsvc.RoleAdmin {
		t.Fatalf("claims role = %q, want %q", claims.Role, authsvc.RoleAdmin)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Login(ctx, "caretaker", "wrong password", ""); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("wrong password should be unauthorized, got err=%v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "correct horse", ""); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("unknown user should be unauthorized, got err=%v", err)
	}
	if _, err := svc.Login(ctx, "", "correct horse", ""); !errors.Is(err, authsvc.ErrInvalidInput) {
		t.Fatalf("empty username should be invalid input, got err=%v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.Login(ctx, "caretaker", "correct horse", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshRes, err := svc.Refresh(ctx, loginRes.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if refreshRes.RefreshToken == loginRes.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	if _, err := svc.Refresh(ctx, loginRes.RefreshToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("old refresh token should be unauthorized, got err=%v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, refreshRes.AccessToken); err != nil {
		t.Fatalf("new access token validation failed: %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.Login(ctx, "caretaker", "correct horse", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken)
	if err != nil {
		t.Fatalf("validate access token before logout: %v", err)
	}

	if err := svc.Logout(ctx, claims.SID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("access token should be unauthorized after logout, got err=%v", err)
	}
	if _, err := svc.Refresh(ctx, loginRes.RefreshToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("refresh token should be unauthorized after logout, got err=%v", err)
	}
}

func newAuthServiceForTest(t *testing.T) (*authsvc.Service, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash test password: %v", err)
	}
	creds := &fakeCredentialStore{users: map[string]model.AdminUser{
		"caretaker": {ID: 1, Username: "caretaker", PasswordHash: string(hash)},
	}}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	repo := redrepo.NewSessionRepo(client)
	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwtManager, repo, creds, 7*24*time.Hour)

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}
	return svc, cleanup
}
