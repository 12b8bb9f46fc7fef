package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/user"
	"github.com/playgrid/playgrid-api/internal/pkg/jwt"
	"github.com/playgrid/playgrid-api/internal/pkg/password"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	if u, ok := f.users[id]; ok {
		u.IsActive = isActive
	}
	return nil
}
func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error { return nil }

type fakeTokenStore struct {
	tokens map[string]uuid.UUID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]uuid.UUID{}}
}

func (f *fakeTokenStore) Save(ctx context.Context, hash string, userID uuid.UUID, ttl time.Duration) error {
	f.tokens[hash] = userID
	return nil
}

func (f *fakeTokenStore) Lookup(ctx context.Context, hash string) (uuid.UUID, error) {
	id, ok := f.tokens[hash]
	if !ok {
		return uuid.Nil, ErrInvalidRefresh
	}
	return id, nil
}

func (f *fakeTokenStore) Delete(ctx context.Context, hash string) error {
	delete(f.tokens, hash)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeTokenStore) {
	repo := newFakeUserRepo()
	store := newFakeTokenStore()
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtService, store), repo, store
}

func TestRegisterIssuesTokens(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Anna@Example.com",
		Password: "secret-password",
		FullName: "Anna Ozola",
		Role:     "owner",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if resp.User.Role != "owner" {
		t.Fatalf("role = %q, want owner", resp.User.Role)
	}
	if resp.User.Email != "anna@example.com" {
		t.Fatalf("email not normalized: %q", resp.User.Email)
	}

	u, _ := repo.GetByEmail(context.Background(), "anna@example.com")
	if u == nil {
		t.Fatal("user not persisted")
	}
	if u.PasswordHash == "secret-password" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := &RegisterRequest{Email: "dup@example.com", Password: "secret-password", FullName: "First"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, req); err != ErrEmailTaken {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{Email: "l@example.com", Password: "right-password", FullName: "L"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(ctx, &LoginRequest{Email: "l@example.com", Password: "wrong-password"})
	if err != ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	hash, _ := password.Hash("secret-password")
	u := &user.User{
		ID:           uuid.New(),
		Email:        "off@example.com",
		PasswordHash: hash,
		Role:         user.RoleCustomer,
		FullName:     "Off",
		IsActive:     false,
	}
	repo.users[u.ID] = u

	if _, err := svc.Login(ctx, &LoginRequest{Email: "off@example.com", Password: "secret-password"}); err != ErrAccountDisabled {
		t.Fatalf("err = %v, want ErrAccountDisabled", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{Email: "r@example.com", Password: "secret-password", FullName: "R"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	first := resp.Tokens.RefreshToken

	rotated, err := svc.Refresh(ctx, first)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.Tokens.RefreshToken == first {
		t.Fatal("refresh token was not rotated")
	}

	// The presented token is single-use.
	if _, err := svc.Refresh(ctx, first); err != ErrInvalidRefresh {
		t.Fatalf("second refresh err = %v, want ErrInvalidRefresh", err)
	}

	if len(store.tokens) != 1 {
		t.Fatalf("token store holds %d entries, want 1", len(store.tokens))
	}
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{Email: "out@example.com", Password: "secret-password", FullName: "Out"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(ctx, resp.Tokens.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, resp.Tokens.RefreshToken); err != ErrInvalidRefresh {
		t.Fatalf("refresh after logout err = %v, want ErrInvalidRefresh", err)
	}
}
