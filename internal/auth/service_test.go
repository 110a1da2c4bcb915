// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/carterperez-dev/traffic-registry/internal/config"
	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type stubUsers struct {
	byEmail  map[string]*UserInfo
	nextID   int64
	rehash   map[int64]string
	loadFail error
}

func newStubUsers() *stubUsers {
	return &stubUsers{
		byEmail: make(map[string]*UserInfo),
		rehash:  make(map[int64]string),
	}
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubUsers) Create(
	_ context.Context,
	email, passwordHash string,
	name *string,
	role string,
) (*UserInfo, error) {
	if _, exists := s.byEmail[email]; exists {
		return nil, core.ErrDuplicateKey
	}
	s.nextID++
	u := &UserInfo{
		ID:           s.nextID,
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
	}
	s.byEmail[email] = u
	clone := *u
	return &clone, nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, userID int64, hash string) error {
	s.rehash[userID] = hash
	return nil
}

func (s *stubUsers) LoadActor(_ context.Context, userID int64) (*core.Actor, error) {
	if s.loadFail != nil {
		return nil, s.loadFail
	}
	for _, u := range s.byEmail {
		if u.ID != userID {
			continue
		}
		if u.IsDeleted {
			return nil, core.ErrAccountDisabled
		}
		actor := &core.Actor{ID: u.ID, Email: u.Email, Role: u.Role}
		if u.Name != nil {
			actor.Name = *u.Name
		}
		return actor, nil
	}
	return nil, core.ErrNotFound
}

func testHasher(t *testing.T) *core.PasswordHasher {
	t.Helper()
	h, err := core.NewPasswordHasher(config.SecurityConfig{
		ArgonTime:    1,
		ArgonMemory:  1024,
		ArgonThreads: 1,
	})
	if err != nil {
		t.Fatalf("NewPasswordHasher: %v", err)
	}
	return h
}

func TestService_Register_DefaultsToUserRole(t *testing.T) {
	svc := NewService(newStubUsers(), testHasher(t), "")

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Alice@Example.COM ",
		Password: "secret",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != core.RoleUser {
		t.Fatalf("expected role user, got %q", user.Role)
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestService_Register_BootstrapAdmin(t *testing.T) {
	svc := NewService(newStubUsers(), testHasher(t), "Chief@Example.com")

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "chief@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != core.RoleAdmin {
		t.Fatalf("expected bootstrap admin, got %q", user.Role)
	}
	if user.Name != nil {
		t.Fatalf("expected nil name, got %q", *user.Name)
	}
}

func TestService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc := NewService(newStubUsers(), testHasher(t), "")
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "bob@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterRequest{Email: "BOB@example.com", Password: "pw"})
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if core.FieldOf(err) != "email" {
		t.Fatalf("expected field hint email, got %q", core.FieldOf(err))
	}
}

func TestService_Login(t *testing.T) {
	users := newStubUsers()
	svc := NewService(users, testHasher(t), "")
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{Email: "carol@example.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.Login(ctx, LoginRequest{Email: "Carol@example.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("logged in as wrong user")
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "carol@example.com", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "pw1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestService_Login_Deactivated(t *testing.T) {
	users := newStubUsers()
	svc := NewService(users, testHasher(t), "")
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "dave@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	users.byEmail["dave@example.com"].IsDeleted = true

	_, err := svc.Login(ctx, LoginRequest{Email: "dave@example.com", Password: "pw"})
	if !errors.Is(err, core.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
	if got := core.ToAppError(err, "user").Status; got != 403 {
		t.Fatalf("expected 403, got %d", got)
	}
}
