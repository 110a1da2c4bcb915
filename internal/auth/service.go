// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	users      UserProvider
	hasher     *core.PasswordHasher
	adminEmail string
}

// NewService wires registration and login. adminEmail, when set, is the
// bootstrap account that registers directly as admin.
func NewService(
	users UserProvider,
	hasher *core.PasswordHasher,
	adminEmail string,
) *Service {
	return &Service{
		users:      users,
		hasher:     hasher,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserInfo, error) {
	email := NormalizeEmail(req.Email)

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := core.RoleUser
	if s.adminEmail != "" && email == s.adminEmail {
		role = core.RoleAdmin
	}

	var name *string
	if trimmed := strings.TrimSpace(req.Name); trimmed != "" {
		name = &trimmed
	}

	user, err := s.users.Create(ctx, email, passwordHash, name, role)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.WithField(
				fmt.Errorf("register: %w", core.ErrDuplicateKey),
				"email",
			)
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	slog.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"role", user.Role,
	)

	return user, nil
}

// Login verifies credentials before looking at the deactivation flag, so a
// deactivated account is only disclosed to someone who knows its password.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*UserInfo, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = s.hasher.VerifyTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := s.hasher.VerifyTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if user.IsDeleted {
		return nil, fmt.Errorf("login: %w", core.ErrAccountDisabled)
	}

	if newHash != "" {
		if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	return user, nil
}

// Current re-reads the account behind a verified session. It returns
// core.ErrNotFound or core.ErrAccountDisabled once the account is gone.
func (s *Service) Current(ctx context.Context, userID int64) (*UserInfo, error) {
	actor, err := s.users.LoadActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserInfo{
		ID:      actor.ID,
		Email:   actor.Email,
		Name:    optional(actor.Name),
		Avatar:  optional(actor.Avatar),
		Address: optional(actor.Address),
		Phone:   optional(actor.Phone),
		Role:    actor.Role,
	}, nil
}
