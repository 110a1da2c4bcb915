// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/traffic-registry/internal/auth"
	"github.com/carterperez-dev/traffic-registry/internal/core"
)

// AvatarStore persists an uploaded avatar and returns the URL to store.
// Values that are not data-URLs come back unchanged.
type AvatarStore interface {
	SaveDataURL(userID int64, value string) (string, error)
}

type Service struct {
	repo    Repository
	avatars AvatarStore
}

func NewService(repo Repository, avatars AvatarStore) *Service {
	return &Service{repo: repo, avatars: avatars}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return ToUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash string,
	name *string,
	role string,
) (*auth.UserInfo, error) {
	user := &User{
		Email:        auth.NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return ToUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// LoadActor resolves the live account behind a session.
func (s *Service) LoadActor(ctx context.Context, userID int64) (*core.Actor, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.IsDeleted {
		return nil, fmt.Errorf("load actor %d: %w", userID, core.ErrAccountDisabled)
	}

	return &core.Actor{
		ID:      user.ID,
		Email:   user.Email,
		Name:    deref(user.Name),
		Role:    user.Role,
		Avatar:  deref(user.Avatar),
		Address: deref(user.Address),
		Phone:   deref(user.Phone),
	}, nil
}

// UpdateProfile replaces the actor's own profile fields. Blank values are
// stored as NULL; an avatar data-URL is written to disk first.
func (s *Service) UpdateProfile(
	ctx context.Context,
	actor *core.Actor,
	req UpdateProfileRequest,
) (*User, error) {
	avatar := nullable(req.Avatar)
	if avatar != nil {
		url, err := s.avatars.SaveDataURL(actor.ID, *avatar)
		if err != nil {
			return nil, err
		}
		avatar = &url
	}

	user, err := s.repo.UpdateProfile(ctx, actor.ID, Profile{
		Name:    nullable(req.Name),
		Avatar:  avatar,
		Address: nullable(req.Address),
		Phone:   nullable(req.Phone),
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "profile updated", "user_id", actor.ID)

	return user, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(
	ctx context.Context,
	actor *core.Actor,
	targetID int64,
) error {
	if targetID == actor.ID {
		return core.Reason(core.ErrInvalidOperation, "you cannot delete your own account")
	}

	if err := s.repo.SoftDelete(ctx, targetID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "user deactivated",
		"user_id", targetID,
		"by", actor.ID,
	)

	return nil
}

func (s *Service) Restore(
	ctx context.Context,
	actor *core.Actor,
	targetID int64,
) error {
	if err := s.repo.Restore(ctx, targetID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "user restored",
		"user_id", targetID,
		"by", actor.ID,
	)

	return nil
}

// AdminUpdate applies an administrator's edit to any account. Omitted fields
// keep their current value. An admin cannot strip their own admin role.
func (s *Service) AdminUpdate(
	ctx context.Context,
	actor *core.Actor,
	targetID int64,
	req AdminUpdateRequest,
) (*User, error) {
	current, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	changes := AdminChanges{
		Email:   current.Email,
		Name:    current.Name,
		Role:    current.Role,
		Address: current.Address,
		Phone:   current.Phone,
	}

	if req.Email != nil {
		email := auth.NormalizeEmail(*req.Email)
		if email == "" {
			return nil, core.WithField(
				core.Reason(core.ErrInvalidInput, "email is required"),
				"email",
			)
		}
		changes.Email = email
	}

	if req.Role != nil {
		role := strings.TrimSpace(*req.Role)
		if role != core.RoleUser && role != core.RoleAdmin {
			return nil, core.WithField(
				core.Reason(core.ErrInvalidInput, "role must be user or admin"),
				"role",
			)
		}
		if targetID == actor.ID && role != core.RoleAdmin {
			return nil, core.Reason(
				core.ErrInvalidOperation,
				"you cannot remove your own administrator role",
			)
		}
		changes.Role = role
	}

	if req.Name != nil {
		changes.Name = nullable(req.Name)
	}
	if req.Address != nil {
		changes.Address = nullable(req.Address)
	}
	if req.Phone != nil {
		changes.Phone = nullable(req.Phone)
	}

	user, err := s.repo.UpdateByAdmin(ctx, targetID, changes)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.WithField(err, "email")
		}
		return nil, err
	}

	slog.InfoContext(ctx, "user updated by admin",
		"user_id", targetID,
		"by", actor.ID,
		"role", user.Role,
	)

	return user, nil
}

// EnsureAdmin promotes the configured bootstrap account if it already
// exists. Registration handles the case where it does not.
func (s *Service) EnsureAdmin(ctx context.Context, email string) error {
	email = auth.NormalizeEmail(email)
	if email == "" {
		return nil
	}

	promoted, err := s.repo.PromoteToAdmin(ctx, email)
	if err != nil {
		return err
	}

	if promoted {
		slog.InfoContext(ctx, "bootstrap admin promoted", "email", email)
	}

	return nil
}

func ToUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Avatar:       u.Avatar,
		Address:      u.Address,
		Phone:        u.Phone,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		IsDeleted:    u.IsDeleted,
	}
}

func nullable(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ auth.UserProvider = (*Service)(nil)
