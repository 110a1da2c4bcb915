// AngelaMos | 2026
// entity.go

package auth

import (
	"context"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

// UserInfo is the slice of a user account the auth flow works with.
type UserInfo struct {
	ID           int64
	Email        string
	Name         *string
	Avatar       *string
	Address      *string
	Phone        *string
	Role         string
	PasswordHash string
	IsDeleted    bool
}

func (u *UserInfo) IsAdmin() bool {
	return u.Role == "admin"
}

// UserProvider is implemented by the user service. GetByEmail must return
// soft-deleted accounts too, so login can tell "deactivated" apart from
// "unknown". LoadActor follows middleware.ActorLoader.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash string,
		name *string,
		role string,
	) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	LoadActor(ctx context.Context, userID int64) (*core.Actor, error)
}
