// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

// User rows are never physically removed. IsDeleted blocks login and every
// authorized request while keeping the row readable by id.
type User struct {
	ID           int64      `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Name         *string    `db:"name"`
	Avatar       *string    `db:"avatar"`
	Address      *string    `db:"address"`
	Phone        *string    `db:"phone"`
	Role         string     `db:"role"`
	IsDeleted    bool       `db:"is_deleted"`
	DeletedAt    *time.Time `db:"deleted_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == core.RoleAdmin
}

// Profile holds the self-editable fields. A nil field is stored as NULL.
type Profile struct {
	Name    *string
	Avatar  *string
	Address *string
	Phone   *string
}

// AdminChanges holds the fields an administrator may set on another account.
type AdminChanges struct {
	Email   string
	Name    *string
	Role    string
	Address *string
	Phone   *string
}
