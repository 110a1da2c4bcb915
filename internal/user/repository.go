// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, profile Profile) (*User, error)
	UpdateByAdmin(ctx context.Context, id int64, changes AdminChanges) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	List(ctx context.Context) ([]User, error)
	PromoteToAdmin(ctx context.Context, email string) (bool, error)
}

var constraintFields = core.ConstraintFields{
	"users_email_key": "email",
}

const userColumns = `id, email, password_hash, name, avatar, address, phone,
		       role, is_deleted, deleted_at, created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_deleted, created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", core.ClassifyError(err, constraintFields))
	}

	return nil
}

// GetByID returns soft-deleted rows too; callers decide what deletion means.
func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if core.IsNoRows(err) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if core.IsNoRows(err) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdateProfile(
	ctx context.Context,
	id int64,
	profile Profile,
) (*User, error) {
	query := `
		UPDATE users
		SET name = $2, avatar = $3, address = $4, phone = $5, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query,
		id,
		profile.Name,
		profile.Avatar,
		profile.Address,
		profile.Phone,
	)
	if core.IsNoRows(err) {
		return nil, fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdateByAdmin(
	ctx context.Context,
	id int64,
	changes AdminChanges,
) (*User, error) {
	query := `
		UPDATE users
		SET email = $2, name = $3, role = $4, address = $5, phone = $6,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query,
		id,
		changes.Email,
		changes.Name,
		changes.Role,
		changes.Address,
		changes.Phone,
	)
	if core.IsNoRows(err) {
		return nil, fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", core.ClassifyError(err, constraintFields))
	}

	return &user, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := core.RequireAffected(result); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

// SoftDelete flags the row. Deleting an already deleted user is a no-op
// success so the operation stays idempotent.
func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET is_deleted = TRUE,
		    deleted_at = COALESCE(deleted_at, NOW()),
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := core.RequireAffected(result); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (r *repository) Restore(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET is_deleted = FALSE, deleted_at = NULL, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("restore user: %w", err)
	}

	if err := core.RequireAffected(result); err != nil {
		return fmt.Errorf("restore user: %w", err)
	}

	return nil
}

// List returns every account, active ones first, newest first within each
// group.
func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		ORDER BY is_deleted ASC, id DESC`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) PromoteToAdmin(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `
		UPDATE users
		SET role = 'admin', updated_at = NOW()
		WHERE LOWER(email) = LOWER($1) AND role <> 'admin'`

	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return false, fmt.Errorf("promote user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("promote user: %w", err)
	}

	return rows > 0, nil
}
