// AngelaMos | 2026
// repository.go

package driver

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Driver, error)
	GetByID(ctx context.Context, id int64) (*Driver, error)
	Create(ctx context.Context, d *Driver) error
	Update(ctx context.Context, id int64, d *Driver) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, by, value string) ([]Driver, error)
	Count(ctx context.Context) (int, error)
}

var constraintFields = core.ConstraintFields{
	"drivers_license_number_key": "licenseNumber",
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Driver, error) {
	query := `
		SELECT id, full_name, license_number, address, phone, created_date
		FROM drivers
		ORDER BY id DESC`

	drivers := []Driver{}
	if err := r.db.SelectContext(ctx, &drivers, query); err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	return drivers, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Driver, error) {
	query := `
		SELECT id, full_name, license_number, address, phone, created_date
		FROM drivers
		WHERE id = $1`

	var d Driver
	err := r.db.GetContext(ctx, &d, query, id)
	if core.IsNoRows(err) {
		return nil, fmt.Errorf("get driver: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}

	return &d, nil
}

func (r *repository) Create(ctx context.Context, d *Driver) error {
	query := `
		INSERT INTO drivers (full_name, license_number, address, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_date`

	err := r.db.GetContext(ctx, d, query,
		d.FullName,
		d.LicenseNumber,
		d.Address,
		d.Phone,
	)
	if err != nil {
		return fmt.Errorf("create driver: %w", core.ClassifyError(err, constraintFields))
	}

	return nil
}

func (r *repository) Update(ctx context.Context, id int64, d *Driver) error {
	query := `
		UPDATE drivers
		SET full_name = $2, license_number = $3, address = $4, phone = $5
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		id,
		d.FullName,
		d.LicenseNumber,
		d.Address,
		d.Phone,
	)
	if err != nil {
		return fmt.Errorf("update driver: %w", core.ClassifyError(err, constraintFields))
	}

	if err := core.RequireAffected(result); err != nil {
		return fmt.Errorf("update driver: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}

	if err := core.RequireAffected(result); err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}

	return nil
}

// Search does a case-insensitive substring match on the full name or the
// license number.
func (r *repository) Search(
	ctx context.Context,
	by, value string,
) ([]Driver, error) {
	column := "license_number"
	if by == SearchByName {
		column = "full_name"
	}

	query := fmt.Sprintf(`
		SELECT id, full_name, license_number, address, phone, created_date
		FROM drivers
		WHERE %s ILIKE $1 ESCAPE '\'
		ORDER BY id DESC`, column)

	drivers := []Driver{}
	pattern := "%" + core.EscapeLike(value) + "%"
	if err := r.db.SelectContext(ctx, &drivers, query, pattern); err != nil {
		return nil, fmt.Errorf("search drivers: %w", err)
	}

	return drivers, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM drivers`); err != nil {
		return 0, fmt.Errorf("count drivers: %w", err)
	}
	return count, nil
}
