// AngelaMos | 2026
// repository.go

package vehicle

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]ListedVehicle, error)
	GetByID(ctx context.Context, id int64) (*ListedVehicle, error)
	Create(ctx context.Context, v *Vehicle) error
	Update(ctx context.Context, id int64, v *Vehicle) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

var constraintFields = core.ConstraintFields{
	"vehicles_license_plate_key": "licensePlate",
	"vehicles_owner_id_fkey":     "ownerId",
}

const listQuery = `
		SELECT v.id, v.license_plate, v.brand, v.model, v.year, v.owner_id,
		       v.created_date, d.full_name AS owner_name
		FROM vehicles v
		LEFT JOIN drivers d ON v.owner_id = d.id`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]ListedVehicle, error) {
	vehicles := []ListedVehicle{}
	if err := r.db.SelectContext(ctx, &vehicles, listQuery+` ORDER BY v.id DESC`); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*ListedVehicle, error) {
	var v ListedVehicle
	err := r.db.GetContext(ctx, &v, listQuery+` WHERE v.id = $1`, id)
	if core.IsNoRows(err) {
		return nil, fmt.Errorf("get vehicle: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

func (r *repository) Create(ctx context.Context, v *Vehicle) error {
	query := `
		INSERT INTO vehicles (license_plate, brand, model, year, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_date`

	err := r.db.GetContext(ctx, v, query,
		v.LicensePlate,
		v.Brand,
		v.Model,
		v.Year,
		v.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("create vehicle: %w", core.ClassifyError(err, constraintFields))
	}

	return nil
}

func (r *repository) Update(ctx context.Context, id int64, v *Vehicle) error {
	query := `
		UPDATE vehicles
		SET license_plate = $2, brand = $3, model = $4, year = $5, owner_id = $6
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		id,
		v.LicensePlate,
		v.Brand,
		v.Model,
		v.Year,
		v.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", core.ClassifyError(err, constraintFields))
	}

	if err := core.RequireAffected(result); err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}

	if err := core.RequireAffected(result); err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM vehicles`); err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return count, nil
}
