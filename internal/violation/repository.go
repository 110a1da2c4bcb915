// AngelaMos | 2026
// repository.go

package violation

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Violation, error)
	Insert(ctx context.Context, v *Violation) error
	Update(ctx context.Context, v *Violation) error
	Delete(ctx context.Context, id int64) error
	Approve(ctx context.Context, id, approverID int64, status string, at time.Time) (*Violation, error)
	List(ctx context.Context) ([]ListedViolation, error)
	ApprovedSummary(ctx context.Context) (count int, totalFines float64, err error)
	RecentApproved(ctx context.Context, limit int) ([]ListedViolation, error)
}

var constraintFields = core.ConstraintFields{
	"violations_driver_id_fkey":   "driverId",
	"violations_vehicle_id_fkey":  "vehicleId",
	"violations_created_by_fkey":  "createdBy",
	"violations_approved_by_fkey": "approvedBy",
}

const violationColumns = `id, driver_id, vehicle_id, violation_type, fine_amount,
		       violation_date, status, approval_status, created_by,
		       approved_by, approved_at`

const listedQuery = `
		SELECT v.id, v.driver_id, v.vehicle_id, v.violation_type, v.fine_amount,
		       v.violation_date, v.status, v.approval_status, v.created_by,
		       v.approved_by, v.approved_at,
		       d.full_name, ve.license_plate, ve.brand, ve.model,
		       cu.name AS creator_name, au.name AS approver_name
		FROM violations v
		LEFT JOIN drivers d ON v.driver_id = d.id
		LEFT JOIN vehicles ve ON v.vehicle_id = ve.id
		LEFT JOIN users cu ON v.created_by = cu.id
		LEFT JOIN users au ON v.approved_by = au.id`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Violation, error) {
	query := `SELECT ` + violationColumns + ` FROM violations WHERE id = $1`

	var v Violation
	err := r.db.GetContext(ctx, &v, query, id)
	if core.IsNoRows(err) {
		return nil, fmt.Errorf("get violation: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get violation: %w", err)
	}

	return &v, nil
}

func (r *repository) Insert(ctx context.Context, v *Violation) error {
	query := `
		INSERT INTO violations (driver_id, vehicle_id, violation_type, fine_amount,
		                        status, approval_status, created_by, approved_by,
		                        approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, violation_date`

	err := r.db.GetContext(ctx, v, query,
		v.DriverID,
		v.VehicleID,
		v.ViolationType,
		v.FineAmount,
		v.Status,
		v.ApprovalStatus,
		v.CreatedBy,
		v.ApprovedBy,
		v.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("insert violation: %w", core.ClassifyError(err, constraintFields))
	}

	return nil
}

func (r *repository) Update(ctx context.Context, v *Violation) error {
	query := `
		UPDATE violations
		SET driver_id = $2, vehicle_id = $3, violation_type = $4,
		    fine_amount = $5, status = $6, approval_status = $7,
		    approved_by = $8, approved_at = $9
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.DriverID,
		v.VehicleID,
		v.ViolationType,
		v.FineAmount,
		v.Status,
		v.ApprovalStatus,
		v.ApprovedBy,
		v.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("update violation: %w", core.ClassifyError(err, constraintFields))
	}

	if err := core.RequireAffected(result); err != nil {
		return fmt.Errorf("update violation: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM violations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete violation: %w", err)
	}

	if err := core.RequireAffected(result); err != nil {
		return fmt.Errorf("delete violation: %w", err)
	}

	return nil
}

// Approve performs the pending to approved transition. The state guard in
// the WHERE clause makes a concurrent second approval fail instead of
// overwriting the first approver. When no row matches, a follow-up read
// separates a deleted record from an approved one.
func (r *repository) Approve(
	ctx context.Context,
	id, approverID int64,
	status string,
	at time.Time,
) (*Violation, error) {
	query := `
		UPDATE violations
		SET approval_status = 'approved', approved_by = $2, approved_at = $3,
		    status = $4
		WHERE id = $1 AND approval_status = 'pending'
		RETURNING ` + violationColumns

	var v Violation
	err := r.db.GetContext(ctx, &v, query, id, approverID, at, status)
	if core.IsNoRows(err) {
		return nil, r.approveMiss(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("approve violation: %w", err)
	}

	return &v, nil
}

func (r *repository) approveMiss(ctx context.Context, id int64) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM violations WHERE id = $1)`, id)
	if err != nil {
		return fmt.Errorf("approve violation: %w", err)
	}
	if !exists {
		return fmt.Errorf("approve violation: %w", core.ErrNotFound)
	}
	return fmt.Errorf("approve violation: %w", core.ErrAlreadyApproved)
}

func (r *repository) List(ctx context.Context) ([]ListedViolation, error) {
	violations := []ListedViolation{}
	query := listedQuery + ` ORDER BY v.violation_date DESC, v.id DESC`
	if err := r.db.SelectContext(ctx, &violations, query); err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}
	return violations, nil
}

func (r *repository) ApprovedSummary(ctx context.Context) (int, float64, error) {
	query := `
		SELECT COUNT(*) AS count, COALESCE(SUM(fine_amount), 0) AS total_fines
		FROM violations
		WHERE approval_status = 'approved'`

	var row struct {
		Count      int     `db:"count"`
		TotalFines float64 `db:"total_fines"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return 0, 0, fmt.Errorf("summarize violations: %w", err)
	}

	return row.Count, row.TotalFines, nil
}

func (r *repository) RecentApproved(ctx context.Context, limit int) ([]ListedViolation, error) {
	violations := []ListedViolation{}
	query := listedQuery + `
		WHERE v.approval_status = 'approved'
		ORDER BY v.violation_date DESC, v.id DESC
		LIMIT $1`
	if err := r.db.SelectContext(ctx, &violations, query, limit); err != nil {
		return nil, fmt.Errorf("recent violations: %w", err)
	}
	return violations, nil
}
