// AngelaMos | 2026
// entity.go

package violation

import (
	"time"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
)

const (
	StatusUnpaid           = "unpaid"
	StatusAwaitingApproval = "awaiting_approval"
)

type Violation struct {
	ID             int64      `db:"id"              json:"id"`
	DriverID       *int64     `db:"driver_id"       json:"driver_id"`
	VehicleID      *int64     `db:"vehicle_id"      json:"vehicle_id"`
	ViolationType  string     `db:"violation_type"  json:"violation_type"`
	FineAmount     *float64   `db:"fine_amount"     json:"fine_amount"`
	ViolationDate  time.Time  `db:"violation_date"  json:"violation_date"`
	Status         string     `db:"status"          json:"status"`
	ApprovalStatus string     `db:"approval_status" json:"approval_status"`
	CreatedBy      *int64     `db:"created_by"      json:"created_by"`
	ApprovedBy     *int64     `db:"approved_by"     json:"approved_by"`
	ApprovedAt     *time.Time `db:"approved_at"     json:"approved_at"`
}

func (v *Violation) IsApproved() bool {
	return v.ApprovalStatus == ApprovalApproved
}

func (v *Violation) CreatedByUser(userID int64) bool {
	return v.CreatedBy != nil && *v.CreatedBy == userID
}

// ListedViolation is the joined row shown in tables and on the dashboard.
type ListedViolation struct {
	Violation
	FullName     *string `db:"full_name"     json:"full_name"`
	LicensePlate *string `db:"license_plate" json:"license_plate"`
	Brand        *string `db:"brand"         json:"brand"`
	Model        *string `db:"model"         json:"model"`
	CreatorName  *string `db:"creator_name"  json:"creator_name"`
	ApproverName *string `db:"approver_name" json:"approver_name"`
}
