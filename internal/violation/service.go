// AngelaMos | 2026
// service.go

package violation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

const (
	MessageAdded           = "violation added"
	MessageSentForApproval = "violation sent for approval"
)

// Service is the violation workflow: it decides the initial approval state,
// checks every transition against the decision table and persists through
// the repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]ListedViolation, error) {
	return s.repo.List(ctx)
}

// Create files a violation. Admin filings are approved on the spot; anyone
// else's wait for an administrator.
func (s *Service) Create(
	ctx context.Context,
	actor *core.Actor,
	req CreateRequest,
) (*Violation, string, error) {
	ctx, span := core.StartSpan(ctx, "violation.create",
		attribute.Int64("actor.id", actor.ID),
		attribute.String("actor.role", actor.Role),
	)
	defer span.End()

	driverID, err := requiredID(req.DriverID, "driverId")
	if err != nil {
		return nil, "", err
	}
	vehicleID, err := requiredID(req.VehicleID, "vehicleId")
	if err != nil {
		return nil, "", err
	}

	violationType := core.LooseString(req.ViolationType)
	if violationType == "" {
		return nil, "", invalid("violationType", "violation type is required")
	}

	fine, err := optionalAmount(req.FineAmount)
	if err != nil {
		return nil, "", err
	}

	creator := actor.ID
	v := &Violation{
		DriverID:      &driverID,
		VehicleID:     &vehicleID,
		ViolationType: violationType,
		FineAmount:    fine,
		CreatedBy:     &creator,
	}

	message := MessageSentForApproval
	if actor.IsAdmin() {
		now := s.now()
		v.ApprovalStatus = ApprovalApproved
		v.Status = StatusUnpaid
		v.ApprovedBy = &creator
		v.ApprovedAt = &now
		message = MessageAdded
	} else {
		v.ApprovalStatus = ApprovalPending
		v.Status = StatusAwaitingApproval
	}

	if err := s.repo.Insert(ctx, v); err != nil {
		core.SetSpanError(ctx, err)
		return nil, "", err
	}

	core.AddSpanEvent(ctx, "violation.created",
		attribute.Int64("violation.id", v.ID),
		attribute.String("approval_status", v.ApprovalStatus),
	)
	slog.InfoContext(ctx, "violation created",
		"violation_id", v.ID,
		"created_by", actor.ID,
		"approval_status", v.ApprovalStatus,
	)

	return v, message, nil
}

// Update edits a violation the actor is allowed to touch. Omitted or
// malformed ids keep their stored value. A non-admin edit always sends the
// record back to pending, clearing any approval.
func (s *Service) Update(
	ctx context.Context,
	actor *core.Actor,
	id int64,
	req UpdateRequest,
) (*Violation, error) {
	ctx, span := core.StartSpan(ctx, "violation.update",
		attribute.Int64("violation.id", id),
		attribute.Int64("actor.id", actor.ID),
	)
	defer span.End()

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(ActionEdit, actor, v); err != nil {
		s.denied(ctx, ActionEdit, actor, v, err)
		return nil, err
	}

	if n, present, ok := core.LooseInt64(req.DriverID); present && ok {
		v.DriverID = &n
	}
	if n, present, ok := core.LooseInt64(req.VehicleID); present && ok {
		v.VehicleID = &n
	}
	if t := core.LooseString(req.ViolationType); t != "" {
		v.ViolationType = t
	}

	fine, present, ok := core.LooseFloat64(req.FineAmount)
	switch {
	case !ok:
		return nil, invalid("fineAmount", "fine amount must be a number")
	case present && fine < 0:
		return nil, invalid("fineAmount", "fine amount must not be negative")
	case present:
		v.FineAmount = &fine
	}

	if actor.IsAdmin() {
		if status := core.LooseString(req.Status); status != "" {
			v.Status = status
		}
	} else {
		v.Status = StatusAwaitingApproval
		v.ApprovalStatus = ApprovalPending
		v.ApprovedBy = nil
		v.ApprovedAt = nil
	}

	if err := s.repo.Update(ctx, v); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	core.AddSpanEvent(ctx, "violation.updated",
		attribute.String("approval_status", v.ApprovalStatus),
	)
	slog.InfoContext(ctx, "violation updated",
		"violation_id", v.ID,
		"by", actor.ID,
		"approval_status", v.ApprovalStatus,
	)

	return v, nil
}

func (s *Service) Delete(ctx context.Context, actor *core.Actor, id int64) error {
	ctx, span := core.StartSpan(ctx, "violation.delete",
		attribute.Int64("violation.id", id),
		attribute.Int64("actor.id", actor.ID),
	)
	defer span.End()

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := Authorize(ActionDelete, actor, v); err != nil {
		s.denied(ctx, ActionDelete, actor, v, err)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		core.SetSpanError(ctx, err)
		return err
	}

	core.AddSpanEvent(ctx, "violation.deleted")
	slog.InfoContext(ctx, "violation deleted",
		"violation_id", id,
		"by", actor.ID,
	)

	return nil
}

// Approve moves a pending violation to approved. A status the filer never
// really had (blank or awaiting approval) becomes unpaid.
func (s *Service) Approve(ctx context.Context, actor *core.Actor, id int64) (*Violation, error) {
	ctx, span := core.StartSpan(ctx, "violation.approve",
		attribute.Int64("violation.id", id),
		attribute.Int64("actor.id", actor.ID),
	)
	defer span.End()

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(ActionApprove, actor, v); err != nil {
		s.denied(ctx, ActionApprove, actor, v, err)
		return nil, err
	}

	status := v.Status
	if status == "" || status == StatusAwaitingApproval {
		status = StatusUnpaid
	}

	approved, err := s.repo.Approve(ctx, id, actor.ID, status, s.now())
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	core.AddSpanEvent(ctx, "violation.approved",
		attribute.String("status", approved.Status),
	)
	slog.InfoContext(ctx, "violation approved",
		"violation_id", id,
		"approved_by", actor.ID,
	)

	return approved, nil
}

func (s *Service) denied(
	ctx context.Context,
	action Action,
	actor *core.Actor,
	v *Violation,
	err error,
) {
	core.AddSpanEvent(ctx, "violation.denied",
		attribute.String("action", string(action)),
		attribute.String("approval_status", v.ApprovalStatus),
	)
	slog.WarnContext(ctx, "violation transition denied",
		"action", action,
		"violation_id", v.ID,
		"actor_id", actor.ID,
		"role", actor.Role,
		"approval_status", v.ApprovalStatus,
		"error", err,
	)
}

func requiredID(value any, field string) (int64, error) {
	n, present, ok := core.LooseInt64(value)
	if !present || !ok || n <= 0 {
		return 0, invalid(field, fmt.Sprintf("%s must be a numeric id", field))
	}
	return n, nil
}

func optionalAmount(value any) (*float64, error) {
	f, present, ok := core.LooseFloat64(value)
	if !ok {
		return nil, invalid("fineAmount", "fine amount must be a number")
	}
	if !present {
		return nil, nil
	}
	if f < 0 {
		return nil, invalid("fineAmount", "fine amount must not be negative")
	}
	return &f, nil
}

func invalid(field, message string) error {
	return core.WithField(core.Reason(core.ErrInvalidInput, message), field)
}
