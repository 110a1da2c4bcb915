// AngelaMos | 2026
// policy.go

package violation

import (
	"fmt"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

type Action string

const (
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
)

type Outcome int

const (
	Allow Outcome = iota
	Forbidden
	AlreadyApproved
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Forbidden:
		return "forbidden"
	case AlreadyApproved:
		return "already_approved"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

type Decision struct {
	Outcome Outcome
	Reason  string
}

// Rule identifies one cell of the matrix: who acts, on whose record, in
// which approval state.
type Rule struct {
	Action Action
	Admin  bool
	Own    bool
	State  string
}

const (
	reasonNotCreator     = "you can only change violations you created"
	reasonAfterApproval  = "violation is editable only before approval"
	reasonAdminOnly      = "administrator access required"
	reasonAlreadyApprove = "violation is already approved"
)

var (
	allow    = Decision{Outcome: Allow}
	approved = Decision{Outcome: AlreadyApproved, Reason: reasonAlreadyApprove}
)

func forbid(reason string) Decision {
	return Decision{Outcome: Forbidden, Reason: reason}
}

// decisions is the complete authorization matrix. Every combination of
// action, role, ownership and state has exactly one entry.
var decisions = map[Rule]Decision{
	{ActionEdit, false, true, ApprovalPending}:   allow,
	{ActionEdit, false, true, ApprovalApproved}:  forbid(reasonAfterApproval),
	{ActionEdit, false, false, ApprovalPending}:  forbid(reasonNotCreator),
	{ActionEdit, false, false, ApprovalApproved}: forbid(reasonNotCreator),
	{ActionEdit, true, true, ApprovalPending}:    allow,
	{ActionEdit, true, true, ApprovalApproved}:   allow,
	{ActionEdit, true, false, ApprovalPending}:   allow,
	{ActionEdit, true, false, ApprovalApproved}:  allow,

	{ActionDelete, false, true, ApprovalPending}:   allow,
	{ActionDelete, false, true, ApprovalApproved}:  forbid(reasonAfterApproval),
	{ActionDelete, false, false, ApprovalPending}:  forbid(reasonNotCreator),
	{ActionDelete, false, false, ApprovalApproved}: forbid(reasonNotCreator),
	{ActionDelete, true, true, ApprovalPending}:    allow,
	{ActionDelete, true, true, ApprovalApproved}:   allow,
	{ActionDelete, true, false, ApprovalPending}:   allow,
	{ActionDelete, true, false, ApprovalApproved}:  allow,

	{ActionApprove, false, true, ApprovalPending}:   forbid(reasonAdminOnly),
	{ActionApprove, false, true, ApprovalApproved}:  forbid(reasonAdminOnly),
	{ActionApprove, false, false, ApprovalPending}:  forbid(reasonAdminOnly),
	{ActionApprove, false, false, ApprovalApproved}: forbid(reasonAdminOnly),
	{ActionApprove, true, true, ApprovalPending}:    allow,
	{ActionApprove, true, true, ApprovalApproved}:   approved,
	{ActionApprove, true, false, ApprovalPending}:   allow,
	{ActionApprove, true, false, ApprovalApproved}:  approved,
}

// Decide looks up the matrix for actor acting on v. Unknown approval states
// are treated as approved, the more restrictive of the two.
func Decide(action Action, actor *core.Actor, v *Violation) Decision {
	state := ApprovalApproved
	if v.ApprovalStatus == ApprovalPending {
		state = ApprovalPending
	}

	d, ok := decisions[Rule{
		Action: action,
		Admin:  actor.IsAdmin(),
		Own:    v.CreatedByUser(actor.ID),
		State:  state,
	}]
	if !ok {
		return forbid(reasonAdminOnly)
	}
	return d
}

// Authorize turns a Decision into the error the caller should return.
func Authorize(action Action, actor *core.Actor, v *Violation) error {
	d := Decide(action, actor, v)

	switch d.Outcome {
	case Allow:
		return nil
	case AlreadyApproved:
		return fmt.Errorf("%s violation %d: %w", action, v.ID, core.ErrAlreadyApproved)
	}

	return fmt.Errorf("%s violation %d: %w", action, v.ID, core.Reason(core.ErrForbidden, d.Reason))
}
