// AngelaMos | 2026
// policy_test.go

package violation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/carterperez-dev/traffic-registry/internal/core"
)

func TestDecisionTableIsExhaustive(t *testing.T) {
	actions := []Action{ActionEdit, ActionDelete, ActionApprove}
	states := []string{ApprovalPending, ApprovalApproved}

	count := 0
	for _, action := range actions {
		for _, admin := range []bool{false, true} {
			for _, own := range []bool{false, true} {
				for _, state := range states {
					if _, ok := decisions[Rule{action, admin, own, state}]; !ok {
						t.Errorf("missing rule %s admin=%v own=%v state=%s", action, admin, own, state)
					}
					count++
				}
			}
		}
	}

	if len(decisions) != count {
		t.Fatalf("table has %d entries, expected %d", len(decisions), count)
	}
}

func TestDecide(t *testing.T) {
	const creatorID, otherID, adminID = 10, 20, 1

	user := &core.Actor{ID: creatorID, Role: core.RoleUser}
	stranger := &core.Actor{ID: otherID, Role: core.RoleUser}
	admin := &core.Actor{ID: adminID, Role: core.RoleAdmin}

	record := func(state string) *Violation {
		creator := int64(creatorID)
		return &Violation{ID: 5, ApprovalStatus: state, CreatedBy: &creator}
	}

	tests := []struct {
		name   string
		action Action
		actor  *core.Actor
		state  string
		want   Outcome
	}{
		{"creator edits pending", ActionEdit, user, ApprovalPending, Allow},
		{"creator edits approved", ActionEdit, user, ApprovalApproved, Forbidden},
		{"stranger edits pending", ActionEdit, stranger, ApprovalPending, Forbidden},
		{"stranger edits approved", ActionEdit, stranger, ApprovalApproved, Forbidden},
		{"admin edits approved", ActionEdit, admin, ApprovalApproved, Allow},
		{"admin edits pending", ActionEdit, admin, ApprovalPending, Allow},

		{"creator deletes pending", ActionDelete, user, ApprovalPending, Allow},
		{"creator deletes approved", ActionDelete, user, ApprovalApproved, Forbidden},
		{"stranger deletes pending", ActionDelete, stranger, ApprovalPending, Forbidden},
		{"admin deletes approved", ActionDelete, admin, ApprovalApproved, Allow},

		{"creator approves own", ActionApprove, user, ApprovalPending, Forbidden},
		{"stranger approves", ActionApprove, stranger, ApprovalPending, Forbidden},
		{"admin approves pending", ActionApprove, admin, ApprovalPending, Allow},
		{"admin re-approves", ActionApprove, admin, ApprovalApproved, AlreadyApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.action, tt.actor, record(tt.state))
			if got.Outcome != tt.want {
				t.Fatalf("got %s, want %s", got.Outcome, tt.want)
			}
		})
	}
}

func TestDecide_AdminOwnRecord(t *testing.T) {
	admin := &core.Actor{ID: 1, Role: core.RoleAdmin}
	creator := int64(1)
	v := &Violation{ApprovalStatus: ApprovalApproved, CreatedBy: &creator}

	if got := Decide(ActionApprove, admin, v); got.Outcome != AlreadyApproved {
		t.Fatalf("admin's own approved record: got %s", got.Outcome)
	}
}

func TestDecide_NoCreatorIsNeverOwn(t *testing.T) {
	actor := &core.Actor{ID: 0, Role: core.RoleUser}
	v := &Violation{ApprovalStatus: ApprovalPending}

	if got := Decide(ActionEdit, actor, v); got.Outcome != Forbidden {
		t.Fatalf("a record with no creator must not be editable by users, got %s", got.Outcome)
	}
}

func TestDecide_UnknownStateIsRestrictive(t *testing.T) {
	creator := int64(3)
	actor := &core.Actor{ID: 3, Role: core.RoleUser}
	v := &Violation{ApprovalStatus: "rejected", CreatedBy: &creator}

	if got := Decide(ActionEdit, actor, v); got.Outcome != Forbidden {
		t.Fatalf("unknown state must not be editable by users, got %s", got.Outcome)
	}
}

func TestAuthorize_Errors(t *testing.T) {
	creator := int64(3)
	user := &core.Actor{ID: 3, Role: core.RoleUser}
	admin := &core.Actor{ID: 1, Role: core.RoleAdmin}
	approvedRecord := &Violation{ID: 9, ApprovalStatus: ApprovalApproved, CreatedBy: &creator}

	err := Authorize(ActionEdit, user, approvedRecord)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	appErr := core.ToAppError(err, "violation")
	if appErr.Status != http.StatusForbidden || appErr.Message != reasonAfterApproval {
		t.Fatalf("unexpected app error %+v", appErr)
	}

	err = Authorize(ActionApprove, admin, approvedRecord)
	if !errors.Is(err, core.ErrAlreadyApproved) {
		t.Fatalf("expected ErrAlreadyApproved, got %v", err)
	}
	if appErr := core.ToAppError(err, "violation"); appErr.Status != http.StatusBadRequest || appErr.Code != core.CodeAlreadyApproved {
		t.Fatalf("unexpected app error %+v", appErr)
	}

	if err := Authorize(ActionDelete, admin, approvedRecord); err != nil {
		t.Fatalf("admin delete must be allowed: %v", err)
	}
}
