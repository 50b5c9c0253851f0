package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestPolicyTable(t *testing.T) {
	cases := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleApplicant, ActionSubmitApplication, true},
		{RoleApplicant, ActionCreateJob, false},
		{RoleApplicant, ActionReviewApplications, false},
		{RoleEmployer, ActionCreateJob, true},
		{RoleEmployer, ActionManageJob, true},
		{RoleEmployer, ActionReviewApplications, true},
		{RoleEmployer, ActionSubmitApplication, false},
		{RoleAdmin, ActionCreateJob, true},
		{RoleAdmin, ActionSubmitApplication, true},
		{RoleAdmin, ActionReviewApplications, true},
	}
	for _, tc := range cases {
		actor := Actor{ID: uuid.New(), Role: tc.role}
		if got := actor.Can(tc.action); got != tc.want {
			t.Fatalf("role %s action %d: expected %v, got %v", tc.role, tc.action, tc.want, got)
		}
	}
}

func TestManagesPredicate(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	if !(Actor{ID: owner, Role: RoleEmployer}).Manages(owner) {
		t.Fatalf("owner must manage their resource")
	}
	if (Actor{ID: other, Role: RoleEmployer}).Manages(owner) {
		t.Fatalf("non-owner employer must not manage")
	}
	if !(Actor{ID: other, Role: RoleAdmin}).Manages(owner) {
		t.Fatalf("admin manages everything")
	}
}
