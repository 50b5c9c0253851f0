package auth

import "github.com/google/uuid"

// Action enumerates the privileged operations gated by role. Ownership is
// checked separately with Actor.Manages.
type Action int

const (
	ActionCreateJob Action = iota
	ActionManageJob
	ActionSubmitApplication
	ActionReviewApplications
)

// rolePermissions is the authorization policy as an explicit table, so the
// full rule set is auditable in one place.
var rolePermissions = map[Role]map[Action]bool{
	RoleApplicant: {
		ActionSubmitApplication: true,
	},
	RoleEmployer: {
		ActionCreateJob:          true,
		ActionManageJob:          true,
		ActionReviewApplications: true,
	},
	RoleAdmin: {
		ActionCreateJob:          true,
		ActionManageJob:          true,
		ActionSubmitApplication:  true,
		ActionReviewApplications: true,
	},
}

// Can reports whether the actor's role permits the action.
func (a Actor) Can(action Action) bool {
	return rolePermissions[a.Role][action]
}

// Manages is the single ownership predicate: an actor manages a resource if
// they own it or are an admin.
func (a Actor) Manages(ownerID uuid.UUID) bool {
	return a.Role == RoleAdmin || a.ID == ownerID
}
