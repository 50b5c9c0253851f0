package auth

import "context"

// UserRepository abstracts persistence concerns from the domain layer.
// Email uniqueness is the repository's responsibility: Create must return
// apperr.ErrConflict on a duplicate, enforced by a storage-level constraint.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	// UpsertGoogle creates the user as an applicant if the email is unknown,
	// otherwise refreshes google id and picture while preserving the role.
	UpsertGoogle(ctx context.Context, email, name, googleID, picture string) (User, error)
}
