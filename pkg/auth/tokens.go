package auth

import "context"

// TokenGenerator abstracts session token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// ExternalIdentity is the result of verifying an external provider token.
type ExternalIdentity struct {
	Email   string
	Subject string
	Name    string
	Picture string
}

// IdentityVerifier abstracts external identity providers (e.g., Google).
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (ExternalIdentity, error)
}
