// Package apperr defines the stable error taxonomy shared by all domains.
// Use cases wrap these sentinels with context; the HTTP presenter maps them
// to status codes without exposing internal detail.
package apperr

import "errors"

var (
	// ErrNotFound: the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: authenticated but not authorized for this resource.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict: duplicate email, duplicate application, or an update that
	// conflicts with current state.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials covers unknown email, absent password and hash
	// mismatch uniformly, so callers cannot tell which condition failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenInvalid covers malformed, expired and unverifiable tokens.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrUnauthenticated: no usable identity on the request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrValidation: the request payload fails domain validation.
	ErrValidation = errors.New("validation failed")
	// ErrExternalService: an external collaborator is degraded. Only the
	// resume match engine recovers from this locally; elsewhere it propagates.
	ErrExternalService = errors.New("external service degraded")
)
