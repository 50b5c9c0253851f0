package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard/pkg/apperr"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, name, password string, role Role) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	LoginGoogle(ctx context.Context, rawToken string) (AuthResult, error)
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo     UserRepository
	tokens   TokenGenerator
	verifier IdentityVerifier
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenGenerator, verifier IdentityVerifier) AuthUseCase {
	return &authService{repo: repo, tokens: tokens, verifier: verifier}
}

func (s *authService) Register(ctx context.Context, email, name, password string, role Role) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(name) == "" {
		return AuthResult{}, fmt.Errorf("%w: email and name are required", apperr.ErrValidation)
	}
	if role == "" {
		role = RoleApplicant
	}
	if !role.Valid() || role == RoleAdmin {
		// Admin accounts are provisioned out of band, never self-assigned.
		return AuthResult{}, fmt.Errorf("%w: invalid role", apperr.ErrValidation)
	}

	now := time.Now().UTC()
	user := User{
		ID:        uuid.New(),
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return AuthResult{}, err
		}
		user.PasswordHash = string(hash)
	}
	// Uniqueness is enforced by the storage constraint; Create reports the
	// duplicate as a conflict even under concurrent registration.
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	// Unknown email, absent password hash and hash mismatch all map to the
	// same outcome so the response does not leak which condition failed.
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return AuthResult{}, apperr.ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return AuthResult{}, apperr.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, apperr.ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) LoginGoogle(ctx context.Context, rawToken string) (AuthResult, error) {
	if strings.TrimSpace(rawToken) == "" {
		return AuthResult{}, fmt.Errorf("%w: token is required", apperr.ErrValidation)
	}
	ident, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: external token rejected", apperr.ErrUnauthenticated)
	}
	user, err := s.repo.UpsertGoogle(ctx, strings.ToLower(ident.Email), ident.Name, ident.Subject, ident.Picture)
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}
