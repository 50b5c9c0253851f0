package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard/pkg/apperr"
	"jobboard/pkg/auth"
)

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
// The unique index on email is what makes duplicate registration a hard
// invariant rather than a best-effort check.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'applicant',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			password_hash TEXT NOT NULL DEFAULT '',
			google_id TEXT NOT NULL DEFAULT '',
			picture TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

const userColumns = `id, email, name, role, active, password_hash, google_id, picture, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, user.ID, strings.ToLower(user.Email), user.Name, string(user.Role), user.Active,
		user.PasswordHash, user.GoogleID, user.Picture, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: email already registered", apperr.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (auth.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return auth.User{}, apperr.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, uid)
	return scanUser(row)
}

func (r *UserRepository) UpsertGoogle(ctx context.Context, email, name, googleID, picture string) (auth.User, error) {
	now := time.Now().UTC()
	// On conflict the role, name and password hash are preserved; only the
	// external identity fields refresh.
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, TRUE, '', $5, $6, $7, $7)
		ON CONFLICT (email) DO UPDATE
			SET google_id = EXCLUDED.google_id,
			    picture = EXCLUDED.picture,
			    updated_at = EXCLUDED.updated_at
		RETURNING `+userColumns+`
	`, uuid.New(), strings.ToLower(email), name, string(auth.RoleApplicant), googleID, picture, now)
	return scanUser(row)
}

func scanUser(row pgx.Row) (auth.User, error) {
	var user auth.User
	var role string
	var createdAt, updatedAt time.Time
	err := row.Scan(&user.ID, &user.Email, &user.Name, &role, &user.Active,
		&user.PasswordHash, &user.GoogleID, &user.Picture, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, apperr.ErrNotFound
		}
		return auth.User{}, err
	}
	user.Role = auth.Role(role)
	user.CreatedAt = createdAt.UTC()
	user.UpdatedAt = updatedAt.UTC()
	return user, nil
}
