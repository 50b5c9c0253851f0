package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard/pkg/apperr"
	"jobboard/pkg/resume"
)

// ResumeRepository implements resume.Repository backed by PostgreSQL (pgx).
// Extracted text lives next to the metadata; the original file is not
// retained after parsing.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) (*ResumeRepository, error) {
	r := &ResumeRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ResumeRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS resumes (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL DEFAULT '',
	size BIGINT NOT NULL DEFAULT 0,
	content_text TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resumes_owner ON resumes(owner_id);
`)
	return err
}

func (r *ResumeRepository) Create(ctx context.Context, rec resume.Resume, text string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (id, owner_id, filename, mime_type, size, content_text, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, rec.ID, rec.OwnerID, rec.Filename, rec.MimeType, rec.Size, text, rec.CreatedAt)
	return err
}

func (r *ResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, filename, mime_type, size, created_at FROM resumes WHERE id = $1
`, id)
	var rec resume.Resume
	var created time.Time
	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Filename, &rec.MimeType, &rec.Size, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, apperr.ErrNotFound
		}
		return resume.Resume{}, err
	}
	rec.CreatedAt = created.UTC()
	return rec, nil
}

func (r *ResumeRepository) GetText(ctx context.Context, id uuid.UUID) (string, error) {
	row := r.pool.QueryRow(ctx, `SELECT content_text FROM resumes WHERE id = $1`, id)
	var text string
	if err := row.Scan(&text); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.ErrNotFound
		}
		return "", err
	}
	return text, nil
}
