package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard/pkg/apperr"
	"jobboard/pkg/application"
	"jobboard/pkg/match"
)

// ApplicationRepository implements application.Repository backed by
// PostgreSQL (pgx). The composite unique index on (job_id, applicant_id)
// closes the race between concurrent duplicate submissions.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	r := &ApplicationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	applicant_id UUID NOT NULL,
	cover_letter TEXT NOT NULL DEFAULT '',
	resume_id UUID NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	feedback TEXT NOT NULL DEFAULT '',
	assessment JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_id, applicant_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_applicant ON applications(applicant_id);
`)
	return err
}

const appColumns = `id, job_id, applicant_id, cover_letter, resume_id, status, feedback, assessment, created_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) error {
	var assessment []byte
	if app.Assessment != nil {
		b, err := json.Marshal(app.Assessment)
		if err != nil {
			return err
		}
		assessment = b
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO applications (`+appColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`, app.ID, app.JobID, app.ApplicantID, app.CoverLetter, app.ResumeID,
		string(app.Status), app.Feedback, assessment, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: already applied for this job", apperr.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+appColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+appColumns+` FROM applications WHERE applicant_id = $3
ORDER BY created_at ASC LIMIT $1 OFFSET $2`, limit, offset, applicantID)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+appColumns+` FROM applications WHERE job_id = $3
ORDER BY created_at ASC LIMIT $1 OFFSET $2`, limit, offset, jobID)
}

func (r *ApplicationRepository) ListByJobOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]application.Application, error) {
	return r.list(ctx, `
SELECT a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_id, a.status, a.feedback, a.assessment, a.created_at, a.updated_at
FROM applications a
JOIN jobs j ON j.id = a.job_id
WHERE j.owner_id = $3
ORDER BY a.created_at ASC LIMIT $1 OFFSET $2`, limit, offset, ownerID)
}

func (r *ApplicationRepository) ListAll(ctx context.Context, limit, offset int) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+appColumns+` FROM applications
ORDER BY created_at ASC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, limit, offset int, args ...any) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	all := append([]any{limit, offset}, args...)
	rows, err := r.pool.Query(ctx, query, all...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, app)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) Update(ctx context.Context, app application.Application) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE applications SET status = $2, feedback = $3, updated_at = $4 WHERE id = $1
`, app.ID, string(app.Status), app.Feedback, app.UpdatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) SaveAssessment(ctx context.Context, id uuid.UUID, a match.Assessment, updatedAt time.Time) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE applications SET assessment = $2, updated_at = $3 WHERE id = $1
`, id, b, updatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var app application.Application
	var status string
	var assessment []byte
	var created, updated time.Time
	err := row.Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumeID,
		&status, &app.Feedback, &assessment, &created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, apperr.ErrNotFound
		}
		return application.Application{}, err
	}
	app.Status = application.Status(status)
	if len(assessment) > 0 {
		var a match.Assessment
		if err := json.Unmarshal(assessment, &a); err == nil {
			app.Assessment = &a
		}
	}
	app.CreatedAt = created.UTC()
	app.UpdatedAt = updated.UTC()
	return app, nil
}
