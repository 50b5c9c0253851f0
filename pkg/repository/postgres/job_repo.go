package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard/pkg/apperr"
	"jobboard/pkg/job"
)

// JobRepository implements job.Repository backed by PostgreSQL (pgx).
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	requirements TEXT[] NOT NULL DEFAULT '{}',
	job_type TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	remote BOOLEAN NOT NULL DEFAULT FALSE,
	salary_min DOUBLE PRECISION,
	salary_max DOUBLE PRECISION,
	experience TEXT NOT NULL,
	skills TEXT[] NOT NULL DEFAULT '{}',
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_owner ON jobs(owner_id);
`)
	return err
}

const jobColumns = `id, owner_id, title, description, requirements, job_type, location, remote,
	salary_min, salary_max, experience, skills, active, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (`+jobColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`, j.ID, j.OwnerID, j.Title, j.Description, j.Requirements, string(j.Type), j.Location, j.Remote,
		j.SalaryMin, j.SalaryMax, string(j.Experience), j.Skills, j.Active, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) ListActive(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE active = TRUE
ORDER BY created_at ASC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE jobs SET
	title = $2, description = $3, requirements = $4, job_type = $5, location = $6,
	remote = $7, salary_min = $8, salary_max = $9, experience = $10, skills = $11,
	active = $12, updated_at = $13
WHERE id = $1
`, j.ID, j.Title, j.Description, j.Requirements, string(j.Type), j.Location,
		j.Remote, j.SalaryMin, j.SalaryMax, string(j.Experience), j.Skills,
		j.Active, j.UpdatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var jobType, experience string
	var created, updated time.Time
	err := row.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Description, &j.Requirements, &jobType,
		&j.Location, &j.Remote, &j.SalaryMin, &j.SalaryMax, &experience, &j.Skills,
		&j.Active, &created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, apperr.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.Experience = job.ExperienceLevel(experience)
	j.CreatedAt = created.UTC()
	j.UpdatedAt = updated.UTC()
	return j, nil
}
