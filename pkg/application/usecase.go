package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobboard/pkg/apperr"
	"jobboard/pkg/auth"
	"jobboard/pkg/job"
	"jobboard/pkg/match"
	"jobboard/pkg/resume"
)

// Matcher is the resume match engine port. Implementations never fail: a
// degraded oracle yields the fallback assessment.
type Matcher interface {
	Assess(ctx context.Context, resumeText, jobDescription string) match.Assessment
}

// UseCase covers the application workflow: submission, visibility-scoped
// listing and status review.
type UseCase interface {
	Submit(ctx context.Context, actor auth.Actor, input SubmitInput) (Application, error)
	List(ctx context.Context, actor auth.Actor, jobFilter *uuid.UUID, limit, offset int) ([]Application, error)
	Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (Application, error)
	UpdateStatus(ctx context.Context, actor auth.Actor, id uuid.UUID, patch Patch) (Application, error)
}

type SubmitInput struct {
	JobID       uuid.UUID
	CoverLetter string
	ResumeID    uuid.UUID
}

type service struct {
	repo         Repository
	jobs         job.Repository
	resumes      resume.Repository
	matcher      Matcher
	logger       *zap.Logger
	matchTimeout time.Duration
}

func NewService(repo Repository, jobs job.Repository, resumes resume.Repository, matcher Matcher, logger *zap.Logger, matchTimeout time.Duration) UseCase {
	if matchTimeout <= 0 {
		matchTimeout = 30 * time.Second
	}
	return &service{
		repo:         repo,
		jobs:         jobs,
		resumes:      resumes,
		matcher:      matcher,
		logger:       logger,
		matchTimeout: matchTimeout,
	}
}

func (s *service) Submit(ctx context.Context, actor auth.Actor, input SubmitInput) (Application, error) {
	if !actor.Can(auth.ActionSubmitApplication) {
		return Application{}, fmt.Errorf("%w: only applicants can submit applications", apperr.ErrForbidden)
	}
	j, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		return Application{}, fmt.Errorf("job: %w", err)
	}
	r, err := s.resumes.GetByID(ctx, input.ResumeID)
	if err != nil {
		return Application{}, fmt.Errorf("resume: %w", err)
	}
	if r.OwnerID != actor.ID {
		return Application{}, fmt.Errorf("%w: not the owner of this resume", apperr.ErrForbidden)
	}

	now := time.Now().UTC()
	app := Application{
		ID:          uuid.New(),
		JobID:       j.ID,
		ApplicantID: actor.ID,
		CoverLetter: input.CoverLetter,
		ResumeID:    input.ResumeID,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// The composite unique index on (job_id, applicant_id) is the authority
	// here; Create surfaces the duplicate as ErrConflict even when two
	// submissions for the same pair race.
	if err := s.repo.Create(ctx, app); err != nil {
		return Application{}, err
	}

	// The submission is committed; matching runs under its own deadline and
	// only ever adds an assessment, degraded or not.
	assessment := s.assess(ctx, j, input.ResumeID)
	if err := s.repo.SaveAssessment(ctx, app.ID, assessment, time.Now().UTC()); err != nil {
		s.logger.Error("save match assessment",
			zap.String("application_id", app.ID.String()),
			zap.Error(err),
		)
	} else {
		app.Assessment = &assessment
	}
	return app, nil
}

func (s *service) assess(ctx context.Context, j job.Job, resumeID uuid.UUID) match.Assessment {
	text, err := s.resumes.GetText(ctx, resumeID)
	if err != nil {
		s.logger.Warn("load resume text for matching", zap.Error(err))
		return match.Fallback(err.Error())
	}
	mctx, cancel := context.WithTimeout(ctx, s.matchTimeout)
	defer cancel()
	return s.matcher.Assess(mctx, text, describeJob(j))
}

// describeJob flattens a posting into the free-text form the oracle compares
// the resume against.
func describeJob(j job.Job) string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(j.Title)
	b.WriteString("\n\n")
	b.WriteString(j.Description)
	if len(j.Requirements) > 0 {
		b.WriteString("\n\nRequirements:\n- ")
		b.WriteString(strings.Join(j.Requirements, "\n- "))
	}
	if len(j.Skills) > 0 {
		b.WriteString("\n\nSkills: ")
		b.WriteString(strings.Join(j.Skills, ", "))
	}
	return b.String()
}

func (s *service) List(ctx context.Context, actor auth.Actor, jobFilter *uuid.UUID, limit, offset int) ([]Application, error) {
	switch actor.Role {
	case auth.RoleApplicant:
		apps, err := s.repo.ListByApplicant(ctx, actor.ID, limit, offset)
		if err != nil {
			return nil, err
		}
		if jobFilter == nil {
			return apps, nil
		}
		filtered := make([]Application, 0, len(apps))
		for _, a := range apps {
			if a.JobID == *jobFilter {
				filtered = append(filtered, a)
			}
		}
		return filtered, nil
	case auth.RoleEmployer:
		if jobFilter != nil {
			j, err := s.jobs.GetByID(ctx, *jobFilter)
			if err != nil {
				return nil, fmt.Errorf("job: %w", err)
			}
			if !actor.Manages(j.OwnerID) {
				return nil, fmt.Errorf("%w: not the owner of this job", apperr.ErrForbidden)
			}
			return s.repo.ListByJob(ctx, *jobFilter, limit, offset)
		}
		return s.repo.ListByJobOwner(ctx, actor.ID, limit, offset)
	case auth.RoleAdmin:
		if jobFilter != nil {
			return s.repo.ListByJob(ctx, *jobFilter, limit, offset)
		}
		return s.repo.ListAll(ctx, limit, offset)
	default:
		return nil, apperr.ErrForbidden
	}
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	switch actor.Role {
	case auth.RoleAdmin:
		return app, nil
	case auth.RoleApplicant:
		if app.ApplicantID != actor.ID {
			return Application{}, fmt.Errorf("%w: not your application", apperr.ErrForbidden)
		}
		return app, nil
	case auth.RoleEmployer:
		j, err := s.jobs.GetByID(ctx, app.JobID)
		if err != nil || !actor.Manages(j.OwnerID) {
			return Application{}, fmt.Errorf("%w: not the owner of the associated job", apperr.ErrForbidden)
		}
		return app, nil
	default:
		return Application{}, apperr.ErrForbidden
	}
}

func (s *service) UpdateStatus(ctx context.Context, actor auth.Actor, id uuid.UUID, patch Patch) (Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if !actor.Can(auth.ActionReviewApplications) {
		return Application{}, fmt.Errorf("%w: applicants cannot review applications", apperr.ErrForbidden)
	}
	if actor.Role == auth.RoleEmployer {
		j, err := s.jobs.GetByID(ctx, app.JobID)
		if err != nil || !actor.Manages(j.OwnerID) {
			return Application{}, fmt.Errorf("%w: not the owner of the associated job", apperr.ErrForbidden)
		}
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return Application{}, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, *patch.Status)
		}
		if app.Status.Terminal() && *patch.Status != app.Status {
			return Application{}, fmt.Errorf("%w: application already finalized as %s", apperr.ErrConflict, app.Status)
		}
		app.Status = *patch.Status
	}
	if patch.Feedback != nil {
		app.Feedback = *patch.Feedback
	}
	app.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	// Read-after-write: return the stored record, not the patched copy.
	return s.repo.GetByID(ctx, id)
}
