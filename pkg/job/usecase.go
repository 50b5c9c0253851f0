package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/pkg/apperr"
	"jobboard/pkg/auth"
)

// UseCase encapsulates the job catalog operations with their authorization
// rules: creation is role-gated, mutation is owner-or-admin.
type UseCase interface {
	Create(ctx context.Context, actor auth.Actor, input CreateInput) (Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, error)
	Get(ctx context.Context, id uuid.UUID) (Job, error)
	Update(ctx context.Context, actor auth.Actor, id uuid.UUID, patch Patch) (Job, error)
	Delete(ctx context.Context, actor auth.Actor, id uuid.UUID) error
}

// CreateInput is the full field set of a new posting.
type CreateInput struct {
	Title        string
	Description  string
	Requirements []string
	Type         Type
	Location     string
	Remote       bool
	SalaryMin    *float64
	SalaryMax    *float64
	Experience   ExperienceLevel
	Skills       []string
	Active       bool
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateInput) (Job, error) {
	if !actor.Can(auth.ActionCreateJob) {
		return Job{}, fmt.Errorf("%w: only employers can create job postings", apperr.ErrForbidden)
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return Job{}, fmt.Errorf("%w: title and description are required", apperr.ErrValidation)
	}
	if !input.Type.Valid() {
		return Job{}, fmt.Errorf("%w: unknown job type %q", apperr.ErrValidation, input.Type)
	}
	if !input.Experience.Valid() {
		return Job{}, fmt.Errorf("%w: unknown experience level %q", apperr.ErrValidation, input.Experience)
	}

	now := time.Now().UTC()
	j := Job{
		ID:           uuid.New(),
		OwnerID:      actor.ID,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Requirements: input.Requirements,
		Type:         input.Type,
		Location:     input.Location,
		Remote:       input.Remote,
		SalaryMin:    input.SalaryMin,
		SalaryMax:    input.SalaryMax,
		Experience:   input.Experience,
		Skills:       input.Skills,
		Active:       input.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Job, error) {
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uuid.UUID, patch Patch) (Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if !actor.Manages(j.OwnerID) {
		return Job{}, fmt.Errorf("%w: not the owner of this job", apperr.ErrForbidden)
	}
	applyPatch(&j, patch)
	j.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Manages(j.OwnerID) {
		return fmt.Errorf("%w: not the owner of this job", apperr.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

func applyPatch(j *Job, p Patch) {
	if p.Title != nil {
		j.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Requirements != nil {
		j.Requirements = *p.Requirements
	}
	if p.Type != nil {
		j.Type = *p.Type
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Remote != nil {
		j.Remote = *p.Remote
	}
	if p.SalaryMin != nil {
		j.SalaryMin = p.SalaryMin
	}
	if p.SalaryMax != nil {
		j.SalaryMax = p.SalaryMax
	}
	if p.Experience != nil {
		j.Experience = *p.Experience
	}
	if p.Skills != nil {
		j.Skills = *p.Skills
	}
	if p.Active != nil {
		j.Active = *p.Active
	}
}
