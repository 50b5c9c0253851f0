package job

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"jobboard/pkg/apperr"
	"jobboard/pkg/auth"
)

type fakeRepo struct {
	byID map[uuid.UUID]Job
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byID: map[uuid.UUID]Job{}} }

func (r *fakeRepo) Create(_ context.Context, j Job) error {
	r.byID[j.ID] = j
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return Job{}, apperr.ErrNotFound
	}
	return j, nil
}

func (r *fakeRepo) ListActive(_ context.Context, _, _ int) ([]Job, error) {
	var res []Job
	for _, j := range r.byID {
		if j.Active {
			res = append(res, j)
		}
	}
	return res, nil
}

func (r *fakeRepo) Update(_ context.Context, j Job) error {
	if _, ok := r.byID[j.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[j.ID] = j
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func validInput() CreateInput {
	return CreateInput{
		Title:       "Backend Engineer",
		Description: "Build APIs",
		Type:        TypeFullTime,
		Experience:  ExperienceMid,
		Active:      true,
	}
}

func TestCreateRoleGate(t *testing.T) {
	svc := NewService(newFakeRepo())
	applicant := auth.Actor{ID: uuid.New(), Role: auth.RoleApplicant}

	if _, err := svc.Create(context.Background(), applicant, validInput()); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for applicant, got %v", err)
	}

	employer := auth.Actor{ID: uuid.New(), Role: auth.RoleEmployer}
	j, err := svc.Create(context.Background(), employer, validInput())
	if err != nil {
		t.Fatalf("employer create: %v", err)
	}
	if j.OwnerID != employer.ID {
		t.Fatalf("owner must be the creating actor, got %s", j.OwnerID)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	employer := auth.Actor{ID: uuid.New(), Role: auth.RoleEmployer}

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"blank title", func(in *CreateInput) { in.Title = "   " }},
		{"blank description", func(in *CreateInput) { in.Description = "" }},
		{"bad type", func(in *CreateInput) { in.Type = "seasonal" }},
		{"bad experience", func(in *CreateInput) { in.Experience = "guru" }},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		if _, err := svc.Create(context.Background(), employer, in); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestListReturnsOnlyActive(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	employer := auth.Actor{ID: uuid.New(), Role: auth.RoleEmployer}

	if _, err := svc.Create(context.Background(), employer, validInput()); err != nil {
		t.Fatalf("create active: %v", err)
	}
	closed := validInput()
	closed.Active = false
	if _, err := svc.Create(context.Background(), employer, closed); err != nil {
		t.Fatalf("create inactive: %v", err)
	}

	jobs, err := svc.List(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 || !jobs[0].Active {
		t.Fatalf("expected the single active posting, got %d", len(jobs))
	}
}

func TestUpdateOwnershipAndPatch(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := auth.Actor{ID: uuid.New(), Role: auth.RoleEmployer}
	rival := auth.Actor{ID: uuid.New(), Role: auth.RoleEmployer}
	admin := auth.Actor{ID: uuid.New(), Role: auth.RoleAdmin}

	j, err := svc.Create(context.Background(), owner, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newTitle := "Senior Backend Engineer"
	if _, err := svc.Update(context.Background(), rival, j.ID, Patch{Title: &newTitle}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	remote := true
	updated, err := svc.Update(context.Background(), owner, j.ID, Patch{Title: &newTitle, Remote: &remote})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != newTitle || !updated.Remote {
		t.Fatalf("patched fields not applied: %+v", updated)
	}
	// Untouched fields survive a partial patch.
	if updated.Description != j.Description || updated.Type != j.Type {
		t.Fatalf("unpatched fields must be preserved: %+v", updated)
	}
	if updated.UpdatedAt.Before(j.UpdatedAt) {
		t.Fatalf("updated_at must advance")
	}

	// Admin edits any posting.
	active := false
	updated, err = svc.Update(context.Background(), admin, j.ID, Patch{Active: &active})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Active {
		t.Fatalf("expected posting deactivated")
	}
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := auth.Actor{ID: uuid.New(), Role: auth.RoleEmployer}
	rival := auth.Actor{ID: uuid.New(), Role: auth.RoleEmployer}

	j, err := svc.Create(context.Background(), owner, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), rival, j.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, j.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), j.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
