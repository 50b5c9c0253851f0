package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobboard/pkg/apperr"
	"jobboard/pkg/auth"
	"jobboard/pkg/job"
	"jobboard/pkg/match"
	"jobboard/pkg/resume"
)

type fakeAppRepo struct {
	byID   map[uuid.UUID]Application
	byPair map[string]uuid.UUID
	owner  map[uuid.UUID]uuid.UUID // job id -> owner id, mirrors the jobs join
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{byID: map[uuid.UUID]Application{}, byPair: map[string]uuid.UUID{}}
}

func pairKey(jobID, applicantID uuid.UUID) string {
	return jobID.String() + "/" + applicantID.String()
}

func (r *fakeAppRepo) Create(_ context.Context, app Application) error {
	key := pairKey(app.JobID, app.ApplicantID)
	if _, ok := r.byPair[key]; ok {
		return fmt.Errorf("%w: already applied for this job", apperr.ErrConflict)
	}
	r.byPair[key] = app.ID
	r.byID[app.ID] = app
	return nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id uuid.UUID) (Application, error) {
	app, ok := r.byID[id]
	if !ok {
		return Application{}, apperr.ErrNotFound
	}
	return app, nil
}

func (r *fakeAppRepo) ListByApplicant(_ context.Context, applicantID uuid.UUID, _, _ int) ([]Application, error) {
	var res []Application
	for _, a := range r.byID {
		if a.ApplicantID == applicantID {
			res = append(res, a)
		}
	}
	return res, nil
}

func (r *fakeAppRepo) ListByJob(_ context.Context, jobID uuid.UUID, _, _ int) ([]Application, error) {
	var res []Application
	for _, a := range r.byID {
		if a.JobID == jobID {
			res = append(res, a)
		}
	}
	return res, nil
}

func (r *fakeAppRepo) ListByJobOwner(ctx context.Context, ownerID uuid.UUID, _, _ int) ([]Application, error) {
	var res []Application
	for _, a := range r.byID {
		if r.owner != nil && r.owner[a.JobID] == ownerID {
			res = append(res, a)
		}
	}
	return res, nil
}

func (r *fakeAppRepo) ListAll(_ context.Context, _, _ int) ([]Application, error) {
	var res []Application
	for _, a := range r.byID {
		res = append(res, a)
	}
	return res, nil
}

func (r *fakeAppRepo) Update(_ context.Context, app Application) error {
	if _, ok := r.byID[app.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[app.ID] = app
	return nil
}

func (r *fakeAppRepo) SaveAssessment(_ context.Context, id uuid.UUID, a match.Assessment, updatedAt time.Time) error {
	app, ok := r.byID[id]
	if !ok {
		return apperr.ErrNotFound
	}
	app.Assessment = &a
	app.UpdatedAt = updatedAt
	r.byID[id] = app
	return nil
}

type fakeJobRepo struct {
	byID map[uuid.UUID]job.Job
}

func newFakeJobRepo() *fakeJobRepo { return &fakeJobRepo{byID: map[uuid.UUID]job.Job{}} }

func (r *fakeJobRepo) Create(_ context.Context, j job.Job) error {
	r.byID[j.ID] = j
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return job.Job{}, apperr.ErrNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) ListActive(_ context.Context, _, _ int) ([]job.Job, error) { return nil, nil }
func (r *fakeJobRepo) Update(_ context.Context, j job.Job) error {
	r.byID[j.ID] = j
	return nil
}
func (r *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type fakeResumeRepo struct {
	byID map[uuid.UUID]resume.Resume
	text map[uuid.UUID]string
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{byID: map[uuid.UUID]resume.Resume{}, text: map[uuid.UUID]string{}}
}

func (r *fakeResumeRepo) Create(_ context.Context, rec resume.Resume, text string) error {
	r.byID[rec.ID] = rec
	r.text[rec.ID] = text
	return nil
}

func (r *fakeResumeRepo) GetByID(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	rec, ok := r.byID[id]
	if !ok {
		return resume.Resume{}, apperr.ErrNotFound
	}
	return rec, nil
}

func (r *fakeResumeRepo) GetText(_ context.Context, id uuid.UUID) (string, error) {
	text, ok := r.text[id]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return text, nil
}

type stubMatcher struct {
	assessment match.Assessment
	calls      int
}

func (m *stubMatcher) Assess(_ context.Context, _, _ string) match.Assessment {
	m.calls++
	return m.assessment
}

type fixture struct {
	svc      UseCase
	apps     *fakeAppRepo
	jobs     *fakeJobRepo
	resumes  *fakeResumeRepo
	matcher  *stubMatcher
	employer auth.Actor
	rival    auth.Actor
	admin    auth.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	apps := newFakeAppRepo()
	jobs := newFakeJobRepo()
	resumes := newFakeResumeRepo()
	matcher := &stubMatcher{assessment: match.Assessment{Score: 7, MatchPercentage: 80}}
	f := &fixture{
		apps:     apps,
		jobs:     jobs,
		resumes:  resumes,
		matcher:  matcher,
		employer: auth.Actor{ID: uuid.New(), Role: auth.RoleEmployer},
		rival:    auth.Actor{ID: uuid.New(), Role: auth.RoleEmployer},
		admin:    auth.Actor{ID: uuid.New(), Role: auth.RoleAdmin},
	}
	f.svc = NewService(apps, jobs, resumes, matcher, zap.NewNop(), time.Second)
	apps.owner = map[uuid.UUID]uuid.UUID{}
	return f
}

func (f *fixture) seedJob(t *testing.T, owner auth.Actor) job.Job {
	t.Helper()
	j := job.Job{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		Title:       "Backend Engineer",
		Description: "Build services in Go",
		Active:      true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := f.jobs.Create(context.Background(), j); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	f.apps.owner[j.ID] = owner.ID
	return j
}

func (f *fixture) seedApplicant(t *testing.T) (auth.Actor, uuid.UUID) {
	t.Helper()
	actor := auth.Actor{ID: uuid.New(), Role: auth.RoleApplicant}
	rec := resume.Resume{ID: uuid.New(), OwnerID: actor.ID, Filename: "cv.pdf"}
	if err := f.resumes.Create(context.Background(), rec, "Go PostgreSQL experience"); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return actor, rec.ID
}

func TestSubmitHappyPathAndDuplicate(t *testing.T) {
	f := newFixture(t)
	j := f.seedJob(t, f.employer)
	applicant, resumeID := f.seedApplicant(t)

	app, err := f.svc.Submit(context.Background(), applicant, SubmitInput{JobID: j.ID, ResumeID: resumeID, CoverLetter: "hello"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.ID == uuid.Nil {
		t.Fatalf("expected unique id assigned")
	}
	if app.Status != StatusPending {
		t.Fatalf("expected pending, got %s", app.Status)
	}
	if app.Assessment == nil || app.Assessment.Score != 7 {
		t.Fatalf("expected assessment attached, got %+v", app.Assessment)
	}
	if f.matcher.calls != 1 {
		t.Fatalf("expected one matcher call, got %d", f.matcher.calls)
	}

	_, err = f.svc.Submit(context.Background(), applicant, SubmitInput{JobID: j.ID, ResumeID: resumeID})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on resubmission, got %v", err)
	}
}

func TestSubmitMissingJob(t *testing.T) {
	f := newFixture(t)
	applicant, resumeID := f.seedApplicant(t)

	_, err := f.svc.Submit(context.Background(), applicant, SubmitInput{JobID: uuid.New(), ResumeID: resumeID})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for absent job, got %v", err)
	}
}

func TestSubmitEmployerForbidden(t *testing.T) {
	f := newFixture(t)
	j := f.seedJob(t, f.employer)

	_, err := f.svc.Submit(context.Background(), f.rival, SubmitInput{JobID: j.ID, ResumeID: uuid.New()})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for employer submission, got %v", err)
	}
}

func TestSubmitCommitsWhenOracleDegraded(t *testing.T) {
	f := newFixture(t)
	j := f.seedJob(t, f.employer)
	applicant, resumeID := f.seedApplicant(t)
	f.matcher.assessment = match.Fallback("timeout contacting oracle")

	app, err := f.svc.Submit(context.Background(), applicant, SubmitInput{JobID: j.ID, ResumeID: resumeID})
	if err != nil {
		t.Fatalf("submission must commit despite oracle failure: %v", err)
	}
	if app.Assessment == nil {
		t.Fatalf("expected fallback assessment to be stored")
	}
	if app.Assessment.Score != 0 || app.Assessment.MatchPercentage != 0 {
		t.Fatalf("expected zeroed fallback, got %+v", app.Assessment)
	}
	stored, err := f.apps.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("stored application: %v", err)
	}
	if stored.Status != StatusPending {
		t.Fatalf("expected committed pending application, got %s", stored.Status)
	}
}

func TestListVisibility(t *testing.T) {
	f := newFixture(t)
	j1 := f.seedJob(t, f.employer)
	j2 := f.seedJob(t, f.rival)
	alice, aliceResume := f.seedApplicant(t)
	bob, bobResume := f.seedApplicant(t)

	if _, err := f.svc.Submit(context.Background(), alice, SubmitInput{JobID: j1.ID, ResumeID: aliceResume}); err != nil {
		t.Fatalf("submit alice: %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), bob, SubmitInput{JobID: j1.ID, ResumeID: bobResume}); err != nil {
		t.Fatalf("submit bob j1: %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), bob, SubmitInput{JobID: j2.ID, ResumeID: bobResume}); err != nil {
		t.Fatalf("submit bob j2: %v", err)
	}

	// Applicant sees only their own.
	apps, err := f.svc.List(context.Background(), alice, nil, 50, 0)
	if err != nil {
		t.Fatalf("list as alice: %v", err)
	}
	if len(apps) != 1 || apps[0].ApplicantID != alice.ID {
		t.Fatalf("applicant must see exactly their own application, got %d", len(apps))
	}

	// Employer sees the union across owned jobs.
	apps, err = f.svc.List(context.Background(), f.employer, nil, 50, 0)
	if err != nil {
		t.Fatalf("list as employer: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("employer must see both applications for their job, got %d", len(apps))
	}

	// Employer filtered by a job they do not own is forbidden.
	if _, err := f.svc.List(context.Background(), f.employer, &j2.ID, 50, 0); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign job filter, got %v", err)
	}

	// Admin sees everything.
	apps, err = f.svc.List(context.Background(), f.admin, nil, 50, 0)
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(apps) != 3 {
		t.Fatalf("admin must see all applications, got %d", len(apps))
	}
}

func TestGetVisibility(t *testing.T) {
	f := newFixture(t)
	j := f.seedJob(t, f.employer)
	alice, aliceResume := f.seedApplicant(t)
	mallory, _ := f.seedApplicant(t)

	app, err := f.svc.Submit(context.Background(), alice, SubmitInput{JobID: j.ID, ResumeID: aliceResume})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := f.svc.Get(context.Background(), mallory, app.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("other applicant must not read it, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), f.rival, app.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("non-owning employer must not read it, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), f.employer, app.ID); err != nil {
		t.Fatalf("owning employer read: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), f.admin, app.ID); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}

func TestUpdateStatusOwnershipAndTransitions(t *testing.T) {
	f := newFixture(t)
	j := f.seedJob(t, f.employer)
	alice, aliceResume := f.seedApplicant(t)

	app, err := f.svc.Submit(context.Background(), alice, SubmitInput{JobID: j.ID, ResumeID: aliceResume})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	interview := StatusInterview
	// Non-owning employer is rejected and the stored status stays put.
	if _, err := f.svc.UpdateStatus(context.Background(), f.rival, app.ID, Patch{Status: &interview}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	stored, _ := f.apps.GetByID(context.Background(), app.ID)
	if stored.Status != StatusPending {
		t.Fatalf("status must be unchanged after forbidden update, got %s", stored.Status)
	}
	// Applicants cannot review at all.
	if _, err := f.svc.UpdateStatus(context.Background(), alice, app.ID, Patch{Status: &interview}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for applicant, got %v", err)
	}

	updated, err := f.svc.UpdateStatus(context.Background(), f.employer, app.ID, Patch{Status: &interview})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Status != StatusInterview {
		t.Fatalf("expected interview, got %s", updated.Status)
	}
	if updated.UpdatedAt.Before(app.UpdatedAt) {
		t.Fatalf("updated_at must advance")
	}

	// Feedback-only patch keeps the status.
	note := "strong candidate"
	updated, err = f.svc.UpdateStatus(context.Background(), f.admin, app.ID, Patch{Feedback: &note})
	if err != nil {
		t.Fatalf("feedback update: %v", err)
	}
	if updated.Status != StatusInterview || updated.Feedback != note {
		t.Fatalf("unexpected record after feedback patch: %+v", updated)
	}

	// Terminal states cannot be reopened.
	accepted := StatusAccepted
	if _, err := f.svc.UpdateStatus(context.Background(), f.employer, app.ID, Patch{Status: &accepted}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	pending := StatusPending
	if _, err := f.svc.UpdateStatus(context.Background(), f.employer, app.ID, Patch{Status: &pending}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict reopening a terminal application, got %v", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	f := newFixture(t)
	reviewing := StatusReviewing
	_, err := f.svc.UpdateStatus(context.Background(), f.admin, uuid.New(), Patch{Status: &reviewing})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
