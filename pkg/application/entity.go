package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobboard/pkg/match"
)

// Status is the application state. Rejected and accepted are terminal;
// transitions between the remaining states are unordered.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusInterview, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// Terminal reports whether the status closes the application. A terminal
// application cannot be moved to another state.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusAccepted
}

// Application links one applicant to one job. Job and applicant references
// are immutable after creation; at most one application exists per pair.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"jobId"`
	ApplicantID uuid.UUID         `json:"applicantId"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	ResumeID    uuid.UUID         `json:"resumeId"`
	Status      Status            `json:"status"`
	Feedback    string            `json:"feedback,omitempty"`
	Assessment  *match.Assessment `json:"aiFeedback,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Patch carries the reviewable fields; nil means "leave unchanged".
type Patch struct {
	Status   *Status
	Feedback *string
}

// Repository is the persistence port for applications. Create must report a
// duplicate (job, applicant) pair as apperr.ErrConflict, backed by a
// storage-level unique constraint so concurrent submissions cannot race.
type Repository interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]Application, error)
	// ListByJobOwner returns applications across every job the owner has.
	ListByJobOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error)
	ListAll(ctx context.Context, limit, offset int) ([]Application, error)
	Update(ctx context.Context, app Application) error
	// SaveAssessment attaches the match assessment after the row is committed.
	SaveAssessment(ctx context.Context, id uuid.UUID, a match.Assessment, updatedAt time.Time) error
}
