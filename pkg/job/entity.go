package job

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type is the employment kind of a posting.
type Type string

const (
	TypeFullTime   Type = "full_time"
	TypePartTime   Type = "part_time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
	TypeFreelance  Type = "freelance"
)

func (t Type) Valid() bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeFreelance:
		return true
	}
	return false
}

// ExperienceLevel is the seniority a posting targets.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceJunior    ExperienceLevel = "junior"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceLead      ExperienceLevel = "lead"
	ExperienceExecutive ExperienceLevel = "executive"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceEntry, ExperienceJunior, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive:
		return true
	}
	return false
}

// Job is a posting owned by exactly one employer. Active gates visibility
// in public listings only; the posting stays reachable by id.
type Job struct {
	ID           uuid.UUID       `json:"id"`
	OwnerID      uuid.UUID       `json:"ownerId"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Requirements []string        `json:"requirements"`
	Type         Type            `json:"jobType"`
	Location     string          `json:"location"`
	Remote       bool            `json:"remote"`
	SalaryMin    *float64        `json:"salaryMin,omitempty"`
	SalaryMax    *float64        `json:"salaryMax,omitempty"`
	Experience   ExperienceLevel `json:"experienceLevel"`
	Skills       []string        `json:"skills"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Patch carries the fields of a partial update; nil means "leave unchanged".
type Patch struct {
	Title        *string
	Description  *string
	Requirements *[]string
	Type         *Type
	Location     *string
	Remote       *bool
	SalaryMin    *float64
	SalaryMax    *float64
	Experience   *ExperienceLevel
	Skills       *[]string
	Active       *bool
}

// Repository is the persistence port for postings.
type Repository interface {
	Create(ctx context.Context, j Job) error
	// GetByID returns the posting regardless of its active flag.
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	// ListActive returns active postings in creation order.
	ListActive(ctx context.Context, limit, offset int) ([]Job, error)
	Update(ctx context.Context, j Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}
