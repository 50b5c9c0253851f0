package resume

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Resume stores the metadata of an uploaded resume file. The extracted text
// is keyed by the same id and feeds the match engine at submission time.
type Resume struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository is the persistence port for resumes and their extracted text.
type Repository interface {
	Create(ctx context.Context, r Resume, text string) error
	GetByID(ctx context.Context, id uuid.UUID) (Resume, error)
	GetText(ctx context.Context, id uuid.UUID) (string, error)
}
