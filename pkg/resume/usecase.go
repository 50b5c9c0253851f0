package resume

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/pkg/apperr"
	"jobboard/pkg/auth"
)

// UseCase issues resume upload references: the stored id is what an
// application submission later points at.
type UseCase interface {
	Upload(ctx context.Context, actor auth.Actor, filename string, data []byte) (Resume, error)
	Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (Resume, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Upload(ctx context.Context, actor auth.Actor, filename string, data []byte) (Resume, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if strings.TrimSpace(text) == "" {
		return Resume{}, fmt.Errorf("%w: resume contains no extractable text", apperr.ErrValidation)
	}
	r := Resume{
		ID:        uuid.New(),
		OwnerID:   actor.ID,
		Filename:  filepath.Base(filename),
		MimeType:  mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))),
		Size:      int64(len(data)),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r, text); err != nil {
		return Resume{}, err
	}
	return r, nil
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (Resume, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if !actor.Manages(r.OwnerID) {
		return Resume{}, fmt.Errorf("%w: not the owner of this resume", apperr.ErrForbidden)
	}
	return r, nil
}
