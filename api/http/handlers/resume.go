package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobboard/api/http/presenter"
	"jobboard/pkg/resume"
)

type ResumeHandler struct {
	uc resume.UseCase
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewResumeHandler(uc resume.UseCase) *ResumeHandler {
	return &ResumeHandler{uc: uc, maxBytes: 15 << 20} // 15MB
}

// Upload stores a resume file's extracted text and returns the reference an
// application submission points at.
// @Summary Upload resume
// @Tags    resumes
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "resume file (PDF or DOCX)"
// @Security BearerAuth
// @Success 201 {object} resume.Resume
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resumes [post]
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	actor, ok, errResp := requireActor(c)
	if !ok {
		return errResp
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	r, err := h.uc.Upload(c.Context(), actor, fh.Filename, data)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, r)
}

// Get returns resume metadata for its owner (or an admin).
// @Summary Get resume metadata
// @Tags    resumes
// @Produce json
// @Param   id path string true "resume id (UUID)"
// @Security BearerAuth
// @Success 200 {object} resume.Resume
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	actor, ok, errResp := requireActor(c)
	if !ok {
		return errResp
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	r, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, r)
}

func readAtMost(file multipart.File, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to read uploaded file")
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("file too large: limit is %d bytes", maxBytes)
	}
	return data, nil
}
