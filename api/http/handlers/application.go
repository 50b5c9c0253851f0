package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobboard/api/http/presenter"
	"jobboard/pkg/application"
)

type ApplicationHandler struct {
	uc application.UseCase
}

func NewApplicationHandler(uc application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitRequest struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
	ResumeID    string `json:"resume_id"`
}

// Submit creates an application for a job. At most one application exists
// per (job, applicant) pair.
// @Summary Submit application
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   input body submitRequest true "application payload"
// @Security BearerAuth
// @Success 201 {object} application.Application
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /applications [post]
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	actor, ok, errResp := requireActor(c)
	if !ok {
		return errResp
	}
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job_id")
	}
	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid resume_id")
	}
	app, err := h.uc.Submit(c.Context(), actor, application.SubmitInput{
		JobID:       jobID,
		CoverLetter: req.CoverLetter,
		ResumeID:    resumeID,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, app)
}

// List returns applications the actor may see: own for applicants, owned
// jobs' for employers, everything for admins.
// @Summary List applications
// @Tags    applications
// @Produce json
// @Param   job_id query string false "filter by job id"
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Security BearerAuth
// @Success 200 {array} application.Application
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	actor, ok, errResp := requireActor(c)
	if !ok {
		return errResp
	}
	var jobFilter *uuid.UUID
	if v := strings.TrimSpace(c.Query("job_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid job_id")
		}
		jobFilter = &id
	}
	limit, offset := parseLimitOffset(c, 50)
	apps, err := h.uc.List(c.Context(), actor, jobFilter, limit, offset)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if apps == nil {
		apps = []application.Application{}
	}
	return presenter.JSON(c, http.StatusOK, apps)
}

// Get returns a single application under the same visibility rules as List.
// @Summary Get application
// @Tags    applications
// @Produce json
// @Param   id path string true "application id (UUID)"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	actor, ok, errResp := requireActor(c)
	if !ok {
		return errResp
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	app, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, app)
}

type updateStatusRequest struct {
	Status   *string `json:"status"`
	Feedback *string `json:"feedback"`
}

// UpdateStatus moves an application through its review states; owning
// employer or admin only.
// @Summary Update application status
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   id path string true "application id (UUID)"
// @Param   input body updateStatusRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /applications/{id} [put]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok, errResp := requireActor(c)
	if !ok {
		return errResp
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	patch := application.Patch{Feedback: req.Feedback}
	if req.Status != nil {
		s := application.Status(*req.Status)
		patch.Status = &s
	}
	app, err := h.uc.UpdateStatus(c.Context(), actor, id, patch)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, app)
}
