package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobboard/api/http/presenter"
	"jobboard/pkg/job"
)

type JobHandler struct {
	uc job.UseCase
}

func NewJobHandler(uc job.UseCase) *JobHandler { return &JobHandler{uc: uc} }

type createJobRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	JobType      string   `json:"job_type"`
	Location     string   `json:"location"`
	Remote       bool     `json:"remote"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	Experience   string   `json:"experience_level"`
	Skills       []string `json:"skills"`
	Active       *bool    `json:"active"`
}

// Create adds a job posting owned by the calling employer.
// @Summary Create job posting
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body createJobRequest true "job fields"
// @Security BearerAuth
// @Success 201 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	actor, ok, errResp := requireActor(c)
	if !ok {
		return errResp
	}
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	created, err := h.uc.Create(c.Context(), actor, job.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Type:         job.Type(req.JobType),
		Location:     req.Location,
		Remote:       req.Remote,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Experience:   job.ExperienceLevel(req.Experience),
		Skills:       req.Skills,
		Active:       active,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// List returns active postings in creation order.
// @Summary List job postings
// @Tags    jobs
// @Produce json
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Success 200 {array} job.Job
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 10)
	jobs, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if jobs == nil {
		jobs = []job.Job{}
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}

// Get returns a posting by id.
// @Summary Get job posting
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Success 200 {object} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, j)
}

type updateJobRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	JobType      *string   `json:"job_type"`
	Location     *string   `json:"location"`
	Remote       *bool     `json:"remote"`
	SalaryMin    *float64  `json:"salary_min"`
	SalaryMax    *float64  `json:"salary_max"`
	Experience   *string   `json:"experience_level"`
	Skills       *[]string `json:"skills"`
	Active       *bool     `json:"active"`
}

// Update applies a partial update; only fields present in the payload change.
// @Summary Update job posting
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Param   input body updateJobRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	actor, ok, errResp := requireActor(c)
	if !ok {
		return errResp
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req updateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	patch := job.Patch{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Remote:       req.Remote,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Skills:       req.Skills,
		Active:       req.Active,
	}
	if req.JobType != nil {
		t := job.Type(*req.JobType)
		patch.Type = &t
	}
	if req.Experience != nil {
		e := job.ExperienceLevel(*req.Experience)
		patch.Experience = &e
	}
	updated, err := h.uc.Update(c.Context(), actor, id, patch)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// Delete removes a posting; owner or admin only.
// @Summary Delete job posting
// @Tags    jobs
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	actor, ok, errResp := requireActor(c)
	if !ok {
		return errResp
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Delete(c.Context(), actor, id); err != nil {
		return presenter.FromError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
