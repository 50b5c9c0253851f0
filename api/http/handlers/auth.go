package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobboard/api/http/presenter"
	"jobboard/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Picture string `json:"picture,omitempty"`
}

func toUserResponse(u auth.User) userResponse {
	return userResponse{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		Role:    string(u.Role),
		Picture: u.Picture,
	}
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Name) == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and name are required")
	}

	result, err := h.useCase.Register(c.Context(), req.Email, req.Name, req.Password, auth.Role(req.Role))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles password login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

// GoogleLogin exchanges a Google ID token for a session token, creating the
// account on first login.
// @Summary Login with Google
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body googleLoginRequest true "google id token"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req googleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Token) == "" {
		return presenter.Error(c, http.StatusBadRequest, "token is required")
	}

	result, err := h.useCase.LoginGoogle(c.Context(), req.Token)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}
