package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"jobboard/pkg/apperr"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// FromError maps the domain error taxonomy to HTTP statuses. Only the short
// category label is exposed, never internal error text.
func FromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrForbidden):
		return Error(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, apperr.ErrConflict):
		return Error(c, http.StatusConflict, "conflict")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, apperr.ErrTokenInvalid), errors.Is(err, apperr.ErrUnauthenticated):
		return Error(c, http.StatusUnauthorized, "unauthenticated")
	case errors.Is(err, apperr.ErrValidation):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrExternalService):
		return Error(c, http.StatusBadGateway, "external service degraded")
	default:
		return Error(c, http.StatusInternalServerError, "internal error")
	}
}
