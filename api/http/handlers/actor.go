package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobboard/api/http/presenter"
	"jobboard/pkg/auth"
)

// requireActor builds the authenticated actor from the claims the JWT
// middleware stored in locals. A nil actor means the 401 was already sent.
func requireActor(c *fiber.Ctx) (auth.Actor, bool, error) {
	idStr, _ := c.Locals("userId").(string)
	roleStr, _ := c.Locals("userRole").(string)
	uid, err := uuid.Parse(idStr)
	if err != nil {
		return auth.Actor{}, false, presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	role := auth.Role(roleStr)
	if !role.Valid() {
		return auth.Actor{}, false, presenter.Error(c, http.StatusUnauthorized, "could not identify user")
	}
	return auth.Actor{ID: uid, Role: role}, true, nil
}
