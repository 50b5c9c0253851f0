package http

import (
	"github.com/gofiber/fiber/v2"

	"jobboard/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. Job listing and
// lookup are public; everything else sits behind the JWT middleware.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	jobs *handlers.JobHandler,
	applications *handlers.ApplicationHandler,
	resumes *handlers.ResumeHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/google", auth.GoogleLogin)

	jg := v1.Group("/jobs")
	jg.Get("/", jobs.List)
	jg.Get("/:id", jobs.Get)
	jg.Post("/", authMW, jobs.Create)
	jg.Put("/:id", authMW, jobs.Update)
	jg.Delete("/:id", authMW, jobs.Delete)

	ag := v1.Group("/applications", authMW)
	ag.Post("/", applications.Submit)
	ag.Get("/", applications.List)
	ag.Get("/:id", applications.Get)
	ag.Put("/:id", applications.UpdateStatus)

	rg := v1.Group("/resumes", authMW)
	rg.Post("/", resumes.Upload)
	rg.Get("/:id", resumes.Get)
}
