package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ogaworks/taskboard/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	sessions *handlers.SessionHandler,
	users *handlers.UserHandler,
	tasks *handlers.TaskHandler,
	health *handlers.HealthHandler,
	authRequired fiber.Handler,
	authOptional fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	// Session lifecycle; logout is idempotent and never requires auth.
	v1.Post("/sessions", sessions.Login)
	v1.Delete("/sessions", sessions.Logout)

	// Users: sign-up is public, dashboard and profile are owner-only.
	v1.Post("/users", users.SignUp)
	v1.Get("/users/:id", authRequired, users.Dashboard)
	v1.Patch("/users/:id", authRequired, users.Update)

	// Tasks: reads are public, mutations require a session.
	v1.Get("/tasks", authOptional, tasks.List)
	v1.Get("/tasks/:id", authOptional, tasks.Show)
	v1.Post("/tasks", authRequired, tasks.Create)
	v1.Patch("/tasks/:id", authRequired, tasks.Update)
	v1.Delete("/tasks/:id", authRequired, tasks.Delete)
}
