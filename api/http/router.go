package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/llm-gateway/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, generate *handlers.GenerateHandler, health *handlers.HealthHandler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	// Text generation
	app.Post("/generate", generate.Generate)
}
