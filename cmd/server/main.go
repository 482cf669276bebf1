// @title         llm-gateway API
// @version       0.1.0
// @description   HTTP gateway forwarding text prompts to any OpenAI-compatible chat-completion API (Groq, OpenAI, Azure OpenAI, etc.).
// @BasePath      /
// @schemes       http
// @host          localhost:8080
package main

import (
	"log"
	"time"

	_ "github.com/artem13815/llm-gateway/docs"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	swagger "github.com/gofiber/swagger"

	// internal imports
	"github.com/artem13815/llm-gateway/api/http"
	"github.com/artem13815/llm-gateway/api/http/handlers"
	"github.com/artem13815/llm-gateway/api/http/middleware"
	"github.com/artem13815/llm-gateway/pkg/config"
	"github.com/artem13815/llm-gateway/pkg/generation"
	"github.com/artem13815/llm-gateway/pkg/health"
	"github.com/artem13815/llm-gateway/pkg/health/checkers"
	"github.com/artem13815/llm-gateway/pkg/llm"
	"github.com/artem13815/llm-gateway/pkg/llm/openaicompat"
)

func main() {
	// Load configuration from env/.env; refuse to start when incomplete.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Use(logger.New())

	// Each request gets its own scoped client; only the immutable settings
	// are shared.
	newClient := func() llm.Client {
		return openaicompat.New(openaicompat.Options{
			BaseURL: cfg.LLMBaseURL,
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			Timeout: time.Duration(cfg.APITimeout) * time.Second,
		})
	}

	generateUC := generation.NewService(newClient)
	generateHandler := handlers.NewGenerateHandler(generateUC)

	// Health service: compose checkers
	readiness := health.NewService(checkers.NewUpstreamChecker(cfg.LLMBaseURL))
	healthHandler := handlers.NewHealthHandler(readiness)

	// Register routes
	http.Register(app, generateHandler, healthHandler)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	log.Printf("llm-gateway listening on :%s (provider=%s, model=%s)", cfg.Port, cfg.LLMProvider, cfg.LLMModel)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
