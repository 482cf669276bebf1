package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/llm-gateway/api/http/presenter"
	"github.com/artem13815/llm-gateway/pkg/generation"
	"github.com/artem13815/llm-gateway/pkg/llm"
)

type GenerateHandler struct {
	useCase generation.GenerateUseCase
}

func NewGenerateHandler(useCase generation.GenerateUseCase) *GenerateHandler {
	return &GenerateHandler{useCase: useCase}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate forwards a prompt to the configured LLM provider and returns the
// generated text. Works with any OpenAI-compatible API (Groq, OpenAI, Azure,
// etc.) based on environment configuration.
// @Summary Generate a model response for a prompt
// @Tags    generate
// @Accept  json
// @Produce json
// @Param   input body generateRequest true "prompt payload"
// @Success 200 {object} generateResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /generate [post]
func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	// Validation happens before any client exists; the layers below never
	// re-check the prompt.
	if strings.TrimSpace(req.Prompt) == "" {
		return presenter.Error(c, http.StatusBadRequest, "prompt is required")
	}

	text, err := h.useCase.Generate(c.Context(), req.Prompt)
	if err != nil {
		var upstreamErr *llm.UpstreamError
		if errors.As(err, &upstreamErr) {
			return presenter.Error(c, http.StatusBadGateway, upstreamErr.Error())
		}
		// Anything else is an internal failure; never leak its detail.
		return presenter.Error(c, http.StatusInternalServerError, "internal server error")
	}

	return presenter.JSON(c, http.StatusOK, generateResponse{Response: text})
}
