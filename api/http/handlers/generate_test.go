package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/llm-gateway/pkg/generation"
	"github.com/artem13815/llm-gateway/pkg/llm"
	"github.com/artem13815/llm-gateway/pkg/llm/openaicompat"
)

func newGenerateApp(uc generation.GenerateUseCase) *fiber.App {
	app := fiber.New()
	app.Post("/generate", NewGenerateHandler(uc).Generate)
	return app
}

// gatewayFor wires the real usecase and client against a stub upstream.
func gatewayFor(upstreamURL string, timeout time.Duration) *fiber.App {
	newClient := func() llm.Client {
		return openaicompat.New(openaicompat.Options{
			BaseURL: upstreamURL,
			APIKey:  "test-key",
			Model:   "test-model",
			Timeout: timeout,
		})
	}
	return newGenerateApp(generation.NewService(newClient))
}

func postGenerate(t *testing.T, app *fiber.App, body string) (*http.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NoError(t, resp.Body.Close())
	return resp, parsed
}

func TestGenerateEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Hi there"}}]}`))
	}))
	defer srv.Close()

	resp, body := postGenerate(t, gatewayFor(srv.URL, 5*time.Second), `{"prompt": "Hello"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hi there", body["response"])
}

func TestGenerateEmptyPromptRejectedBeforeAnyCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()
	app := gatewayFor(srv.URL, 5*time.Second)

	for _, body := range []string{`{"prompt": ""}`, `{"prompt": "   "}`, `{}`} {
		resp, parsed := postGenerate(t, app, body)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %s", body)
		assert.Equal(t, "prompt is required", parsed["detail"])
	}
	assert.Equal(t, int32(0), calls.Load(), "validation must reject before any upstream call")
}

func TestGenerateInvalidJSONRejected(t *testing.T) {
	app := gatewayFor("http://localhost:0", time.Second)

	resp, parsed := postGenerate(t, app, `{"prompt": `)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid JSON payload", parsed["detail"])
}

func TestGenerateUpstreamStatusMapsToBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited","internal":"secret"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	resp, body := postGenerate(t, gatewayFor(srv.URL, 5*time.Second), `{"prompt": "Hello"}`)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "LLM API error: HTTP 429", body["detail"])
	assert.NotContains(t, body["detail"], "secret", "provider body must not leak")
}

func TestGenerateMalformedUpstreamMapsToBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	resp, body := postGenerate(t, gatewayFor(srv.URL, 5*time.Second), `{"prompt": "Hello"}`)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "invalid response format from LLM API", body["detail"])
}

func TestGenerateUpstreamTimeoutMapsToBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	resp, body := postGenerate(t, gatewayFor(srv.URL, 50*time.Millisecond), `{"prompt": "Hello"}`)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body["detail"], "request failed")
}

type failingUseCase struct{ err error }

func (f failingUseCase) Generate(ctx context.Context, prompt string) (string, error) {
	return "", f.err
}

func TestGenerateUnexpectedErrorIsOpaque(t *testing.T) {
	app := newGenerateApp(failingUseCase{err: errors.New("nil pointer in serializer")})

	resp, body := postGenerate(t, app, `{"prompt": "Hello"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", body["detail"])
}
