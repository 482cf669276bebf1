package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/llm-gateway/pkg/llm"
)

// Options carries the provider-agnostic settings for one client. They come
// from the process configuration and never change between calls.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	// Timeout bounds the whole upstream call, connect through body read.
	Timeout time.Duration
}

// Client is a minimal OpenAI-compatible chat completions client (Groq,
// OpenAI, Azure OpenAI, or any endpoint speaking the same dialect).
// One Client serves exactly one generation call: Open acquires the scoped
// connection, Close releases it.
type Client struct {
	opts   Options
	httpDo *http.Client
}

// New returns an unopened client. No I/O happens here.
func New(opts Options) *Client {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{opts: opts}
}

// Open acquires the scoped HTTP connection bound by the configured timeout.
func (c *Client) Open() error {
	c.httpDo = &http.Client{Timeout: c.opts.Timeout}
	return nil
}

// Close releases the scoped connection. Safe to call repeatedly and before
// Open.
func (c *Client) Close() {
	if c.httpDo == nil {
		return
	}
	c.httpDo.CloseIdleConnections()
	c.httpDo = nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role string `json:"role"`
		// Pointer so that a missing content key is distinguishable from an
		// empty reply; only the former is a malformed response.
		Content *string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// Generate sends the prompt as a single user message and returns the first
// choice's content verbatim. One attempt per call; the full response body is
// buffered before returning. All upstream failure modes come back as
// *llm.UpstreamError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.httpDo == nil {
		return "", llm.ErrNotOpened
	}

	reqBody := chatCompletionsRequest{
		Model:    c.opts.Model,
		Messages: []message{{Role: "user", Content: prompt}},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.opts.BaseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", &llm.UpstreamError{Cause: llm.CauseTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.UpstreamError{Cause: llm.CauseTransport, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &llm.UpstreamError{Cause: llm.CauseStatus, Status: resp.StatusCode}
	}

	var out chatCompletionsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &llm.UpstreamError{Cause: llm.CauseMalformed}
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == nil {
		return "", &llm.UpstreamError{Cause: llm.CauseMalformed}
	}
	// Additional choices and usage metadata are deliberately ignored.
	return *out.Choices[0].Message.Content, nil
}
