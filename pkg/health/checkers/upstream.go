package checkers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// UpstreamChecker probes the configured LLM base URL for reachability.
type UpstreamChecker struct {
	baseURL string
	httpDo  *http.Client
}

func NewUpstreamChecker(baseURL string) *UpstreamChecker {
	return &UpstreamChecker{
		baseURL: baseURL,
		httpDo:  &http.Client{Timeout: time.Second},
	}
}

func (c *UpstreamChecker) Name() string { return "upstream" }

// Check counts any HTTP response as reachable; a 404 from the bare base URL
// still proves connectivity. Only transport failures report not-ready.
func (c *UpstreamChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return fmt.Errorf("llm upstream unreachable: %w", err)
	}
	return resp.Body.Close()
}
