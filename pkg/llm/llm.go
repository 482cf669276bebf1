package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client is a chat-completion client scoped to a single generation call.
// It intentionally hides concrete providers to preserve dependency direction.
// The lifecycle is Open, exactly one Generate, then Close; Close must run on
// every exit path.
type Client interface {
	// Open establishes the scoped connection. A client that was not opened
	// fails fast on Generate without touching the network.
	Open() error
	// Generate sends one prompt and returns the model reply verbatim.
	Generate(ctx context.Context, prompt string) (string, error)
	// Close releases the scoped connection. Idempotent; a no-op if Open was
	// never called.
	Close()
}

// Factory constructs an unopened Client. It performs no I/O.
type Factory func() Client

// ErrNotOpened reports use of a client whose connection was never opened.
var ErrNotOpened = errors.New("llm client must be opened before use")

// Cause tags why an upstream call failed inside an UpstreamError.
type Cause int

const (
	// CauseStatus: the provider answered with a non-2xx HTTP status.
	CauseStatus Cause = iota + 1
	// CauseTransport: connection, DNS or timeout failure before any status.
	CauseTransport
	// CauseMalformed: a 2xx response whose body lacks the expected shape.
	CauseMalformed
)

// UpstreamError is the single failure kind exposed for upstream calls.
// Callers branch only on "did generation fail"; the cause is carried for the
// human-readable detail, not for separate handling.
type UpstreamError struct {
	Cause  Cause
	Status int   // HTTP status code, set when Cause is CauseStatus
	Err    error // underlying transport error, set when Cause is CauseTransport
}

func (e *UpstreamError) Error() string {
	switch e.Cause {
	case CauseStatus:
		return fmt.Sprintf("LLM API error: HTTP %d", e.Status)
	case CauseTransport:
		return fmt.Sprintf("request failed: %v", e.Err)
	default:
		return "invalid response format from LLM API"
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }
