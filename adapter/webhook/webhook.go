// Package webhook implements an HTTP POST answer adapter.
//
// Each answer event is POSTed as JSON, e.g. to a submission proxy or a chat
// bot. Requests carry the puzzle and an idempotency key derived from the
// session, so a receiver can drop duplicates produced by retries.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pithecene-io/advent/adapter"
	"github.com/pithecene-io/advent/iox"
	"github.com/pithecene-io/advent/types"
)

const (
	// DefaultTimeout bounds one request.
	DefaultTimeout = 10 * time.Second
	// DefaultBackoff is the delay before the first retry; it doubles per retry.
	DefaultBackoff = 500 * time.Millisecond
)

// Request headers set on every POST.
const (
	HeaderPuzzle         = "X-Advent-Puzzle"
	HeaderIdempotencyKey = "Idempotency-Key"
)

// Config configures the webhook adapter.
type Config struct {
	URL     string            // required
	Headers map[string]string // added to each request; may override defaults
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

// Adapter publishes answer events via HTTP POST.
type Adapter struct {
	config Config
	client *http.Client
}

// New creates a webhook adapter. The URL is required and Retries may not
// be negative.
func New(cfg Config) (*Adapter, error) {
	switch {
	case cfg.URL == "":
		return nil, errors.New("webhook adapter requires a URL")
	case cfg.Retries < 0:
		return nil, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}

	return &Adapter{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name identifies the adapter in logs.
func (a *Adapter) Name() string { return "webhook" }

// Publish POSTs the event. 5xx responses and transport errors are retried;
// 4xx responses fail immediately.
func (a *Adapter) Publish(ctx context.Context, event *adapter.AnswerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}
	header := a.header(event)

	err = adapter.Retry(ctx, a.config.Retries, a.config.Backoff, func(ctx context.Context) error {
		err := a.post(ctx, header, body)
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code >= 400 && statusErr.Code < 500 {
			return adapter.Permanent(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	return nil
}

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

func (a *Adapter) header(event *adapter.AnswerEvent) http.Header {
	h := make(http.Header, len(a.config.Headers)+4)
	h.Set("Content-Type", "application/json")
	h.Set("User-Agent", "advent/"+types.Version)
	h.Set(HeaderPuzzle, event.Puzzle.Padded())
	h.Set(HeaderIdempotencyKey, IdempotencyKey(event))
	for k, v := range a.config.Headers {
		h.Set(k, v)
	}
	return h
}

// IdempotencyKey identifies one puzzle's answers within a session.
// Testing runs get a distinct key from real ones.
func IdempotencyKey(event *adapter.AnswerEvent) string {
	key := event.SessionID + "/" + event.Puzzle.Padded()
	if event.Testing {
		key += "/test"
	}
	return key
}

func (a *Adapter) post(ctx context.Context, header http.Header, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header = header.Clone()

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

// Close drops idle keep-alive connections.
func (a *Adapter) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

var _ adapter.Adapter = (*Adapter)(nil)
