// Package redis implements a Redis answer adapter.
//
// Every event is PUBLISHed as JSON on a channel. When HashKey is set the
// event is also stored in a hash under the puzzle's padded id, so consumers
// that were not subscribed can read the latest answers with HGETALL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pithecene-io/advent/adapter"
)

// DefaultChannel is the default pub/sub channel name.
const DefaultChannel = "advent:puzzle_answers"

const (
	// DefaultTimeout bounds one publish attempt.
	DefaultTimeout = 5 * time.Second
	// DefaultBackoff is the delay before the first retry; it doubles per retry.
	DefaultBackoff = 500 * time.Millisecond
)

// Config configures the Redis adapter.
type Config struct {
	// URL is required. Format: redis://[:password@]host:port[/db]
	URL     string
	Channel string
	// HashKey enables the latest-answers hash. Testing runs are never stored.
	HashKey string
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

// Adapter publishes answer events to Redis.
type Adapter struct {
	config Config
	client *goredis.Client
}

// New creates a Redis adapter. The URL must parse and Retries may not be
// negative.
func New(cfg Config) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis adapter requires a URL")
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis adapter: invalid URL: %w", err)
	}

	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}

	return &Adapter{
		config: cfg,
		client: goredis.NewClient(opts),
	}, nil
}

// Name identifies the adapter in logs.
func (a *Adapter) Name() string { return "redis" }

// Publish sends the event, retrying on connection errors. A closed client
// is not retried.
func (a *Adapter) Publish(ctx context.Context, event *adapter.AnswerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis: marshal event: %w", err)
	}
	store := a.config.HashKey != "" && !event.Testing

	err = adapter.Retry(ctx, a.config.Retries, a.config.Backoff, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()

		// One round trip for both commands.
		_, err := a.client.Pipelined(ctx, func(p goredis.Pipeliner) error {
			if store {
				p.HSet(ctx, a.config.HashKey, event.Puzzle.Padded(), body)
			}
			p.Publish(ctx, a.config.Channel, body)
			return nil
		})
		if errors.Is(err, goredis.ErrClosed) {
			return adapter.Permanent(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (a *Adapter) Close() error {
	return a.client.Close()
}

var _ adapter.Adapter = (*Adapter)(nil)
