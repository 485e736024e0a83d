package loader

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pithecene-io/advent/metrics"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// DefaultCacheSize bounds the number of inputs kept by Cached.
const DefaultCacheSize = 64

type cacheKey struct {
	id      types.PuzzleID
	testing bool
}

// Cached keeps recently loaded inputs in memory so repeated runs of the
// same puzzle (watch mode, solve --all after solve --day) skip the fetch.
// Failed loads are not cached.
type Cached struct {
	next      solution.Solver
	cache     *lru.Cache[cacheKey, string]
	collector *metrics.Collector
}

// NewCached wraps next with an LRU cache of size entries. A nil collector
// disables hit/miss counting.
func NewCached(next solution.Solver, size int, collector *metrics.Collector) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, string](size)
	if err != nil {
		return nil, fmt.Errorf("create input cache: %w", err)
	}
	return &Cached{next: next, cache: cache, collector: collector}, nil
}

// Load serves id from the cache or delegates to the wrapped loader.
func (c *Cached) Load(ctx context.Context, id types.PuzzleID, testing bool) (string, error) {
	key := cacheKey{id: id, testing: testing}
	if raw, ok := c.cache.Get(key); ok {
		c.collector.IncCacheHit()
		return raw, nil
	}
	c.collector.IncCacheMiss()

	raw, err := c.next.Load(ctx, id, testing)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, raw)
	return raw, nil
}

// Invalidate drops both cached inputs of id.
func (c *Cached) Invalidate(id types.PuzzleID) {
	c.cache.Remove(cacheKey{id: id, testing: false})
	c.cache.Remove(cacheKey{id: id, testing: true})
}
