// Package cache provides an in-memory answer cache keyed by normalized
// question, so repeated phrasings of the same question skip the search and
// extraction pipeline.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"
)

// ResponseCache caches knowledge-derived answers. Entries are dropped
// wholesale on every knowledge mutation; answers that did not come from
// stored knowledge (the canned replies, one of which is random) are never
// cached.
type ResponseCache struct {
	cache  *ristretto.Cache[string, string]
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	hits    int64
	misses  int64
}

// Metrics is a point-in-time snapshot of cache effectiveness.
type Metrics struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// New creates a response cache holding up to maxEntries answers.
func New(maxEntries int64, ttl time.Duration, logger *zap.Logger) (*ResponseCache, error) {
	if maxEntries == 0 {
		maxEntries = 1024
	}
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	return &ResponseCache{
		cache:  c,
		ttl:    ttl,
		logger: logger.Named("respcache"),
	}, nil
}

// Get returns the cached answer for a normalized question.
func (rc *ResponseCache) Get(key string) (string, bool) {
	answer, found := rc.cache.Get(key)
	rc.mu.Lock()
	if found {
		rc.hits++
	} else {
		rc.misses++
	}
	rc.mu.Unlock()
	if found {
		rc.logger.Debug("Response cache hit", zap.String("key", key))
	}
	return answer, found
}

// Set stores an answer. Every entry costs 1; eviction is by entry count.
func (rc *ResponseCache) Set(key, answer string) {
	rc.cache.SetWithTTL(key, answer, 1, rc.ttl)
}

// Reset drops every entry. Called after each knowledge mutation, since any
// cached answer may cite deleted or superseded knowledge.
func (rc *ResponseCache) Reset() {
	rc.cache.Clear()
}

// Stats returns hit/miss counters.
func (rc *ResponseCache) Stats() Metrics {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return Metrics{Hits: rc.hits, Misses: rc.misses}
}

// Close releases cache resources.
func (rc *ResponseCache) Close() {
	rc.cache.Close()
}
