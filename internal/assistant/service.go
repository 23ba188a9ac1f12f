// Package assistant wires the knowledge pipeline into one service: learn
// free-form Bengali paragraphs, answer questions about them.
//
// The answer path runs search over the stored knowledge, extracts facts from
// the best matches, classifies the question intent, and renders a templated
// sentence, degrading to sentence quoting and finally to a canned reply. No
// step can fail outright; every question gets a non-empty answer.
package assistant

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bengali-knowledge-assistant/internal/bengali"
	"github.com/bengali-knowledge-assistant/internal/blob"
	"github.com/bengali-knowledge-assistant/internal/cache"
	"github.com/bengali-knowledge-assistant/internal/facts"
	"github.com/bengali-knowledge-assistant/internal/knowledge"
	"github.com/bengali-knowledge-assistant/internal/question"
	"github.com/bengali-knowledge-assistant/internal/response"
	"github.com/bengali-knowledge-assistant/internal/search"
)

// Config holds service tuning.
type Config struct {
	Search          search.Config
	CacheMaxEntries int64
	CacheTTL        time.Duration

	// RandSource seeds the generic-reply pick. Nil means nondeterministic;
	// tests inject a fixed source.
	RandSource rand.Source
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Search:          search.DefaultConfig(),
		CacheMaxEntries: 1024,
		CacheTTL:        10 * time.Minute,
	}
}

// Stats summarizes the knowledge base.
type Stats struct {
	Total  int      `json:"total"`
	Topics []string `json:"topics"`
}

// Service owns the knowledge collection and its derived search index. One
// instance is constructed at startup and handed to the transport layer; the
// logical model is a single actor, but the HTTP host is concurrent, so a
// read-write mutex guards the collection. Every mutation rebuilds the index
// before releasing the write lock, so readers never see a stale index.
type Service struct {
	config Config
	logger *zap.Logger

	store      *knowledge.Store
	normalizer *bengali.Normalizer
	analyzer   *question.Analyzer
	generator  *response.Generator
	index      *search.Index
	respCache  *cache.ResponseCache

	mu    sync.RWMutex
	items []knowledge.Item
}

// New constructs the service, loading any persisted knowledge and building
// the initial index. A load failure starts the service empty rather than
// failing it.
func New(ctx context.Context, cfg Config, blobs blob.Store, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("assistant")

	normalizer := bengali.NewNormalizer()

	respCache, err := cache.New(cfg.CacheMaxEntries, cfg.CacheTTL, logger)
	if err != nil {
		return nil, err
	}

	s := &Service{
		config:     cfg,
		logger:     logger,
		store:      knowledge.NewStore(blobs, logger),
		normalizer: normalizer,
		analyzer:   question.NewAnalyzer(normalizer),
		generator:  response.NewGenerator(normalizer, cfg.RandSource),
		index:      search.New(cfg.Search, normalizer, logger),
		respCache:  respCache,
	}

	s.items = s.store.Load(ctx)
	if err := s.index.Rebuild(s.items); err != nil {
		return nil, err
	}

	logger.Info("Assistant ready", zap.Int("knowledge_items", len(s.items)))
	return s, nil
}

// LearnFromText stores one teaching unit and refreshes the index. Persistence
// failures are logged and swallowed: the item stays usable in memory.
func (s *Service) LearnFromText(ctx context.Context, title, content string) {
	item := knowledge.NewItem(title, content)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
	s.afterMutation(ctx)

	s.logger.Debug("Learned knowledge",
		zap.String("id", item.ID),
		zap.String("title", item.Title),
		zap.Int("keywords", len(item.Keywords)))
}

// GenerateResponse answers a question. It never fails and never returns an
// empty string.
func (s *Service) GenerateResponse(ctx context.Context, q string) string {
	s.mu.RLock()
	items := s.items
	s.mu.RUnlock()

	norm := s.normalizer.Normalize(q)
	if answer, ok := s.respCache.Get(norm); ok {
		return answer
	}

	matches := s.index.Search(q, items)
	if len(matches) == 0 {
		// Canned replies are cheap and one of them is random; not cached.
		return s.generator.General(q)
	}

	analysis := s.analyzer.Analyze(q)

	for _, match := range matches {
		fs := facts.Extract(match.Content)
		if answer, ok := s.generator.Intelligent(fs, analysis); ok {
			s.respCache.Set(norm, answer)
			return answer
		}
	}

	answer := s.generator.Smart(q, matches)
	s.respCache.Set(norm, answer)
	return answer
}

// GetKnowledgeBase returns the items newest-first.
func (s *Service) GetKnowledgeBase(_ context.Context) []knowledge.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]knowledge.Item, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// DeleteKnowledge removes exactly the item with the given id. Unknown ids
// are a no-op.
func (s *Service) DeleteKnowledge(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Readers hold slice snapshots outside the lock, so compact into a
	// fresh slice instead of reusing the backing array.
	kept := make([]knowledge.Item, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(s.items) {
		return
	}
	s.items = kept
	s.afterMutation(ctx)

	s.logger.Debug("Deleted knowledge", zap.String("id", id))
}

// ClearKnowledgeBase removes every item.
func (s *Service) ClearKnowledgeBase(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.afterMutation(ctx)

	s.logger.Info("Cleared knowledge base")
}

// GetKnowledgeStats reports the item count and the distinct titles.
func (s *Service) GetKnowledgeStats(_ context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	topics := make([]string, 0, len(s.items))
	for _, item := range s.items {
		if !seen[item.Title] {
			seen[item.Title] = true
			topics = append(topics, item.Title)
		}
	}
	return Stats{Total: len(s.items), Topics: topics}
}

// CacheStats exposes response-cache counters for the stats endpoint.
func (s *Service) CacheStats() cache.Metrics {
	return s.respCache.Stats()
}

// Close releases the index and cache.
func (s *Service) Close() error {
	s.respCache.Close()
	return s.index.Close()
}

// afterMutation persists and reindexes. Callers hold the write lock. Save
// errors are logged, not surfaced: the in-memory state is authoritative and
// must stay serviceable even when the blob store is down.
func (s *Service) afterMutation(ctx context.Context) {
	if err := s.store.Save(ctx, s.items); err != nil {
		s.logger.Error("Failed to persist knowledge base", zap.Error(err))
	}
	if err := s.index.Rebuild(s.items); err != nil {
		s.logger.Error("Failed to rebuild search index", zap.Error(err))
	}
	s.respCache.Reset()
}
