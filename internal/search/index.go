// Package search provides weighted fuzzy retrieval over the knowledge base
// using an in-memory Bleve index, with a keyword-overlap scan as the recall
// safety net.
package search

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"

	"github.com/bengali-knowledge-assistant/internal/bengali"
	"github.com/bengali-knowledge-assistant/internal/knowledge"
)

// Field boosts weight the ranking: title 0.4, content 0.3, tags 0.2,
// keywords 0.1.
var fieldBoosts = map[string]float64{
	"title":    0.4,
	"content":  0.3,
	"tags":     0.2,
	"keywords": 0.1,
}

// Config holds index tuning.
type Config struct {
	// MinScore is the good-match cutoff. Bleve scores are higher-is-better,
	// the inverse of a distance threshold, but play the same gatekeeping
	// role: hits below MinScore are discarded.
	MinScore float64
	// MaxResults caps how many items a search returns.
	MaxResults int
	// Fuzziness is the per-term Levenshtein distance for fuzzy matching.
	Fuzziness int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinScore:   0.05,
		MaxResults: 3,
		Fuzziness:  1,
	}
}

// Index is a derived, rebuildable structure over the current knowledge
// snapshot. The item list is the source of truth; the index is rebuilt in
// full after every mutation. Querying an empty index returns no matches,
// never an error.
type Index struct {
	config     Config
	logger     *zap.Logger
	normalizer *bengali.Normalizer

	mu   sync.RWMutex
	idx  bleve.Index
	byID map[string]knowledge.Item
}

// New creates an empty index.
func New(cfg Config, n *bengali.Normalizer, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		config:     cfg,
		logger:     logger.Named("search"),
		normalizer: n,
	}
}

func buildMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()
	for _, field := range []string{"title", "content", "tags", "keywords"} {
		fm := bleve.NewTextFieldMapping()
		fm.Index = true
		fm.Store = false
		fm.IncludeInAll = false
		docMapping.AddFieldMappingsAt(field, fm)
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = "standard"
	return indexMapping
}

// Rebuild replaces the index with a fresh one over the given snapshot.
func (ix *Index) Rebuild(items []knowledge.Item) error {
	start := time.Now()

	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}

	batch := idx.NewBatch()
	byID := make(map[string]knowledge.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
		doc := map[string]interface{}{
			"title":    ix.normalizer.Normalize(item.Title),
			"content":  ix.normalizer.Normalize(item.Content),
			"tags":     strings.Join(item.Tags, " "),
			"keywords": strings.Join(item.Keywords, " "),
		}
		if err := batch.Index(item.ID, doc); err != nil {
			ix.logger.Warn("Failed to add item to index batch",
				zap.String("id", item.ID),
				zap.Error(err))
		}
	}
	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return fmt.Errorf("failed to build search index: %w", err)
	}

	ix.mu.Lock()
	old := ix.idx
	ix.idx = idx
	ix.byID = byID
	ix.mu.Unlock()

	if old != nil {
		old.Close()
	}

	ix.logger.Debug("Search index rebuilt",
		zap.Int("items", len(items)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// Search returns the best-matching items for a question, ranked best-first
// and capped at MaxResults. When no fuzzy hit clears MinScore it falls back
// to a keyword-overlap scan over the given snapshot.
func (ix *Index) Search(question string, items []knowledge.Item) []knowledge.Item {
	norm := ix.normalizer.Normalize(question)
	if norm == "" {
		return nil
	}

	matches := ix.fuzzySearch(norm)
	if len(matches) == 0 {
		matches = ix.keywordFallback(norm, items)
	}

	if len(matches) > ix.config.MaxResults {
		matches = matches[:ix.config.MaxResults]
	}
	return matches
}

func (ix *Index) fuzzySearch(norm string) []knowledge.Item {
	ix.mu.RLock()
	idx := ix.idx
	byID := ix.byID
	ix.mu.RUnlock()

	if idx == nil || len(byID) == 0 {
		return nil
	}

	// One match query and one fuzzy query per field, weighted, OR-ed
	// together. The match query covers exact terms; the fuzzy queries give
	// tolerance for inflected forms the normalizer does not cover.
	var queries []query.Query
	for field, boost := range fieldBoosts {
		mq := bleve.NewMatchQuery(norm)
		mq.SetField(field)
		mq.SetBoost(boost)
		queries = append(queries, mq)

		fq := bleve.NewMatchQuery(norm)
		fq.SetField(field)
		fq.SetBoost(boost / 2)
		fq.SetFuzziness(ix.config.Fuzziness)
		queries = append(queries, fq)
	}

	req := bleve.NewSearchRequest(query.NewDisjunctionQuery(queries))
	req.Size = ix.config.MaxResults

	res, err := idx.Search(req)
	if err != nil {
		ix.logger.Error("Search failed", zap.Error(err))
		return nil
	}

	var out []knowledge.Item
	for _, hit := range res.Hits {
		if hit.Score < ix.config.MinScore {
			continue
		}
		if item, ok := byID[hit.ID]; ok {
			out = append(out, item)
		}
	}

	ix.logger.Debug("Fuzzy search completed",
		zap.String("question", norm),
		zap.Int("hits", len(out)))
	return out
}

// keywordFallback returns items whose normalized title+content+keywords
// contain any question word longer than two runes.
func (ix *Index) keywordFallback(norm string, items []knowledge.Item) []knowledge.Item {
	var words []string
	for _, w := range strings.Fields(norm) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}

	var out []knowledge.Item
	for _, item := range items {
		text := ix.normalizer.Normalize(
			item.Title + " " + item.Content + " " + strings.Join(item.Keywords, " "))
		for _, w := range words {
			if strings.Contains(text, w) {
				out = append(out, item)
				break
			}
		}
		if len(out) == ix.config.MaxResults {
			break
		}
	}

	ix.logger.Debug("Keyword fallback completed",
		zap.Int("words", len(words)),
		zap.Int("hits", len(out)))
	return out
}

// Close releases the underlying index.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.idx == nil {
		return nil
	}
	err := ix.idx.Close()
	ix.idx = nil
	ix.byID = nil
	return err
}
