package knowledge

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bengali-knowledge-assistant/internal/bengali"
	"github.com/bengali-knowledge-assistant/internal/blob"
	"github.com/bengali-knowledge-assistant/internal/jsonx"
)

// StorageKey is the single blob key the whole knowledge base serializes
// under. The value is one JSON array of items.
const StorageKey = "ai-knowledge-base"

// Store persists the knowledge base through a blob.Store. It holds no item
// state itself; the in-memory collection is owned by the assistant service.
type Store struct {
	blobs  blob.Store
	logger *zap.Logger
}

// NewStore creates a store over the given blob backend.
func NewStore(blobs blob.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{blobs: blobs, logger: logger.Named("knowledge")}
}

// Load reads the persisted knowledge base. Any storage or decode failure is
// logged and yields an empty base: losing saved knowledge degrades answers
// but must never prevent startup.
func (s *Store) Load(ctx context.Context) []Item {
	data, err := s.blobs.Get(ctx, StorageKey)
	if errors.Is(err, blob.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Error("Failed to load knowledge base", zap.Error(err))
		return nil
	}

	var items []Item
	if err := jsonx.Unmarshal(data, &items); err != nil {
		s.logger.Error("Failed to decode knowledge base", zap.Error(err))
		return nil
	}

	for i := range items {
		if len(items[i].Keywords) == 0 {
			items[i].Keywords = bengali.ExtractKeywords(items[i].Content)
		}
	}

	s.logger.Debug("Loaded knowledge base", zap.Int("items", len(items)))
	return items
}

// Save serializes the full item list to the blob store.
func (s *Store) Save(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := jsonx.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode knowledge base: %w", err)
	}
	if err := s.blobs.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to save knowledge base: %w", err)
	}
	return nil
}
