// Package knowledge defines the stored teaching unit and its persistence.
package knowledge

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bengali-knowledge-assistant/internal/bengali"
)

// Item is one stored (title, content) teaching unit with derived tags and
// keywords. Items are immutable once created; the only lifecycle transitions
// are creation on learn and destruction on delete/clear.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Tags      []string  `json:"tags"`
	// Keywords is optional in records persisted by older versions and is
	// backfilled from Content on load.
	Keywords []string `json:"keywords,omitempty"`
}

// NewItem builds an immutable knowledge item from trimmed title and content.
// IDs are random UUIDs: wall-clock-derived ids can collide within one clock
// tick, and nothing downstream relies on ids ordering.
func NewItem(title, content string) Item {
	content = strings.TrimSpace(content)
	return Item{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Content:   content,
		Timestamp: time.Now(),
		Tags:      bengali.ExtractTags(content),
		Keywords:  bengali.ExtractKeywords(content),
	}
}
