// Package store persists named thematic map styles.
package store

import (
	"context"
	"time"

	"github.com/sells-group/choropleth-cli/internal/theme"
)

// SavedStyle is a named style in the style library.
type SavedStyle struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Style     theme.Style `json:"style"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Store defines the persistence interface for the style library.
type Store interface {
	// SaveStyle creates or replaces the style with the given name.
	SaveStyle(ctx context.Context, name string, style theme.Style) (*SavedStyle, error)
	GetStyle(ctx context.Context, name string) (*SavedStyle, error)
	ListStyles(ctx context.Context) ([]SavedStyle, error)
	DeleteStyle(ctx context.Context, name string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
