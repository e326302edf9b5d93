// Package embeddings turns destination text into vectors for the
// related-destinations index.
package embeddings

import (
	"context"
	"fmt"

	"github.com/go-ports/gomate/internal/config"
)

// Provider is the interface for embedding models.
type Provider interface {
	// Embed returns a float32 vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns vectors for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Name identifies the provider in reindex output.
	Name() string
}

// NewProvider constructs a Provider from the given config.
// Returns (nil, nil) when the provider is "" or "none".
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Related.Provider {
	case "hash":
		return NewHashing(cfg.Related.Dimensions), nil

	case "", "none":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Related.Provider)
	}
}
