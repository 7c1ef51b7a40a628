package embedding

import "context"

// EmbeddingProvider maps text to a fixed-length vector.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
