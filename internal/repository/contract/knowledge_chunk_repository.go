package contract

import (
	"context"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/specification"
)

// ScoredKnowledgeChunk wraps KnowledgeChunk with its similarity score
type ScoredKnowledgeChunk struct {
	Chunk      *entity.KnowledgeChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type KnowledgeChunkRepository interface {
	Create(ctx context.Context, chunk *entity.KnowledgeChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar runs a cosine-distance search over stored embeddings.
	// A non-empty category restricts results to chunks tagged with it.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, category string) ([]*ScoredKnowledgeChunk, error)
}
