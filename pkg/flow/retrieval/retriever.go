package retrieval

import (
	"context"
	"fmt"
	"log"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/unitofwork"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/embedding"
)

// Snippet is one retrieved knowledge passage with its provenance.
type Snippet struct {
	Content    string
	Origin     string
	Category   string
	Similarity float64
}

// Retriever runs similarity search over the ingested knowledge base.
// An empty result set is a normal outcome, not an error; the flow resolver
// turns it into the escalation reply.
type Retriever struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            *log.Logger
}

func NewRetriever(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger *log.Logger,
) *Retriever {
	return &Retriever{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

// Retrieve embeds the query and returns the k closest chunks, restricted to
// the category when one is given.
func (r *Retriever) Retrieve(ctx context.Context, query string, category string, k int) ([]Snippet, error) {
	vector, err := r.embeddingProvider.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.KnowledgeChunkRepository().SearchSimilar(ctx, vector, k, category)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	snippets := make([]Snippet, 0, len(scored))
	for _, s := range scored {
		chunkCategory := ""
		if s.Chunk.Category != nil {
			chunkCategory = *s.Chunk.Category
		}
		snippets = append(snippets, Snippet{
			Content:    s.Chunk.Content,
			Origin:     s.Chunk.Origin,
			Category:   chunkCategory,
			Similarity: s.Similarity,
		})
	}

	r.logger.Printf("[RETRIEVAL] %d snippets for category=%q k=%d", len(snippets), category, k)

	return snippets, nil
}
