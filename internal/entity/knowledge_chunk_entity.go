package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeChunk is one embedded passage of the knowledge base. Chunks are
// written at ingestion time and read-only during conversation.
type KnowledgeChunk struct {
	Id         uuid.UUID
	Origin     string
	Content    string
	Embedding  []float32
	Category   *string
	ChunkIndex int
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}
