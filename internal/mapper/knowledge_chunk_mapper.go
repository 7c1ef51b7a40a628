package mapper

import (
	"encoding/json"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeChunkMapper struct{}

func NewKnowledgeChunkMapper() *KnowledgeChunkMapper {
	return &KnowledgeChunkMapper{}
}

func (m *KnowledgeChunkMapper) ToEntity(c *model.KnowledgeChunk) *entity.KnowledgeChunk {
	if c == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(c.Metadata) > 0 {
		// Metadata is free-form jsonb; an unreadable blob is treated as empty
		_ = json.Unmarshal(c.Metadata, &metadata)
	}

	return &entity.KnowledgeChunk{
		Id:         c.Id,
		Origin:     c.Origin,
		Content:    c.Content,
		Embedding:  c.Embedding.Slice(),
		Category:   c.Category,
		ChunkIndex: c.ChunkIndex,
		Metadata:   metadata,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *KnowledgeChunkMapper) ToModel(c *entity.KnowledgeChunk) *model.KnowledgeChunk {
	if c == nil {
		return nil
	}

	var metadata datatypes.JSON
	if len(c.Metadata) > 0 {
		if raw, err := json.Marshal(c.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.KnowledgeChunk{
		Id:         c.Id,
		Origin:     c.Origin,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(c.Embedding),
		Category:   c.Category,
		ChunkIndex: c.ChunkIndex,
		Metadata:   metadata,
		CreatedAt:  c.CreatedAt,
	}
}
