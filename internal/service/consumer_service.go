package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/dto"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/unitofwork"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/embedding"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/events"
	pktNats "github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedKnowledgeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal knowledge message: %v", err)
		msg.Ack() // malformed messages would retry forever
		return
	}

	log.Printf("[INFO] Embedding %d chunks from origin %q", len(payload.Chunks), payload.Origin)

	var category *string
	if payload.Category != "" {
		category = &payload.Category
	}

	now := time.Now()
	chunks := make([]*entity.KnowledgeChunk, 0, len(payload.Chunks))

	for i, content := range payload.Chunks {
		vector, err := cs.embeddingProvider.Generate(ctx, content)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of %q: %v", i, payload.Origin, err)
			msg.Nack()
			return
		}
		chunks = append(chunks, &entity.KnowledgeChunk{
			Id:         uuid.New(),
			Origin:     payload.Origin,
			Content:    content,
			Embedding:  vector,
			Category:   category,
			ChunkIndex: i,
			Metadata:   payload.Metadata,
			CreatedAt:  now,
		})
	}

	if err := cs.storeChunks(ctx, chunks); err != nil {
		log.Printf("[ERROR] Failed to store chunks for %q: %v", payload.Origin, err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.NewKnowledgeIngested(payload.Origin, len(chunks))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish knowledge ingested event: %v", err)
		}
	}

	log.Printf("[INFO] Stored %d chunks for %q", len(chunks), payload.Origin)
	msg.Ack()
}

// storeChunks writes all chunks of one document in a single transaction
// so a document is never half searchable.
func (cs *consumerService) storeChunks(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, chunks); err != nil {
		return err
	}

	return uow.Commit()
}
