package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/config"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/dto"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/pkg/logger"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/utils"
)

type IKnowledgeService interface {
	Upload(ctx context.Context, req *dto.UploadKnowledgeRequest) (*dto.UploadKnowledgeResponse, error)
}

type knowledgeService struct {
	publisherService IPublisherService
	sysLogger        logger.ILogger
	flowCfg          config.FlowConfig
}

func NewKnowledgeService(publisherService IPublisherService, sysLogger logger.ILogger, flowCfg config.FlowConfig) IKnowledgeService {
	return &knowledgeService{
		publisherService: publisherService,
		sysLogger:        sysLogger,
		flowCfg:          flowCfg,
	}
}

// Upload splits the document and queues it for embedding. Chunks become
// searchable once the consumer has embedded and stored them.
func (ks *knowledgeService) Upload(ctx context.Context, req *dto.UploadKnowledgeRequest) (*dto.UploadKnowledgeResponse, error) {
	chunks := utils.SplitText(req.Content, ks.flowCfg.ChunkSize, ks.flowCfg.ChunkOverlap)
	if len(chunks) == 0 {
		return nil, errors.New("document content is empty")
	}

	payload := dto.PublishEmbedKnowledgeMessage{
		Origin:   req.Origin,
		Category: req.Category,
		Metadata: req.Metadata,
		Chunks:   chunks,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	if err := ks.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	ks.sysLogger.Info("knowledge", "document queued for embedding", map[string]interface{}{
		"origin": req.Origin,
		"chunks": len(chunks),
	})

	return &dto.UploadKnowledgeResponse{
		Origin: req.Origin,
		Chunks: len(chunks),
		Queued: true,
	}, nil
}
