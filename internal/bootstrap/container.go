package bootstrap

import (
	"log"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/config"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/controller"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/pkg/logger"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/pkg/mailer"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/memory"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/unitofwork"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/service"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/embedding"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/embedding/huggingface"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm/factory"

	pktNats "github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = huggingface.NewHuggingFaceProvider(cfg.Ai.HuggingFaceAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: HUGGINGFACE (%s)", cfg.Ai.EmbeddingModel)
	}

	llmBaseURL := cfg.Ai.MistralBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.MistralAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	sessionCache := memory.NewSessionCache()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Flow.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Flow.IngestTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
	)

	authService := service.NewAuthService(uowFactory, sessionCache)
	chatService := service.NewChatService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		sessionCache,
		emailService,
		natsPub,
		sysLogger,
		cfg.Flow,
		cfg.App.EscalationEmail,
	)
	knowledgeService := service.NewKnowledgeService(publisherService, sysLogger, cfg.Flow)

	// 5. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		ChatController:      controller.NewChatController(chatService, sysLogger),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),

		ConsumerService: consumerService,
		SysLogger:       sysLogger,
	}
}
