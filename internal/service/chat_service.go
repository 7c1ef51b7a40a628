package service

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/config"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/constant"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/dto"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/pkg/logger"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/pkg/mailer"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/pkg/serverutils"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/memory"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/specification"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/unitofwork"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/embedding"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/events"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/intent"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/response"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/retrieval"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/slots"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/stage"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm"
	pktNats "github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/nats"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// IChatService drives one conversation turn end to end and exposes
// read access to the recorded transcript.
type IChatService interface {
	SendMessage(ctx context.Context, sessionToken string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetTurn(ctx context.Context, sessionToken string, turnId uuid.UUID) (*dto.GetTurnResponse, error)
	GetHistory(ctx context.Context, sessionToken string) (*dto.GetHistoryResponse, error)
}

type chatService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionCache *memory.SessionCache

	classifier *intent.Classifier
	extractor  *slots.Extractor
	retriever  *retrieval.Retriever
	composer   *response.Composer

	emailService    mailer.IEmailService
	eventPublisher  *pktNats.Publisher
	sysLogger       logger.ILogger
	llmLogger       *log.Logger
	flowCfg         config.FlowConfig
	escalationEmail string
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	sessionCache *memory.SessionCache,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	flowCfg config.FlowConfig,
	escalationEmail string,
) IChatService {

	llmLogger := initLLMLogger()

	return &chatService{
		uowFactory:   uowFactory,
		sessionCache: sessionCache,

		classifier: intent.NewClassifier(llmProvider, llmLogger),
		extractor:  slots.NewExtractor(llmProvider, llmLogger),
		retriever:  retrieval.NewRetriever(uowFactory, embeddingProvider, llmLogger),
		composer:   response.NewComposer(llmProvider, llmLogger),

		emailService:    emailService,
		eventPublisher:  eventPublisher,
		sysLogger:       sysLogger,
		llmLogger:       llmLogger,
		flowCfg:         flowCfg,
		escalationEmail: escalationEmail,
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_flow.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-FLOW] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// SendMessage runs the turn pipeline: classify and extract in parallel,
// merge slots with the session memory, retrieve grounding passages,
// compose the reply, resolve the final text and stage, then persist the
// whole turn in one transaction.
func (cs *chatService) SendMessage(ctx context.Context, sessionToken string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	started := time.Now()

	session, err := cs.resolveSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	recentTurns, err := uow.TurnRepository().FindRecentBySession(ctx, session.Id, constant.HistoryLimit)
	if err != nil {
		return nil, err
	}
	firstInteraction := len(recentTurns) == 0

	previousValues, err := uow.SlotRepository().FindLatestValuesBySession(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	var (
		detected  intent.Intent
		extracted slots.SlotSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, cs.flowCfg.ClassifyTimeout)
		defer cancel()
		var cerr error
		detected, cerr = cs.classifier.Classify(cctx, req.Message)
		return cerr
	})
	g.Go(func() error {
		ectx, cancel := context.WithTimeout(gctx, cs.flowCfg.ExtractTimeout)
		defer cancel()
		extracted = cs.extractor.Extract(ectx, req.Message)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := extracted.Merge(previousValues)

	rctx, rcancel := context.WithTimeout(ctx, cs.flowCfg.RetrieveTimeout)
	snippets, err := cs.retriever.Retrieve(rctx, req.Message, retrieval.CategoryForIntent(detected), cs.flowCfg.RetrievalLimit)
	rcancel()
	if err != nil {
		return nil, err
	}

	pctx, pcancel := context.WithTimeout(ctx, cs.flowCfg.ComposeTimeout)
	composed, err := cs.composer.Compose(pctx, req.Message, snippets, historyMessages(recentTurns))
	pcancel()
	if err != nil {
		return nil, err
	}

	resolved := stage.Resolve(stage.Input{
		Intent:           detected,
		Slots:            merged,
		Composed:         *composed,
		SnippetCount:     len(snippets),
		FirstInteraction: firstInteraction,
	})

	turn := &entity.Turn{
		Id:        uuid.New(),
		SessionId: session.Id,
		Stage:     string(resolved.Stage),
		Intent:    detected.String(),
		Utterance: req.Message,
		Reply:     resolved.Reply,
		CreatedAt: time.Now(),
	}

	if err := cs.persistTurn(ctx, session.Id, turn, extracted); err != nil {
		// The reply is lost at this point, keep it in the log for recovery.
		cs.sysLogger.Error("chat", "turn persistence failed, reply not delivered", map[string]interface{}{
			"error":      err.Error(),
			"session_id": session.Id.String(),
			"intent":     turn.Intent,
			"stage":      turn.Stage,
			"reply":      turn.Reply,
		})
		return nil, err
	}

	cs.publishTurnCompleted(ctx, session.Id, turn.Id, turn.Intent, turn.Stage, composed.Grounded, time.Since(started))
	cs.notifyEscalation(sessionToken, req.Message, resolved.Reply)

	sources := make([]dto.SourceDTO, 0, len(composed.Sources))
	for _, src := range composed.Sources {
		sources = append(sources, dto.SourceDTO{Origin: src.Origin, Similarity: src.Similarity})
	}

	return &dto.SendMessageResponse{
		TurnId:    turn.Id,
		Reply:     turn.Reply,
		Intent:    turn.Intent,
		Stage:     turn.Stage,
		Grounded:  composed.Grounded,
		Sources:   sources,
		Slots:     merged.Values(),
		CreatedAt: turn.CreatedAt,
	}, nil
}

// persistTurn writes the turn and its extracted slot values atomically.
// Only slots extracted from the current utterance are written, the merged
// view is always reconstructed from the per-turn rows.
func (cs *chatService) persistTurn(ctx context.Context, sessionId uuid.UUID, turn *entity.Turn, extracted slots.SlotSet) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	count, err := uow.TurnRepository().Count(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return err
	}
	turn.Position = int(count) + 1

	if err := uow.TurnRepository().Create(ctx, turn); err != nil {
		return err
	}

	values := extracted.Values()
	if len(values) > 0 {
		rows := make([]*entity.Slot, 0, len(values))
		for name, value := range values {
			rows = append(rows, &entity.Slot{
				Id:     uuid.New(),
				TurnId: turn.Id,
				Name:   name,
				Value:  value,
			})
		}
		if err := uow.SlotRepository().CreateBulk(ctx, rows); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (cs *chatService) publishTurnCompleted(ctx context.Context, sessionId, turnId uuid.UUID, intentLabel, stageLabel string, grounded bool, latency time.Duration) {
	if cs.eventPublisher == nil {
		return
	}
	evt := events.NewTurnCompleted(sessionId, turnId, intentLabel, stageLabel, grounded, latency)
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.sysLogger.Warn("chat", "failed to publish turn completed event", map[string]interface{}{
			"error":   err.Error(),
			"turn_id": turnId.String(),
		})
	}
}

// notifyEscalation emails the support team when the assistant hands the
// question off to a specialist. Fire and forget.
func (cs *chatService) notifyEscalation(sessionToken, utterance, reply string) {
	if cs.escalationEmail == "" || !response.ContainsEscalation(reply) {
		return
	}
	go func() {
		if err := cs.emailService.SendEscalationAlert(cs.escalationEmail, sessionToken, utterance); err != nil {
			cs.sysLogger.Warn("chat", "failed to send escalation alert", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

func (cs *chatService) GetTurn(ctx context.Context, sessionToken string, turnId uuid.UUID) (*dto.GetTurnResponse, error) {
	session, err := cs.resolveSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	turn, err := uow.TurnRepository().FindOne(ctx, specification.ByID{ID: turnId})
	if err != nil {
		return nil, err
	}
	if turn == nil || turn.SessionId != session.Id {
		return nil, serverutils.ErrTurnNotFound
	}

	slotRows, err := uow.SlotRepository().FindAll(ctx, specification.ByTurnID{TurnID: turnId})
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(slotRows))
	for _, row := range slotRows {
		values[row.Name] = row.Value
	}

	resp := turnResponse(turn)
	resp.Slots = values
	return resp, nil
}

func (cs *chatService) GetHistory(ctx context.Context, sessionToken string) (*dto.GetHistoryResponse, error) {
	session, err := cs.resolveSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	turns, err := uow.TurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	views := make([]dto.GetTurnResponse, 0, len(turns))
	for _, turn := range turns {
		views = append(views, *turnResponse(turn))
	}

	return &dto.GetHistoryResponse{
		SessionToken: sessionToken,
		Turns:        views,
	}, nil
}

// resolveSession checks the in-memory cache before hitting the database.
func (cs *chatService) resolveSession(ctx context.Context, token string) (*entity.Session, error) {
	if cached, ok := cs.sessionCache.Get(token); ok {
		return cached, nil
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrSessionNotFound
	}

	cs.sessionCache.Save(session)
	return session, nil
}

// historyMessages converts stored turns into the chat transcript fed to
// the composer, oldest first.
func historyMessages(turns []*entity.Turn) []llm.Message {
	messages := make([]llm.Message, 0, len(turns)*2)
	for _, turn := range turns {
		messages = append(messages, llm.Message{Role: constant.ChatRoleUser, Content: turn.Utterance})
		messages = append(messages, llm.Message{Role: constant.ChatRoleAssistant, Content: turn.Reply})
	}
	return messages
}

func turnResponse(turn *entity.Turn) *dto.GetTurnResponse {
	return &dto.GetTurnResponse{
		Id:        turn.Id,
		Position:  turn.Position,
		Stage:     turn.Stage,
		Intent:    turn.Intent,
		Utterance: turn.Utterance,
		Reply:     turn.Reply,
		CreatedAt: turn.CreatedAt,
	}
}
