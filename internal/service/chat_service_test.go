package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/config"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/dto"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/pkg/serverutils"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/contract"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/memory"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/specification"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/unitofwork"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/flow/response"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- in-memory repository fakes ----

type fakeStore struct {
	users    []*entity.User
	sessions map[string]*entity.Session
	turns    []*entity.Turn
	slots    []*entity.Slot
	chunks   []*contract.ScoredKnowledgeChunk

	failCommit bool
	commits    int
	rollbacks  int
}

type fakeUOW struct {
	store *fakeStore

	inTx         bool
	pendingTurns []*entity.Turn
	pendingSlots []*entity.Slot
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &fakeUOW{store: f.store}
}

func (u *fakeUOW) Begin(_ context.Context) error {
	u.inTx = true
	return nil
}

func (u *fakeUOW) Commit() error {
	if u.store.failCommit {
		return errors.New("commit failed")
	}
	u.store.turns = append(u.store.turns, u.pendingTurns...)
	u.store.slots = append(u.store.slots, u.pendingSlots...)
	u.store.commits++
	u.inTx = false
	u.pendingTurns = nil
	u.pendingSlots = nil
	return nil
}

func (u *fakeUOW) Rollback() error {
	if u.inTx {
		u.store.rollbacks++
		u.pendingTurns = nil
		u.pendingSlots = nil
		u.inTx = false
	}
	return nil
}

func (u *fakeUOW) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUOW) SessionRepository() contract.SessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUOW) TurnRepository() contract.TurnRepository {
	return &fakeTurnRepo{uow: u}
}

func (u *fakeUOW) SlotRepository() contract.SlotRepository {
	return &fakeSlotRepo{uow: u}
}

func (u *fakeUOW) KnowledgeChunkRepository() contract.KnowledgeChunkRepository {
	return &fakeChunkRepo{store: u.store}
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.users = append(r.store.users, user)
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byEmail, ok := spec.(specification.ByEmail); ok {
			for _, user := range r.store.users {
				if user.Email == byEmail.Email {
					return user, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.store.users)), nil
}

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.store.sessions[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Session, error) {
	return nil, nil
}

func (r *fakeSessionRepo) FindByToken(_ context.Context, token string) (*entity.Session, error) {
	return r.store.sessions[token], nil
}

type fakeTurnRepo struct{ uow *fakeUOW }

func (r *fakeTurnRepo) Create(_ context.Context, turn *entity.Turn) error {
	if r.uow.inTx {
		r.uow.pendingTurns = append(r.uow.pendingTurns, turn)
	} else {
		r.uow.store.turns = append(r.uow.store.turns, turn)
	}
	return nil
}

func (r *fakeTurnRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Turn, error) {
	return nil, nil
}

func (r *fakeTurnRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Turn, error) {
	return r.uow.store.turns, nil
}

func (r *fakeTurnRepo) FindRecentBySession(_ context.Context, sessionId uuid.UUID, limit int) ([]*entity.Turn, error) {
	var result []*entity.Turn
	for _, turn := range r.uow.store.turns {
		if turn.SessionId == sessionId {
			result = append(result, turn)
		}
	}
	if len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result, nil
}

func (r *fakeTurnRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.uow.store.turns)), nil
}

type fakeSlotRepo struct{ uow *fakeUOW }

func (r *fakeSlotRepo) Create(_ context.Context, slot *entity.Slot) error {
	return r.CreateBulk(context.Background(), []*entity.Slot{slot})
}

func (r *fakeSlotRepo) CreateBulk(_ context.Context, slots []*entity.Slot) error {
	if r.uow.inTx {
		r.uow.pendingSlots = append(r.uow.pendingSlots, slots...)
	} else {
		r.uow.store.slots = append(r.uow.store.slots, slots...)
	}
	return nil
}

func (r *fakeSlotRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Slot, error) {
	return r.uow.store.slots, nil
}

func (r *fakeSlotRepo) FindLatestValuesBySession(_ context.Context, sessionId uuid.UUID) (map[string]string, error) {
	turnSession := make(map[uuid.UUID]uuid.UUID)
	for _, turn := range r.uow.store.turns {
		turnSession[turn.Id] = turn.SessionId
	}
	// later slots overwrite earlier ones, mirroring DISTINCT ON latest wins
	values := make(map[string]string)
	for _, slot := range r.uow.store.slots {
		if turnSession[slot.TurnId] == sessionId {
			values[slot.Name] = slot.Value
		}
	}
	return values, nil
}

type fakeChunkRepo struct{ store *fakeStore }

func (r *fakeChunkRepo) Create(_ context.Context, _ *entity.KnowledgeChunk) error     { return nil }
func (r *fakeChunkRepo) CreateBulk(_ context.Context, _ []*entity.KnowledgeChunk) error { return nil }

func (r *fakeChunkRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.KnowledgeChunk, error) {
	return nil, nil
}

func (r *fakeChunkRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.store.chunks)), nil
}

func (r *fakeChunkRepo) SearchSimilar(_ context.Context, _ []float32, limit int, _ string) ([]*contract.ScoredKnowledgeChunk, error) {
	if len(r.store.chunks) > limit {
		return r.store.chunks[:limit], nil
	}
	return r.store.chunks, nil
}

// ---- provider fakes ----

type fakeEmbedder struct{}

func (f *fakeEmbedder) Generate(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

// routedLLM answers the classifier, extractor and composer prompts
// differently, keyed on prompt markers.
type routedLLM struct {
	intentLabel string
	slotJSON    string
	reply       string
}

func (r *routedLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	if strings.Contains(prompt, "Extract order information") {
		return r.slotJSON, nil
	}
	return r.intentLabel, nil
}

func (r *routedLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return r.reply, nil
}

// ---- helpers ----

func testFlowConfig() config.FlowConfig {
	return config.FlowConfig{
		RetrievalLimit:  4,
		ClassifyTimeout: time.Second,
		ExtractTimeout:  time.Second,
		RetrieveTimeout: time.Second,
		ComposeTimeout:  time.Second,
		ChunkSize:       500,
		ChunkOverlap:    50,
	}
}

func chunkWithCategory(content string) *contract.ScoredKnowledgeChunk {
	category := "products_services"
	return &contract.ScoredKnowledgeChunk{
		Chunk: &entity.KnowledgeChunk{
			Id:       uuid.New(),
			Origin:   "catalog.pdf",
			Content:  content,
			Category: &category,
		},
		Similarity: 0.9,
	}
}

func newTestService(store *fakeStore, provider llm.LLMProvider) (IChatService, *memory.SessionCache) {
	cache := memory.NewSessionCache()
	svc := NewChatService(
		&fakeFactory{store: store},
		&fakeEmbedder{},
		provider,
		cache,
		nil, // mailer unused: escalation email disabled in tests
		nil, // nats publisher optional
		noopLogger{},
		testFlowConfig(),
		"",
	)
	return svc, cache
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func seedSession(store *fakeStore) *entity.Session {
	session := &entity.Session{
		Id:        uuid.New(),
		Token:     uuid.NewString(),
		UserId:    uuid.New(),
		CreatedAt: time.Now(),
	}
	store.sessions[session.Token] = session
	return session
}

func newStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*entity.Session)}
}

// ---- tests ----

func TestSendMessageQuoteRequestCompletesFlow(t *testing.T) {
	store := newStore()
	store.chunks = []*contract.ScoredKnowledgeChunk{
		chunkWithCategory("Vinyl flooring: water resistant, installed statewide."),
	}
	session := seedSession(store)

	provider := &routedLLM{
		intentLabel: "QUOTE_REQUEST",
		slotJSON:    `{"product": "vinyl flooring", "location": "Porto Alegre", "approximate_volume": null, "deadline": null}`,
		reply:       "We install vinyl flooring across the state.",
	}
	svc, _ := newTestService(store, provider)

	res, err := svc.SendMessage(context.Background(), session.Token, &dto.SendMessageRequest{
		Message: "I want a quote for vinyl flooring in Porto Alegre",
	})
	require.NoError(t, err)

	assert.Equal(t, "QUOTE_REQUEST", res.Intent)
	assert.Equal(t, "DONE", res.Stage)
	assert.Equal(t, response.HandOffReply, res.Reply)
	assert.True(t, res.Grounded)
	assert.Equal(t, "vinyl flooring", res.Slots["product"])
	assert.Equal(t, "Porto Alegre", res.Slots["location"])

	require.Len(t, store.turns, 1)
	assert.Equal(t, 1, store.turns[0].Position)
	assert.Len(t, store.slots, 2)
	assert.Equal(t, 1, store.commits)
}

func TestSendMessageConfirmationInterpolatesEarlierSlots(t *testing.T) {
	store := newStore()
	store.chunks = []*contract.ScoredKnowledgeChunk{
		chunkWithCategory("Vinyl flooring catalog."),
	}
	session := seedSession(store)

	// Turn 1 stores product and location.
	first := &routedLLM{
		intentLabel: "QUOTE_REQUEST",
		slotJSON:    `{"product": "vinyl flooring", "location": "Porto Alegre", "approximate_volume": null, "deadline": null}`,
		reply:       "We can do that.",
	}
	svc, _ := newTestService(store, first)
	_, err := svc.SendMessage(context.Background(), session.Token, &dto.SendMessageRequest{
		Message: "quote vinyl flooring for Porto Alegre",
	})
	require.NoError(t, err)

	// Turn 2 confirms without restating either value.
	second := &routedLLM{
		intentLabel: "CONFIRMATION",
		slotJSON:    `{"product": null, "location": null, "approximate_volume": null, "deadline": null}`,
		reply:       "Great.",
	}
	svc2, _ := newTestService(store, second)
	res, err := svc2.SendMessage(context.Background(), session.Token, &dto.SendMessageRequest{
		Message: "yes, confirm it",
	})
	require.NoError(t, err)

	assert.Equal(t, "DONE", res.Stage)
	assert.Contains(t, res.Reply, "vinyl flooring")
	assert.Contains(t, res.Reply, "Porto Alegre")
	assert.Contains(t, res.Reply, "unspecified volume")

	// Only the first turn wrote slot rows.
	require.Len(t, store.turns, 2)
	assert.Len(t, store.slots, 2)
	assert.Equal(t, 2, store.turns[1].Position)
}

func TestSendMessageZeroSnippetsEscalates(t *testing.T) {
	store := newStore() // no chunks at all
	session := seedSession(store)

	provider := &routedLLM{
		intentLabel: "PRODUCT_QUESTION",
		slotJSON:    `{"product": null, "location": null, "approximate_volume": null, "deadline": null}`,
		reply:       "should never be returned",
	}
	svc, _ := newTestService(store, provider)

	res, err := svc.SendMessage(context.Background(), session.Token, &dto.SendMessageRequest{
		Message: "do you sell marble countertops?",
	})
	require.NoError(t, err)

	assert.Equal(t, response.EscalationReply, res.Reply)
	assert.Equal(t, "DONE", res.Stage)
	assert.False(t, res.Grounded)
	assert.Empty(t, res.Sources)
}

func TestSendMessageUnknownSessionToken(t *testing.T) {
	store := newStore()
	provider := &routedLLM{intentLabel: "GREETING", slotJSON: `{}`, reply: "hi"}
	svc, _ := newTestService(store, provider)

	_, err := svc.SendMessage(context.Background(), "no-such-token", &dto.SendMessageRequest{Message: "hello"})
	assert.ErrorIs(t, err, serverutils.ErrSessionNotFound)
}

func TestSendMessageStorageFailureAbortsTurn(t *testing.T) {
	store := newStore()
	store.chunks = []*contract.ScoredKnowledgeChunk{chunkWithCategory("catalog")}
	store.failCommit = true
	session := seedSession(store)

	provider := &routedLLM{
		intentLabel: "PRODUCT_QUESTION",
		slotJSON:    `{"product": null, "location": null, "approximate_volume": null, "deadline": null}`,
		reply:       "Vinyl is water resistant.",
	}
	svc, _ := newTestService(store, provider)

	_, err := svc.SendMessage(context.Background(), session.Token, &dto.SendMessageRequest{Message: "is vinyl waterproof?"})
	require.Error(t, err)

	// Nothing partially written.
	assert.Empty(t, store.turns)
	assert.Empty(t, store.slots)
}

func TestSendMessageFirstInteractionGreeting(t *testing.T) {
	store := newStore()
	store.chunks = []*contract.ScoredKnowledgeChunk{chunkWithCategory("About Cemear.")}
	session := seedSession(store)

	provider := &routedLLM{
		intentLabel: "GREETING",
		slotJSON:    `{"product": null, "location": null, "approximate_volume": null, "deadline": null}`,
		reply:       "How can I help you today?",
	}
	svc, _ := newTestService(store, provider)

	res, err := svc.SendMessage(context.Background(), session.Token, &dto.SendMessageRequest{Message: "hi there"})
	require.NoError(t, err)

	assert.Equal(t, "START", res.Stage)
	assert.True(t, strings.HasPrefix(res.Reply, response.GreetingPrefix))
}

func TestGetHistoryReturnsTurnsInOrder(t *testing.T) {
	store := newStore()
	store.chunks = []*contract.ScoredKnowledgeChunk{chunkWithCategory("catalog")}
	session := seedSession(store)

	provider := &routedLLM{
		intentLabel: "PRODUCT_QUESTION",
		slotJSON:    `{"product": null, "location": null, "approximate_volume": null, "deadline": null}`,
		reply:       "Yes we do.",
	}
	svc, _ := newTestService(store, provider)

	for _, msg := range []string{"first question", "second question"} {
		_, err := svc.SendMessage(context.Background(), session.Token, &dto.SendMessageRequest{Message: msg})
		require.NoError(t, err)
	}

	history, err := svc.GetHistory(context.Background(), session.Token)
	require.NoError(t, err)

	require.Len(t, history.Turns, 2)
	assert.Equal(t, "first question", history.Turns[0].Utterance)
	assert.Equal(t, "second question", history.Turns[1].Utterance)
	assert.Equal(t, 1, history.Turns[0].Position)
	assert.Equal(t, 2, history.Turns[1].Position)
}
