package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/unitofwork"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.TurnRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check Knowledge Chunk Repository", func(t *testing.T) {
		count, err := uow.KnowledgeChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("KnowledgeChunk count: %d", count)
	})

	t.Run("Transactional Turn With Slots", func(t *testing.T) {
		ctx := context.Background()
		now := time.Now()

		user := &entity.User{
			Id:        uuid.New(),
			Email:     "test-integration-" + uuid.New().String() + "@example.com",
			Name:      "Integration Test User",
			CreatedAt: now,
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		session := &entity.Session{
			Id:        uuid.New(),
			Token:     uuid.NewString(),
			UserId:    user.Id,
			CreatedAt: now,
		}
		require.NoError(t, uow.SessionRepository().Create(ctx, session))

		txUow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, txUow.Begin(ctx))
		defer txUow.Rollback()

		turn := &entity.Turn{
			Id:        uuid.New(),
			SessionId: session.Id,
			Position:  1,
			Stage:     "INFO_COLLECTION",
			Intent:    "QUOTE_REQUEST",
			Utterance: "quote vinyl flooring",
			Reply:     "Could you tell me your location?",
			CreatedAt: now,
		}
		require.NoError(t, txUow.TurnRepository().Create(ctx, turn))

		slot := &entity.Slot{
			Id:     uuid.New(),
			TurnId: turn.Id,
			Name:   "product",
			Value:  "vinyl flooring",
		}
		require.NoError(t, txUow.SlotRepository().Create(ctx, slot))
		require.NoError(t, txUow.Commit())

		values, err := uow.SlotRepository().FindLatestValuesBySession(ctx, session.Id)
		assert.NoError(t, err)
		assert.Equal(t, "vinyl flooring", values["product"])

		found, err := uow.SessionRepository().FindByToken(ctx, session.Token)
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, session.Id, found.Id)
	})
}
