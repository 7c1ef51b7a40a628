package contract

import (
	"context"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/specification"

	"github.com/google/uuid"
)

type TurnRepository interface {
	Create(ctx context.Context, turn *entity.Turn) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Turn, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Turn, error)
	// FindRecentBySession returns the most recent `limit` turns of a session
	// in ascending creation order.
	FindRecentBySession(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.Turn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) error
	CreateBulk(ctx context.Context, slots []*entity.Slot) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Slot, error)
	// FindLatestValuesBySession returns the most recent stored value per slot
	// name across all turns of a session.
	FindLatestValuesBySession(ctx context.Context, sessionId uuid.UUID) (map[string]string, error)
}
