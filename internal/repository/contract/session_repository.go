package contract

import (
	"context"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/specification"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	// FindByToken resolves a session by its opaque token, nil when unknown.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)
}
