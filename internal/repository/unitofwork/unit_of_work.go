package unitofwork

import (
	"context"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	TurnRepository() contract.TurnRepository
	SlotRepository() contract.SlotRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
}
