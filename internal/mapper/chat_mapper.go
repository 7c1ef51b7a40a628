package mapper

import (
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) SessionToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		Id:        s.Id,
		Token:     s.Token,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		Id:        s.Id,
		Token:     s.Token,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
	}
}

// Turn Mappers

func (m *ChatMapper) TurnToEntity(t *model.Turn) *entity.Turn {
	if t == nil {
		return nil
	}
	return &entity.Turn{
		Id:        t.Id,
		SessionId: t.SessionId,
		Position:  t.Position,
		Stage:     t.Stage,
		Intent:    t.Intent,
		Utterance: t.Utterance,
		Reply:     t.Reply,
		CreatedAt: t.CreatedAt,
	}
}

func (m *ChatMapper) TurnToModel(t *entity.Turn) *model.Turn {
	if t == nil {
		return nil
	}
	return &model.Turn{
		Id:        t.Id,
		SessionId: t.SessionId,
		Position:  t.Position,
		Stage:     t.Stage,
		Intent:    t.Intent,
		Utterance: t.Utterance,
		Reply:     t.Reply,
		CreatedAt: t.CreatedAt,
	}
}

// Slot Mappers

func (m *ChatMapper) SlotToEntity(s *model.Slot) *entity.Slot {
	if s == nil {
		return nil
	}
	return &entity.Slot{
		Id:     s.Id,
		TurnId: s.TurnId,
		Name:   s.Name,
		Value:  s.Value,
	}
}

func (m *ChatMapper) SlotToModel(s *entity.Slot) *model.Slot {
	if s == nil {
		return nil
	}
	return &model.Slot{
		Id:     s.Id,
		TurnId: s.TurnId,
		Name:   s.Name,
		Value:  s.Value,
	}
}
