package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type SourceDTO struct {
	Origin     string  `json:"origin"`
	Similarity float64 `json:"similarity"`
}

type SendMessageResponse struct {
	TurnId    uuid.UUID         `json:"turn_id"`
	Reply     string            `json:"reply"`
	Intent    string            `json:"intent"`
	Stage     string            `json:"stage"`
	Grounded  bool              `json:"grounded"`
	Sources   []SourceDTO       `json:"sources,omitempty"`
	Slots     map[string]string `json:"slots,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type GetTurnResponse struct {
	Id        uuid.UUID         `json:"id"`
	Position  int               `json:"position"`
	Stage     string            `json:"stage"`
	Intent    string            `json:"intent"`
	Utterance string            `json:"utterance"`
	Reply     string            `json:"reply"`
	Slots     map[string]string `json:"slots,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type GetHistoryResponse struct {
	SessionToken string            `json:"session_token"`
	Turns        []GetTurnResponse `json:"turns"`
}
