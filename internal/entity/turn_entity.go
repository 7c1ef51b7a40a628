package entity

import (
	"time"

	"github.com/google/uuid"
)

// Turn is one completed exchange of a conversation: the user utterance,
// the composed reply and the flow stage the session landed on. Append-only.
type Turn struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Position  int
	Stage     string
	Intent    string
	Utterance string
	Reply     string
	CreatedAt time.Time
}

// Slot is a structured value extracted from the utterance of its parent
// turn. Only non-empty extractions are stored.
type Slot struct {
	Id     uuid.UUID
	TurnId uuid.UUID
	Name   string
	Value  string
}
