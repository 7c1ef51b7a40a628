package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is created once at login and never mutated. Every chat turn
// resolves it by its opaque token.
type Session struct {
	Id        uuid.UUID
	Token     string
	UserId    uuid.UUID
	CreatedAt time.Time
}
