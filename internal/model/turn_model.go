package model

import (
	"time"

	"github.com/google/uuid"
)

type Turn struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"not null;default:0"` // Sequence within the session
	Stage     string    `gorm:"type:text;not null"`
	Intent    string    `gorm:"type:text;not null"`
	Utterance string    `gorm:"type:text;not null"`
	Reply     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Turn) TableName() string {
	return "turns"
}
