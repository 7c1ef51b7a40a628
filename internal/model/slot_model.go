package model

import (
	"github.com/google/uuid"
)

type Slot struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"type:text;not null"`
	Value  string    `gorm:"type:text;not null"`
}

func (Slot) TableName() string {
	return "slots"
}
