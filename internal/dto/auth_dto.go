package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

type LoginResponse struct {
	UserId       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	SessionToken string    `json:"session_token"`
	CreatedAt    time.Time `json:"created_at"`
}
