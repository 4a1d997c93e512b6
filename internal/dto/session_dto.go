package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type SessionResponse struct {
	Id        uuid.UUID `json:"session_id"`
	UserId    uuid.UUID `json:"user_id"`
	Prompt    string    `json:"prompt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateMessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"message_id"`
	SessionId uuid.UUID `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SourceResponse struct {
	Id         uuid.UUID `json:"source_id"`
	SessionId  uuid.UUID `json:"session_id"`
	Title      string    `json:"title"`
	Url        string    `json:"url"`
	Snippet    string    `json:"snippet"`
	Confidence float64   `json:"confidence"`
}
