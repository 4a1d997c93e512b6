package dto

import (
	"time"

	"github.com/google/uuid"
)

type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type UserResponse struct {
	Id        uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
