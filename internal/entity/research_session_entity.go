package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPending    SessionStatus = "pending"
	SessionStatusSearching  SessionStatus = "searching"
	SessionStatusGenerating SessionStatus = "generating"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusFailed     SessionStatus = "failed"
)

// ResearchSession status is driven exclusively by the session service
// pipeline; UpdatedAt never precedes CreatedAt.
type ResearchSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Prompt    string
	Status    SessionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
