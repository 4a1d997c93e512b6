package entity

import (
	"github.com/google/uuid"
)

// Source rows are written once in bulk after a search and never updated.
// Confidence is in [0,1], assigned by rank at search time.
type Source struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	Title      string
	Url        string
	Snippet    string
	Confidence float64
}
