package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters session-scoped rows (sources, messages, infographics)
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByGoogleID filters users by external Google identity
type ByGoogleID struct {
	GoogleID string
}

func (s ByGoogleID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("google_id = ?", s.GoogleID)
}
