package entity

import (
	"time"

	"github.com/google/uuid"
)

// LayoutData is the closed set of fields the renderer produces and the API
// exposes. Stored as an opaque JSON blob at the persistence boundary.
type LayoutData struct {
	Title       string   `json:"title"`
	Bullets     []string `json:"bullets"`
	SourceCount int      `json:"source_count"`
	ImagePath   string   `json:"image_path,omitempty"`
}

// Infographic is 1:1 per session, enforced by delete-then-create on
// regeneration rather than a uniqueness constraint.
type Infographic struct {
	Id           uuid.UUID
	SessionId    uuid.UUID
	TemplateType string
	ImagePath    string
	Layout       LayoutData
	CreatedAt    time.Time
}
