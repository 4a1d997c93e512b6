package dto

import (
	"time"

	"github.com/google/uuid"
)

type LayoutData struct {
	Title       string   `json:"title"`
	Bullets     []string `json:"bullets"`
	SourceCount int      `json:"source_count"`
	ImagePath   string   `json:"image_path,omitempty"`
}

type InfographicResponse struct {
	Id           uuid.UUID  `json:"infographic_id"`
	SessionId    uuid.UUID  `json:"session_id"`
	TemplateType string     `json:"template_type"`
	ImagePath    string     `json:"image_path"`
	LayoutData   LayoutData `json:"layout_data"`
	CreatedAt    time.Time  `json:"created_at"`
}
