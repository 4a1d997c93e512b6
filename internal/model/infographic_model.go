package model

import (
	"time"

	"github.com/google/uuid"
)

type Infographic struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId    uuid.UUID `gorm:"type:uuid;not null;index"`
	TemplateType string    `gorm:"type:varchar(50);not null"`
	ImagePath    string    `gorm:"type:text;not null"`
	LayoutData   string    `gorm:"type:text;not null"` // JSON blob, opaque to the schema
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Infographic) TableName() string {
	return "infographics"
}
