package model

import (
	"github.com/google/uuid"
)

type Source struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:text;not null"`
	Url        string    `gorm:"type:text;not null"`
	Snippet    string    `gorm:"type:text"`
	Confidence float64   `gorm:"not null"`
}

func (Source) TableName() string {
	return "sources"
}
