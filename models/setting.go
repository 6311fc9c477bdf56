package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Setting struct {
	ID        string         `json:"id" gorm:"primaryKey;size:64"`
	Key       string         `json:"key" gorm:"uniqueIndex;not null"`
	Value     datatypes.JSON `json:"value"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}
