package models

import (
	"time"

	"gorm.io/gorm"
)

type Tag struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Color     string    `json:"color" gorm:"size:20"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Count *TermCount `json:"_count,omitempty" gorm:"-"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return nil
}
