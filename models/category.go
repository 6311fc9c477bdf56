package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Color       string    `json:"color" gorm:"size:20"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Count *TermCount `json:"_count,omitempty" gorm:"-"`
}

// TermCount carries how many blog posts reference a category or tag.
type TermCount struct {
	BlogPosts int64 `json:"blogPosts"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
