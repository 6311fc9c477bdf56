package models

import (
	"time"

	"gorm.io/gorm"
)

type Hub struct {
	ID          string     `json:"id" gorm:"primaryKey;size:64"`
	Name        string     `json:"name" gorm:"not null"`
	Location    string     `json:"location"`
	Address     string     `json:"address"`
	Description string     `json:"description" gorm:"type:text"`
	Image       string     `json:"image"`
	Services    StringList `json:"services" gorm:"type:text"`
	Hours       string     `json:"hours"`
	Active      bool       `json:"active" gorm:"not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Count *HubCount `json:"_count,omitempty" gorm:"-"`
}

type HubCount struct {
	Appointments int64 `json:"appointments"`
}

func (h *Hub) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = NewID()
	}
	return nil
}
