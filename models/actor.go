package models

import (
	"time"

	"gorm.io/gorm"
)

type Actor struct {
	ID        string     `json:"id" gorm:"primaryKey;size:64"`
	Name      string     `json:"name" gorm:"not null"`
	Logo      string     `json:"logo"`
	Mission   string     `json:"mission" gorm:"type:text"`
	Programs  StringList `json:"programs" gorm:"type:text"`
	Website   string     `json:"website"`
	Icon      string     `json:"icon"`
	Color     string     `json:"color" gorm:"size:20"`
	Active    bool       `json:"active" gorm:"not null"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (a *Actor) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return nil
}
