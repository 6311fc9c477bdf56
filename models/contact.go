package models

import (
	"time"

	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactNew        ContactStatus = "NEW"
	ContactInProgress ContactStatus = "IN_PROGRESS"
	ContactResolved   ContactStatus = "RESOLVED"
	ContactClosed     ContactStatus = "CLOSED"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactInProgress, ContactResolved, ContactClosed:
		return true
	}
	return false
}

type Contact struct {
	ID        string        `json:"id" gorm:"primaryKey;size:64"`
	Name      string        `json:"name" gorm:"not null"`
	Email     string        `json:"email" gorm:"not null"`
	Phone     string        `json:"phone"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message" gorm:"type:text"`
	Status    ContactStatus `json:"status" gorm:"size:20;not null"`
	Replied   bool          `json:"replied" gorm:"not null"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.Status == "" {
		c.Status = ContactNew
	}
	return nil
}
