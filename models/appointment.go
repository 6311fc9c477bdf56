package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID           string            `json:"id" gorm:"primaryKey;size:64"`
	Name         string            `json:"name" gorm:"not null"`
	Email        string            `json:"email" gorm:"not null"`
	Phone        string            `json:"phone"`
	Organization string            `json:"organization"`
	Purpose      string            `json:"purpose" gorm:"type:text"`
	Date         time.Time         `json:"date" gorm:"index"`
	Time         string            `json:"time" gorm:"size:20"`
	Duration     string            `json:"duration" gorm:"size:20"`
	Status       AppointmentStatus `json:"status" gorm:"size:20;not null"`
	Notes        string            `json:"notes" gorm:"type:text"`
	HubID        string            `json:"hubId" gorm:"size:64;not null;index"`
	Hub          *Hub              `json:"hub,omitempty" gorm:"foreignKey:HubID"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	if a.Status == "" {
		a.Status = AppointmentPending
	}
	return nil
}
