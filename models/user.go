package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleEditor     UserRole = "EDITOR"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	Password  string    `json:"-" gorm:"not null"`
	Role      UserRole  `json:"role" gorm:"size:20;not null"`
	Active    bool      `json:"active" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeEmail is the stored form of an email: trimmed and lower case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	if u.Role == "" {
		u.Role = RoleEditor
	}
	return nil
}

// Author is the public projection of a User embedded in blog post responses.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) AsAuthor() *Author {
	if u == nil {
		return nil
	}
	return &Author{ID: u.ID, Name: u.Name, Email: u.Email}
}
