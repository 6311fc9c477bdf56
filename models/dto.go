package models

import (
	"encoding/json"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Name     string   `json:"name" validate:"required,max=255"`
	Password string   `json:"password" validate:"required,min=8"`
	Role     UserRole `json:"role"`
}

type HubRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Location    string `json:"location" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	// Services is accepted either as a JSON array or as newline separated text.
	Services StringList `json:"services"`
	Hours    string     `json:"hours"`
	Active   *bool      `json:"active"`
}

type ActorRequest struct {
	Name     string     `json:"name" validate:"required,max=255"`
	Logo     string     `json:"logo"`
	Mission  string     `json:"mission" validate:"required"`
	Programs StringList `json:"programs"`
	Website  string     `json:"website"`
	Icon     string     `json:"icon"`
	Color    string     `json:"color"`
	Active   *bool      `json:"active"`
}

type ActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type AppointmentRequest struct {
	Name         string            `json:"name" validate:"required,max=255"`
	Email        string            `json:"email" validate:"required,email"`
	Phone        string            `json:"phone"`
	Organization string            `json:"organization"`
	Purpose      string            `json:"purpose" validate:"required"`
	Date         string            `json:"date" validate:"required"`
	Time         string            `json:"time" validate:"required"`
	Duration     string            `json:"duration"`
	Status       AppointmentStatus `json:"status"`
	Notes        string            `json:"notes"`
	HubID        string            `json:"hubId" validate:"required"`
}

type PublicAppointmentRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Organization string `json:"organization"`
	Purpose      string `json:"purpose"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Duration     string `json:"duration"`
	HubID        string `json:"hubId" validate:"required"`
}

type AppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" validate:"required"`
}

type ContactRequest struct {
	Name    string        `json:"name" validate:"required,max=255"`
	Email   string        `json:"email" validate:"required,email"`
	Phone   string        `json:"phone"`
	Subject string        `json:"subject" validate:"required"`
	Message string        `json:"message" validate:"required"`
	Status  ContactStatus `json:"status"`
	Replied bool          `json:"replied"`
}

type ContactPatchRequest struct {
	Status  *ContactStatus `json:"status"`
	Replied *bool          `json:"replied"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"max=120"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type TagRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Slug  string `json:"slug" validate:"max=120"`
	Color string `json:"color"`
}

type BlogPostRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Slug        string     `json:"slug" validate:"max=255"`
	Content     string     `json:"content" validate:"required"`
	Excerpt     string     `json:"excerpt"`
	Image       string     `json:"image"`
	Status      PostStatus `json:"status"`
	CategoryIDs []string   `json:"categoryIds"`
	TagIDs      []string   `json:"tagIds"`
}

type PostStatusRequest struct {
	Status PostStatus `json:"status" validate:"required"`
}

type BlogListParams struct {
	Status     string `form:"status"`
	AuthorID   string `form:"authorId"`
	CategoryID string `form:"categoryId"`
	TagID      string `form:"tagId"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	SortBy     string `form:"sortBy,default=created_at"`
	SortOrder  string `form:"sortOrder,default=desc"`
}

type BlogListResponse struct {
	Posts []BlogPostView `json:"posts"`
	Total int64          `json:"total"`
}

type Stats struct {
	Users        int64 `json:"users"`
	Hubs         int64 `json:"hubs"`
	Appointments int64 `json:"appointments"`
	Contacts     int64 `json:"contacts"`
	BlogPosts    int64 `json:"blogPosts"`
}

type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type SettingRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}
