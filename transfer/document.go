// Package transfer moves the whole content store in and out of a single JSON
// document. Export reads every table; import replaces every table inside one
// transaction.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"iniva-cms/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Version is stamped on every exported document. Imports accept any 1.x.
const Version = "1.0"

var supportedVersion = regexp.MustCompile(`^1(\.\d+)?$`)

type Document struct {
	Version      string               `json:"version"`
	ExportedAt   time.Time            `json:"exportedAt"`
	Users        []User               `json:"users"`
	Hubs         []models.Hub         `json:"hubs"`
	Actors       []models.Actor       `json:"actors"`
	Appointments []models.Appointment `json:"appointments"`
	Contacts     []models.Contact     `json:"contacts"`
	Categories   []models.Category    `json:"categories"`
	Tags         []models.Tag         `json:"tags"`
	BlogPosts    []BlogPost           `json:"blogPosts"`
	Settings     []models.Setting     `json:"settings"`
}

// User carries the password hash, which the API representation hides, so
// imported accounts keep working credentials.
type User struct {
	models.User
	Password string `json:"password"`
}

type BlogPost struct {
	models.BlogPost
	Categories []CategoryRef  `json:"categories"`
	Tags       []TagRef       `json:"tags"`
	Author     *models.Author `json:"author,omitempty"`
}

type CategoryRef struct {
	BlogPostID string `json:"blogPostId,omitempty"`
	CategoryID string `json:"categoryId"`
}

type TagRef struct {
	BlogPostID string `json:"blogPostId,omitempty"`
	TagID      string `json:"tagId"`
}

func (d *Document) Validate() error {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Version, validation.Required, validation.Match(supportedVersion).Error("unsupported export version")),
		validation.Field(&d.ExportedAt, validation.Required),
	)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			fields[field] = ferr.Error()
		}
	}
	return models.ErrorValidation{Message: "invalid export document: " + err.Error(), Fields: fields}
}

// Decode parses and validates a document. Nothing is written on failure.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, models.ErrorValidation{Message: fmt.Sprintf("invalid JSON document: %v", err)}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Counts returns the number of records per entity in the document.
func (d *Document) Counts() Counts {
	return Counts{
		Users:        len(d.Users),
		Hubs:         len(d.Hubs),
		Actors:       len(d.Actors),
		Appointments: len(d.Appointments),
		Contacts:     len(d.Contacts),
		Categories:   len(d.Categories),
		Tags:         len(d.Tags),
		BlogPosts:    len(d.BlogPosts),
		Settings:     len(d.Settings),
	}
}

type Counts struct {
	Users        int `json:"users"`
	Hubs         int `json:"hubs"`
	Actors       int `json:"actors"`
	Appointments int `json:"appointments"`
	Contacts     int `json:"contacts"`
	Categories   int `json:"categories"`
	Tags         int `json:"tags"`
	BlogPosts    int `json:"blogPosts"`
	Settings     int `json:"settings"`
}
