package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// Storage persists uploaded files and returns the URL they are served from.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
}

var ErrInvalidName = errors.New("invalid file name")

// ValidateName rejects names that could escape the upload directory.
func ValidateName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return ErrInvalidName
	}
	return nil
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// ContentType maps an image file name to its MIME type by extension.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
