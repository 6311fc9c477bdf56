package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"iniva-cms/models"
	"iniva-cms/storage"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type UploadService interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error)
}

type uploadService struct {
	store    storage.Storage
	maxBytes int64
	now      func() time.Time
}

func NewUploadService(store storage.Storage, maxBytes int64) UploadService {
	return &uploadService{store: store, maxBytes: maxBytes, now: time.Now}
}

// UploadImage stores sniffed image content under a generated name.
func (s *uploadService) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, models.Internal("failed to read upload", err)
	}
	if len(data) == 0 {
		return nil, invalid("file is empty", "file")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, invalid(fmt.Sprintf("file exceeds the %s limit", humanize.IBytes(uint64(s.maxBytes))), "file")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, invalid("only image files are allowed", "file")
	}
	if mtype.Is("image/svg+xml") {
		return nil, invalid("SVG images are not allowed", "file")
	}

	ext := mtype.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.New().String()[:8], ext)
	url, err := s.store.Save(ctx, name, bytes.NewReader(data), int64(len(data)), mtype.String())
	if err != nil {
		return nil, models.Internal("failed to store upload", err)
	}

	resp := &models.UploadResponse{ImageURL: url}
	// Vector and icon formats are not decodable; dimensions stay unset.
	if img, err := imaging.Decode(bytes.NewReader(data)); err == nil {
		resp.Width = img.Bounds().Dx()
		resp.Height = img.Bounds().Dy()
	}
	return resp, nil
}
