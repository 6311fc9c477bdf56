package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	valid := []string{"logo.png", "1718000000-abc123.webp", "a"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", ".", "..", "../secret", "dir/file.png", `dir\file.png`, "/etc/passwd", "a..b"}
	for _, name := range invalid {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.JPG", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"logo.png", "image/png"},
		{"anim.gif", "image/gif"},
		{"hero.webp", "image/webp"},
		{"icon.svg", "image/svg+xml"},
		{"notes.txt", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContentType(tt.name), tt.name)
	}
}

func TestLocalStorageLifecycle(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "uploads")

	store, err := NewLocalStorage(dir, "/api/uploads/")
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	url, err := store.Save(ctx, "logo.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/api/uploads/logo.png", url)

	path, err := store.Path("logo.png")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = store.Save(ctx, "logo.png", strings.NewReader("again"), 5, "image/png")
	assert.Error(t, err, "existing files are never overwritten")

	_, err = store.Save(ctx, "../escape.png", strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, ErrInvalidName)

	require.NoError(t, store.Delete(ctx, "logo.png"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Delete(ctx, "logo.png"), "deleting a missing file is not an error")
}
