package handlers

import (
	"errors"
	"net/http"
	"os"

	"iniva-cms/helper"
	"iniva-cms/services"
	"iniva-cms/storage"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService services.UploadService
	files         *storage.LocalStorage
	maxBytes      int64
	Helper        *helper.HTTPHelper
}

// NewUploadHandler builds the upload endpoints. files may be nil when uploads
// are kept in object storage and served from there.
func NewUploadHandler(uploadService services.UploadService, files *storage.LocalStorage, maxBytes int64, h *helper.HTTPHelper) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, files: files, maxBytes: maxBytes, Helper: h}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Helper.SendBadRequest(c, "file is too large", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, "no file uploaded", h.Helper.EmptyJsonMap())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Helper.SendBadRequest(c, "file could not be read", h.Helper.EmptyJsonMap())
		return
	}
	defer file.Close()

	resp, err := h.uploadService.UploadImage(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "File uploaded successfully", resp)
}

// ServeUpload streams a previously uploaded file from the local directory.
func (h *UploadHandler) ServeUpload(c *gin.Context) {
	if h.files == nil {
		h.Helper.SendNotFoundError(c, "file not found", h.Helper.EmptyJsonMap())
		return
	}

	name := c.Param("filename")
	path, err := h.files.Path(name)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid file name", h.Helper.EmptyJsonMap())
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		h.Helper.SendNotFoundError(c, "file not found", h.Helper.EmptyJsonMap())
		return
	}

	c.Header("Content-Type", storage.ContentType(name))
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("Content-Security-Policy", "default-src 'none'")
	c.Header("X-Content-Type-Options", "nosniff")
	c.File(path)
}
