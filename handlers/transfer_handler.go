package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"iniva-cms/helper"
	"iniva-cms/middleware"
	"iniva-cms/models"
	"iniva-cms/transfer"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const exportFilename = "data-export.json"

type TransferHandler struct {
	exporter *transfer.Exporter
	importer *transfer.Importer
	maxBytes int64
	Helper   *helper.HTTPHelper
}

func NewTransferHandler(exporter *transfer.Exporter, importer *transfer.Importer, maxBytes int64, h *helper.HTTPHelper) *TransferHandler {
	return &TransferHandler{exporter: exporter, importer: importer, maxBytes: maxBytes, Helper: h}
}

// Export sends a snapshot of every table as a JSON attachment.
func (h *TransferHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	doc, err := h.exporter.ExportToWriter(c.Request.Context(), &buf)
	if err != nil {
		h.Helper.SendServiceError(c, models.Internal("export failed", err))
		return
	}

	log.Info().
		Interface("counts", doc.Counts()).
		Str("user_id", middleware.CurrentUserID(c)).
		Msg("data exported")

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

// Import replaces all content with the uploaded export file. The calling
// user keeps their account.
func (h *TransferHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+(1<<20))

	fileHeader, err := c.FormFile("dataFile")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Helper.SendBadRequest(c, "file is too large", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, "file not provided", h.Helper.EmptyJsonMap())
		return
	}
	if fileHeader.Size > h.maxBytes {
		h.Helper.SendBadRequest(c, "file is too large", h.Helper.EmptyJsonMap())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Helper.SendBadRequest(c, "file could not be read", h.Helper.EmptyJsonMap())
		return
	}
	defer file.Close()

	doc, err := transfer.Decode(io.LimitReader(file, h.maxBytes))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	summary, err := h.importer.Import(c.Request.Context(), doc, middleware.CurrentUserID(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Data imported successfully", map[string]interface{}{
		"success": true,
		"message": "Data imported successfully",
		"summary": summary,
	})
}
