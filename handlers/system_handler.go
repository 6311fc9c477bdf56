package handlers

import (
	"time"

	"iniva-cms/helper"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	statsService services.StatsService
	Helper       *helper.HTTPHelper
}

func NewSystemHandler(statsService services.StatsService, h *helper.HTTPHelper) *SystemHandler {
	return &SystemHandler{statsService: statsService, Helper: h}
}

func (h *SystemHandler) Health(c *gin.Context) {
	h.Helper.SendSuccess(c, "Success", models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

func (h *SystemHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", stats)
}
