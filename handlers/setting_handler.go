package handlers

import (
	"iniva-cms/helper"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	settingService services.SettingService
	Helper         *helper.HTTPHelper
}

func NewSettingHandler(settingService services.SettingService, h *helper.HTTPHelper) *SettingHandler {
	return &SettingHandler{settingService: settingService, Helper: h}
}

func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingService.GetSettings()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", settings)
}

func (h *SettingHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingService.GetSetting(c.Param("key"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", setting)
}

func (h *SettingHandler) PutSetting(c *gin.Context) {
	var req models.SettingRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	setting, err := h.settingService.PutSetting(c.Param("key"), req.Value)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Setting saved successfully", setting)
}

func (h *SettingHandler) DeleteSetting(c *gin.Context) {
	if err := h.settingService.DeleteSetting(c.Param("key")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Setting deleted successfully", h.Helper.EmptyJsonMap())
}
