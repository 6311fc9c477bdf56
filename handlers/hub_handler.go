package handlers

import (
	"time"

	"iniva-cms/cache"
	"iniva-cms/helper"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

type HubHandler struct {
	hubService services.HubService
	cache      cache.Cache
	cacheTTL   time.Duration
	Helper     *helper.HTTPHelper
}

func NewHubHandler(hubService services.HubService, c cache.Cache, ttl time.Duration, h *helper.HTTPHelper) *HubHandler {
	return &HubHandler{hubService: hubService, cache: c, cacheTTL: ttl, Helper: h}
}

func (h *HubHandler) CreateHub(c *gin.Context) {
	var req models.HubRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	hub, err := h.hubService.CreateHub(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Hub created successfully", hub)
}

func (h *HubHandler) GetHubs(c *gin.Context) {
	hubs, err := h.hubService.GetHubs()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", hubs)
}

func (h *HubHandler) GetPublicHubs(c *gin.Context) {
	hubs, err := cache.GetOrSet(c.Request.Context(), h.cache, cache.PublicPrefix+"hubs", h.cacheTTL, h.hubService.GetPublicHubs)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", hubs)
}

func (h *HubHandler) GetHub(c *gin.Context) {
	hub, err := h.hubService.GetHub(c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", hub)
}

func (h *HubHandler) UpdateHub(c *gin.Context) {
	var req models.HubRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	hub, err := h.hubService.UpdateHub(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Hub updated successfully", hub)
}

func (h *HubHandler) PatchHub(c *gin.Context) {
	var req models.ActiveRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	hub, err := h.hubService.SetHubActive(c.Param("id"), *req.Active)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Hub updated successfully", hub)
}

func (h *HubHandler) DeleteHub(c *gin.Context) {
	if err := h.hubService.DeleteHub(c.Param("id")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Hub deleted successfully", h.Helper.EmptyJsonMap())
}
