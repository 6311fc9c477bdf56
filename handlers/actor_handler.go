package handlers

import (
	"time"

	"iniva-cms/cache"
	"iniva-cms/helper"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

type ActorHandler struct {
	actorService services.ActorService
	cache        cache.Cache
	cacheTTL     time.Duration
	Helper       *helper.HTTPHelper
}

func NewActorHandler(actorService services.ActorService, c cache.Cache, ttl time.Duration, h *helper.HTTPHelper) *ActorHandler {
	return &ActorHandler{actorService: actorService, cache: c, cacheTTL: ttl, Helper: h}
}

func (h *ActorHandler) CreateActor(c *gin.Context) {
	var req models.ActorRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	actor, err := h.actorService.CreateActor(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Actor created successfully", actor)
}

func (h *ActorHandler) GetActors(c *gin.Context) {
	actors, err := h.actorService.GetActors()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", actors)
}

func (h *ActorHandler) GetPublicActors(c *gin.Context) {
	actors, err := cache.GetOrSet(c.Request.Context(), h.cache, cache.PublicPrefix+"actors", h.cacheTTL, h.actorService.GetPublicActors)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", actors)
}

func (h *ActorHandler) GetActor(c *gin.Context) {
	actor, err := h.actorService.GetActor(c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", actor)
}

func (h *ActorHandler) UpdateActor(c *gin.Context) {
	var req models.ActorRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	actor, err := h.actorService.UpdateActor(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Actor updated successfully", actor)
}

func (h *ActorHandler) PatchActor(c *gin.Context) {
	var req models.ActiveRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	actor, err := h.actorService.SetActorActive(c.Param("id"), *req.Active)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Actor updated successfully", actor)
}

func (h *ActorHandler) DeleteActor(c *gin.Context) {
	if err := h.actorService.DeleteActor(c.Param("id")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Actor deleted successfully", h.Helper.EmptyJsonMap())
}
