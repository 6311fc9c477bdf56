package handlers

import (
	"iniva-cms/helper"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, h *helper.HTTPHelper) *TagHandler {
	return &TagHandler{tagService: tagService, Helper: h}
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.TagRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.CreateTag(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Tag created successfully", tag)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	tag, err := h.tagService.GetTag(c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	var req models.TagRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.UpdateTag(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tag updated successfully", tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	if err := h.tagService.DeleteTag(c.Param("id")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tag deleted successfully", h.Helper.EmptyJsonMap())
}
