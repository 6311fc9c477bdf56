package handlers

import (
	"iniva-cms/helper"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	Helper          *helper.HTTPHelper
}

func NewCategoryHandler(categoryService services.CategoryService, h *helper.HTTPHelper) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, Helper: h}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Category created successfully", category)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategory(c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Category updated successfully", category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Param("id")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Category deleted successfully", h.Helper.EmptyJsonMap())
}
