package handlers

import (
	"fmt"
	"time"

	"iniva-cms/cache"
	"iniva-cms/helper"
	"iniva-cms/middleware"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

type BlogPostHandler struct {
	postService services.BlogPostService
	cache       cache.Cache
	cacheTTL    time.Duration
	Helper      *helper.HTTPHelper
}

func NewBlogPostHandler(postService services.BlogPostService, c cache.Cache, ttl time.Duration, h *helper.HTTPHelper) *BlogPostHandler {
	return &BlogPostHandler{postService: postService, cache: c, cacheTTL: ttl, Helper: h}
}

func (h *BlogPostHandler) bindListParams(c *gin.Context) (models.BlogListParams, bool) {
	var params models.BlogListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters", map[string]interface{}{"error": err.Error()})
		return params, false
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}
	return params, true
}

func (h *BlogPostHandler) CreatePost(c *gin.Context) {
	var req models.BlogPostRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.CreatePost(req, middleware.CurrentUserID(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Blog post created successfully", post)
}

func (h *BlogPostHandler) GetPosts(c *gin.Context) {
	params, ok := h.bindListParams(c)
	if !ok {
		return
	}

	result, err := h.postService.GetPosts(params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"posts":      result.Posts,
		"total":      result.Total,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, int(result.Total)),
	})
}

// GetPublicPosts lists published posts for the public site.
func (h *BlogPostHandler) GetPublicPosts(c *gin.Context) {
	params, ok := h.bindListParams(c)
	if !ok {
		return
	}

	// Every filter the public query honours must be part of the key.
	key := fmt.Sprintf("%sblog:%d:%d:%s:%s:%s", cache.PublicPrefix, params.Page, params.Limit, params.AuthorID, params.CategoryID, params.TagID)
	result, err := cache.GetOrSet(c.Request.Context(), h.cache, key, h.cacheTTL, func() (*models.BlogListResponse, error) {
		return h.postService.GetPublicPosts(params)
	})
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", result)
}

func (h *BlogPostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", post)
}

func (h *BlogPostHandler) GetPublicPost(c *gin.Context) {
	slug := c.Param("slug")
	post, err := cache.GetOrSet(c.Request.Context(), h.cache, cache.PublicPrefix+"blog:slug:"+slug, h.cacheTTL, func() (*models.BlogPostView, error) {
		return h.postService.GetPublicPost(slug)
	})
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", post)
}

func (h *BlogPostHandler) UpdatePost(c *gin.Context) {
	var req models.BlogPostRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.UpdatePost(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Blog post updated successfully", post)
}

func (h *BlogPostHandler) PatchPost(c *gin.Context) {
	var req models.PostStatusRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.SetPostStatus(c.Param("id"), req.Status)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Blog post updated successfully", post)
}

func (h *BlogPostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.DeletePost(c.Param("id")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Blog post deleted successfully", h.Helper.EmptyJsonMap())
}
