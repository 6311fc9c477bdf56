package handlers

import (
	"iniva-cms/helper"
	"iniva-cms/middleware"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Login success", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.CurrentUserID(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	if req.Role == models.RoleSuperAdmin && middleware.CurrentRole(c) != models.RoleSuperAdmin {
		h.Helper.SendForbiddenError(c, "Only a super admin can create super admins", h.Helper.EmptyJsonMap())
		return
	}

	user, err := h.authService.CreateUser(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "User created successfully", user)
}

func (h *AuthHandler) GetUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}
