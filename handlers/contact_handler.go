package handlers

import (
	"iniva-cms/helper"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService services.ContactService
	Helper         *helper.HTTPHelper
}

func NewContactHandler(contactService services.ContactService, h *helper.HTTPHelper) *ContactHandler {
	return &ContactHandler{contactService: contactService, Helper: h}
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req models.ContactRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.CreateContact(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Contact created successfully", contact)
}

func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.SubmitContact(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Message sent successfully", contact)
}

func (h *ContactHandler) GetContacts(c *gin.Context) {
	contacts, err := h.contactService.GetContacts()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", contacts)
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, err := h.contactService.GetContact(c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", contact)
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	var req models.ContactRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.UpdateContact(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Contact updated successfully", contact)
}

func (h *ContactHandler) PatchContact(c *gin.Context) {
	var req models.ContactPatchRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.PatchContact(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Contact updated successfully", contact)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.contactService.DeleteContact(c.Param("id")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Contact deleted successfully", h.Helper.EmptyJsonMap())
}
