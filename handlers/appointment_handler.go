package handlers

import (
	"iniva-cms/helper"
	"iniva-cms/models"
	"iniva-cms/services"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService services.AppointmentService
	Helper             *helper.HTTPHelper
}

func NewAppointmentHandler(appointmentService services.AppointmentService, h *helper.HTTPHelper) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService, Helper: h}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req models.AppointmentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Appointment created successfully", appointment)
}

// BookAppointment handles bookings from the public site.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req models.PublicAppointmentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.BookAppointment(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Appointment requested successfully", appointment)
}

func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	appointments, err := h.appointmentService.GetAppointments()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", appointments)
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	appointment, err := h.appointmentService.GetAppointment(c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req models.AppointmentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) PatchAppointment(c *gin.Context) {
	var req models.AppointmentStatusRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.SetAppointmentStatus(c.Param("id"), req.Status)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	if err := h.appointmentService.DeleteAppointment(c.Param("id")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Appointment deleted successfully", h.Helper.EmptyJsonMap())
}
