package services

import (
	"errors"
	"strings"
	"time"

	"iniva-cms/models"
	"iniva-cms/repositories"

	"gorm.io/gorm"
)

var appointmentDateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

type AppointmentService interface {
	CreateAppointment(req models.AppointmentRequest) (*models.Appointment, error)
	BookAppointment(req models.PublicAppointmentRequest) (*models.Appointment, error)
	GetAppointments() ([]models.Appointment, error)
	GetAppointment(id string) (*models.Appointment, error)
	UpdateAppointment(id string, req models.AppointmentRequest) (*models.Appointment, error)
	SetAppointmentStatus(id string, status models.AppointmentStatus) (*models.Appointment, error)
	DeleteAppointment(id string) error
}

type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	hubRepo         repositories.HubRepository
	renderer        *ContentRenderer
}

func NewAppointmentService(appointmentRepo repositories.AppointmentRepository, hubRepo repositories.HubRepository, renderer *ContentRenderer) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		hubRepo:         hubRepo,
		renderer:        renderer,
	}
}

func ParseAppointmentDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range appointmentDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid("date must be YYYY-MM-DD or an ISO-8601 timestamp", "date")
}

// CreateAppointment is the back office variant: the hub must exist but may be inactive.
func (s *appointmentService) CreateAppointment(req models.AppointmentRequest) (*models.Appointment, error) {
	date, err := validateAppointmentRequest(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireHub(req.HubID, false); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{Status: models.AppointmentPending}
	applyAppointmentRequest(appointment, req, date)

	if err := s.appointmentRepo.Create(appointment); err != nil {
		return nil, classify(err, "appointment")
	}
	return s.GetAppointment(appointment.ID)
}

// BookAppointment is the public booking flow. Only active hubs accept
// bookings and every request starts as PENDING.
func (s *appointmentService) BookAppointment(req models.PublicAppointmentRequest) (*models.Appointment, error) {
	date, err := ParseAppointmentDate(req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireHub(req.HubID, true); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		Name:         s.renderer.PlainText(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        s.renderer.PlainText(req.Phone),
		Organization: s.renderer.PlainText(req.Organization),
		Purpose:      s.renderer.PlainText(req.Purpose),
		Date:         date,
		Time:         strings.TrimSpace(req.Time),
		Duration:     strings.TrimSpace(req.Duration),
		Status:       models.AppointmentPending,
		HubID:        req.HubID,
	}

	if err := s.appointmentRepo.Create(appointment); err != nil {
		return nil, classify(err, "appointment")
	}
	return appointment, nil
}

func (s *appointmentService) GetAppointments() ([]models.Appointment, error) {
	appointments, err := s.appointmentRepo.GetAll()
	if err != nil {
		return nil, classify(err, "appointment")
	}
	return appointments, nil
}

func (s *appointmentService) GetAppointment(id string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "appointment")
	}
	return appointment, nil
}

func (s *appointmentService) UpdateAppointment(id string, req models.AppointmentRequest) (*models.Appointment, error) {
	date, err := validateAppointmentRequest(req)
	if err != nil {
		return nil, err
	}

	appointment, err := s.appointmentRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "appointment")
	}

	if _, err := s.requireHub(req.HubID, false); err != nil {
		return nil, err
	}

	applyAppointmentRequest(appointment, req, date)
	appointment.Hub = nil

	if err := s.appointmentRepo.Update(appointment); err != nil {
		return nil, classify(err, "appointment")
	}
	return s.GetAppointment(id)
}

func (s *appointmentService) SetAppointmentStatus(id string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, invalid("invalid appointment status", "status")
	}
	if err := s.appointmentRepo.SetStatus(id, status); err != nil {
		return nil, classify(err, "appointment")
	}
	return s.GetAppointment(id)
}

func (s *appointmentService) DeleteAppointment(id string) error {
	return classify(s.appointmentRepo.Delete(id), "appointment")
}

func (s *appointmentService) requireHub(id string, mustBeActive bool) (*models.Hub, error) {
	hub, err := s.hubRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorReference{Message: "hub not found"}
		}
		return nil, classify(err, "hub")
	}
	if mustBeActive && !hub.Active {
		return nil, models.ErrorReference{Message: "hub is not available for appointments"}
	}
	return hub, nil
}

// validateAppointmentRequest checks the fields that need no store access and
// returns the parsed date.
func validateAppointmentRequest(req models.AppointmentRequest) (time.Time, error) {
	date, err := ParseAppointmentDate(req.Date)
	if err != nil {
		return time.Time{}, err
	}
	if req.Status != "" && !req.Status.Valid() {
		return time.Time{}, invalid("invalid appointment status", "status")
	}
	return date, nil
}

func applyAppointmentRequest(appointment *models.Appointment, req models.AppointmentRequest, date time.Time) {
	if req.Status != "" {
		appointment.Status = req.Status
	}

	appointment.Name = req.Name
	appointment.Email = strings.TrimSpace(req.Email)
	appointment.Phone = req.Phone
	appointment.Organization = req.Organization
	appointment.Purpose = req.Purpose
	appointment.Date = date
	appointment.Time = req.Time
	appointment.Duration = req.Duration
	appointment.Notes = req.Notes
	appointment.HubID = req.HubID
}
