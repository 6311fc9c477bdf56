package repositories

import (
	"iniva-cms/models"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	GetAll() ([]models.Appointment, error)
	Update(appointment *models.Appointment) error
	SetStatus(id string, status models.AppointmentStatus) error
	Delete(id string) error
	Count() (int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) withHub() *gorm.DB {
	return r.db.Preload("Hub", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "location", "active")
	})
}

func (r *appointmentRepository) Create(appointment *models.Appointment) error {
	return r.db.Omit("Hub").Create(appointment).Error
}

func (r *appointmentRepository) GetByID(id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.withHub().First(&appointment, "id = ?", id).Error
	return &appointment, err
}

func (r *appointmentRepository) GetAll() ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.withHub().Order("date desc").Order("created_at desc").Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) Update(appointment *models.Appointment) error {
	return r.db.Omit("Hub").Save(appointment).Error
}

func (r *appointmentRepository) SetStatus(id string, status models.AppointmentStatus) error {
	res := r.db.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *appointmentRepository) Delete(id string) error {
	res := r.db.Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *appointmentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).Count(&count).Error
	return count, err
}
