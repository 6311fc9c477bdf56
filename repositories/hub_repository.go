package repositories

import (
	"iniva-cms/models"

	"gorm.io/gorm"
)

type HubRepository interface {
	Create(hub *models.Hub) error
	GetByID(id string) (*models.Hub, error)
	GetAll(activeOnly bool) ([]models.Hub, error)
	Update(hub *models.Hub) error
	SetActive(id string, active bool) error
	Delete(id string) error
	CountAppointments(hubIDs []string) (map[string]int64, error)
	Count() (int64, error)
}

type hubRepository struct {
	db *gorm.DB
}

func NewHubRepository(db *gorm.DB) HubRepository {
	return &hubRepository{db: db}
}

func (r *hubRepository) Create(hub *models.Hub) error {
	return r.db.Create(hub).Error
}

func (r *hubRepository) GetByID(id string) (*models.Hub, error) {
	var hub models.Hub
	err := r.db.First(&hub, "id = ?", id).Error
	return &hub, err
}

// GetAll lists hubs newest first for the back office, or active hubs by name
// for the public site.
func (r *hubRepository) GetAll(activeOnly bool) ([]models.Hub, error) {
	var hubs []models.Hub
	query := r.db.Model(&models.Hub{})
	if activeOnly {
		query = query.Where("active = ?", true).Order("name asc")
	} else {
		query = query.Order("created_at desc")
	}
	err := query.Find(&hubs).Error
	return hubs, err
}

func (r *hubRepository) Update(hub *models.Hub) error {
	return r.db.Save(hub).Error
}

func (r *hubRepository) SetActive(id string, active bool) error {
	res := r.db.Model(&models.Hub{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the hub together with its appointments.
func (r *hubRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hub_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Hub{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *hubRepository) CountAppointments(hubIDs []string) (map[string]int64, error) {
	return countBy(r.db, "appointments", "hub_id", hubIDs)
}

func (r *hubRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Hub{}).Count(&count).Error
	return count, err
}
