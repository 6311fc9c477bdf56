package repositories

import (
	"iniva-cms/models"

	"gorm.io/gorm"
)

type ActorRepository interface {
	Create(actor *models.Actor) error
	GetByID(id string) (*models.Actor, error)
	GetAll(activeOnly bool) ([]models.Actor, error)
	Update(actor *models.Actor) error
	SetActive(id string, active bool) error
	Delete(id string) error
}

type actorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) ActorRepository {
	return &actorRepository{db: db}
}

func (r *actorRepository) Create(actor *models.Actor) error {
	return r.db.Create(actor).Error
}

func (r *actorRepository) GetByID(id string) (*models.Actor, error) {
	var actor models.Actor
	err := r.db.First(&actor, "id = ?", id).Error
	return &actor, err
}

func (r *actorRepository) GetAll(activeOnly bool) ([]models.Actor, error) {
	var actors []models.Actor
	query := r.db.Model(&models.Actor{})
	if activeOnly {
		query = query.Where("active = ?", true).Order("name asc")
	} else {
		query = query.Order("created_at desc")
	}
	err := query.Find(&actors).Error
	return actors, err
}

func (r *actorRepository) Update(actor *models.Actor) error {
	return r.db.Save(actor).Error
}

func (r *actorRepository) SetActive(id string, active bool) error {
	res := r.db.Model(&models.Actor{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *actorRepository) Delete(id string) error {
	res := r.db.Delete(&models.Actor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
