package repositories

import (
	"iniva-cms/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(contact *models.Contact) error
	GetByID(id string) (*models.Contact, error)
	GetAll() ([]models.Contact, error)
	Update(contact *models.Contact) error
	Patch(id string, fields map[string]interface{}) error
	Delete(id string) error
	Count() (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

func (r *contactRepository) GetByID(id string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	return &contact, err
}

func (r *contactRepository) GetAll() ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.Order("created_at desc").Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}

func (r *contactRepository) Patch(id string, fields map[string]interface{}) error {
	res := r.db.Model(&models.Contact{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepository) Delete(id string) error {
	res := r.db.Delete(&models.Contact{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Contact{}).Count(&count).Error
	return count, err
}
