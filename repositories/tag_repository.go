package repositories

import (
	"iniva-cms/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *models.Tag) error
	GetByName(name string) (*models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	GetByID(id string) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
	Update(tag *models.Tag) error
	Delete(id string) error
	CountPosts(tagIDs []string) (map[string]int64, error)
	ExistingIDs(ids []string) ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("slug = ?", slug).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetByID(id string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	return &tag, err
}

func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

func (r *tagRepository) Delete(id string) error {
	res := r.db.Delete(&models.Tag{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tagRepository) CountPosts(tagIDs []string) (map[string]int64, error) {
	return countBy(r.db, "blog_post_tags", "tag_id", tagIDs)
}

func (r *tagRepository) ExistingIDs(ids []string) ([]string, error) {
	return existingIDs(r.db, "tags", ids)
}
