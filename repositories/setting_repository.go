package repositories

import (
	"iniva-cms/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	GetAll() ([]models.Setting, error)
	GetByKey(key string) (*models.Setting, error)
	Upsert(key string, value datatypes.JSON) (*models.Setting, error)
	Delete(key string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll() ([]models.Setting, error) {
	var settings []models.Setting
	err := r.db.Order("key asc").Find(&settings).Error
	return settings, err
}

func (r *settingRepository) GetByKey(key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	return &setting, err
}

func (r *settingRepository) Upsert(key string, value datatypes.JSON) (*models.Setting, error) {
	setting := &models.Setting{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		return nil, err
	}
	return r.GetByKey(key)
}

func (r *settingRepository) Delete(key string) error {
	res := r.db.Where("key = ?", key).Delete(&models.Setting{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
