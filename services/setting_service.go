package services

import (
	"encoding/json"

	"iniva-cms/models"
	"iniva-cms/repositories"

	"gorm.io/datatypes"
)

type SettingService interface {
	GetSettings() ([]models.Setting, error)
	GetSetting(key string) (*models.Setting, error)
	PutSetting(key string, value json.RawMessage) (*models.Setting, error)
	DeleteSetting(key string) error
}

type settingService struct {
	settingRepo repositories.SettingRepository
}

func NewSettingService(settingRepo repositories.SettingRepository) SettingService {
	return &settingService{settingRepo: settingRepo}
}

func (s *settingService) GetSettings() ([]models.Setting, error) {
	settings, err := s.settingRepo.GetAll()
	if err != nil {
		return nil, classify(err, "setting")
	}
	return settings, nil
}

func (s *settingService) GetSetting(key string) (*models.Setting, error) {
	setting, err := s.settingRepo.GetByKey(key)
	if err != nil {
		return nil, classify(err, "setting")
	}
	return setting, nil
}

func (s *settingService) PutSetting(key string, value json.RawMessage) (*models.Setting, error) {
	if key == "" {
		return nil, invalid("key is required", "key")
	}
	if len(value) == 0 || !json.Valid(value) {
		return nil, invalid("value must be valid JSON", "value")
	}

	setting, err := s.settingRepo.Upsert(key, datatypes.JSON(value))
	if err != nil {
		return nil, classify(err, "setting")
	}
	return setting, nil
}

func (s *settingService) DeleteSetting(key string) error {
	return classify(s.settingRepo.Delete(key), "setting")
}
