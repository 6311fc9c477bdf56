package services

import (
	"errors"

	"iniva-cms/models"

	"gorm.io/gorm"
)

// classify converts a repository error into one of the typed model errors.
func classify(err error, entity string) error {
	if err == nil {
		return nil
	}

	var (
		notFound   models.ErrorNotFound
		conflict   models.ErrorConflict
		validation models.ErrorValidation
		reference  models.ErrorReference
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &conflict),
		errors.As(err, &validation), errors.As(err, &reference):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrorConflict{Message: entity + " already exists"}
	}
	return models.Internal("failed to access "+entity, err)
}

func invalid(message string, field string) error {
	return models.ErrorValidation{Message: message, Fields: map[string]string{field: message}}
}
