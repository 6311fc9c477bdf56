package config

import (
	"fmt"

	"iniva-cms/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == "sqlite" {
		return d.Name
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func InitDB(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// A single connection keeps ":memory:" databases alive and serialises writers.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table. Join tables are registered first so
// the many-to-many relations use the explicit join models.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.BlogPost{}, "Categories", &models.BlogPostCategory{}); err != nil {
		return fmt.Errorf("setup blog_post_categories: %w", err)
	}
	if err := db.SetupJoinTable(&models.BlogPost{}, "Tags", &models.BlogPostTag{}); err != nil {
		return fmt.Errorf("setup blog_post_tags: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Hub{},
		&models.Actor{},
		&models.Appointment{},
		&models.Contact{},
		&models.Category{},
		&models.Tag{},
		&models.BlogPost{},
		&models.BlogPostCategory{},
		&models.BlogPostTag{},
		&models.Setting{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
