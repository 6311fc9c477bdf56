package services

import (
	"errors"

	"iniva-cms/models"
	"iniva-cms/repositories"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var defaultCategories = []models.Category{
	{Name: "Inovação", Slug: "inovacao", Description: "Posts sobre inovação e tecnologia", Color: "#3B82F6"},
	{Name: "Startups", Slug: "startups", Description: "Conteúdo sobre startups e empreendedorismo", Color: "#10B981"},
	{Name: "Eventos", Slug: "eventos", Description: "Eventos e atividades do ecossistema", Color: "#F59E0B"},
	{Name: "Educação", Slug: "educacao", Description: "Educação e capacitação", Color: "#8B5CF6"},
}

var defaultTags = []models.Tag{
	{Name: "Tecnologia", Slug: "tecnologia", Color: "#3B82F6"},
	{Name: "IA", Slug: "ia", Color: "#6366F1"},
	{Name: "Sustentabilidade", Slug: "sustentabilidade", Color: "#10B981"},
	{Name: "Networking", Slug: "networking", Color: "#F59E0B"},
}

type SeedService interface {
	// EnsureSuperAdmin creates the super admin account unless one exists.
	// It reports whether a user was created.
	EnsureSuperAdmin(email, password, name string) (bool, error)
	// SeedDefaults inserts the default categories and tags missing by slug.
	SeedDefaults() (int, error)
}

type seedService struct {
	userRepo     repositories.UserRepository
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
}

func NewSeedService(userRepo repositories.UserRepository, categoryRepo repositories.CategoryRepository, tagRepo repositories.TagRepository) SeedService {
	return &seedService{userRepo: userRepo, categoryRepo: categoryRepo, tagRepo: tagRepo}
}

func (s *seedService) EnsureSuperAdmin(email, password, name string) (bool, error) {
	count, err := s.userRepo.CountByRole(models.RoleSuperAdmin)
	if err != nil {
		return false, classify(err, "user")
	}
	if count > 0 {
		return false, nil
	}

	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, invalid("ADMIN_EMAIL and ADMIN_PASSWORD are required to create the super admin", "email")
	}
	if name == "" {
		name = "Super Administrador"
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return false, models.Internal("failed to hash password", err)
	}

	user := &models.User{
		Email:    email,
		Name:     name,
		Password: hashed,
		Role:     models.RoleSuperAdmin,
		Active:   true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return false, classify(err, "user")
	}

	log.Info().Str("email", email).Msg("super admin created")
	return true, nil
}

func (s *seedService) SeedDefaults() (int, error) {
	created := 0

	for _, c := range defaultCategories {
		_, err := s.categoryRepo.GetBySlug(c.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, classify(err, "category")
		}
		category := c
		if err := s.categoryRepo.Create(&category); err != nil {
			return created, classify(err, "category")
		}
		created++
	}

	for _, t := range defaultTags {
		_, err := s.tagRepo.GetBySlug(t.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, classify(err, "tag")
		}
		tag := t
		if err := s.tagRepo.Create(&tag); err != nil {
			return created, classify(err, "tag")
		}
		created++
	}

	return created, nil
}
