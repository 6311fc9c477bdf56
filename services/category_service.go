package services

import (
	"errors"
	"fmt"

	"iniva-cms/models"
	"iniva-cms/repositories"

	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(req models.CategoryRequest) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategory(id string) (*models.Category, error)
	UpdateCategory(id string, req models.CategoryRequest) (*models.Category, error)
	DeleteCategory(id string) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(req models.CategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Slug:        resolveSlug(req.Slug, req.Name),
		Description: req.Description,
		Color:       req.Color,
	}
	if err := s.checkUnique(category); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, classify(err, "category")
	}
	category.Count = &models.TermCount{}
	return category, nil
}

func (s *categoryService) GetCategories() ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, classify(err, "category")
	}

	ids := make([]string, len(categories))
	for i := range categories {
		ids[i] = categories[i].ID
	}
	counts, err := s.categoryRepo.CountPosts(ids)
	if err != nil {
		return nil, classify(err, "category")
	}
	for i := range categories {
		categories[i].Count = &models.TermCount{BlogPosts: counts[categories[i].ID]}
	}
	return categories, nil
}

func (s *categoryService) GetCategory(id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "category")
	}

	counts, err := s.categoryRepo.CountPosts([]string{id})
	if err != nil {
		return nil, classify(err, "category")
	}
	category.Count = &models.TermCount{BlogPosts: counts[id]}
	return category, nil
}

func (s *categoryService) UpdateCategory(id string, req models.CategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "category")
	}

	category.Name = req.Name
	category.Slug = resolveSlug(req.Slug, req.Name)
	category.Description = req.Description
	category.Color = req.Color
	if err := s.checkUnique(category); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, classify(err, "category")
	}
	return s.GetCategory(id)
}

// DeleteCategory refuses to remove a category still attached to posts.
func (s *categoryService) DeleteCategory(id string) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return classify(err, "category")
	}

	counts, err := s.categoryRepo.CountPosts([]string{id})
	if err != nil {
		return classify(err, "category")
	}
	if n := counts[id]; n > 0 {
		return models.ErrorConflict{Message: fmt.Sprintf("category is used by %d blog post(s)", n)}
	}

	return classify(s.categoryRepo.Delete(id), "category")
}

func (s *categoryService) checkUnique(category *models.Category) error {
	if category.Slug == "" {
		return invalid("slug cannot be empty", "slug")
	}

	existing, err := s.categoryRepo.GetBySlug(category.Slug)
	if err == nil && existing.ID != category.ID {
		return models.ErrorConflict{Message: "a category with this slug already exists"}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return classify(err, "category")
	}

	existing, err = s.categoryRepo.GetByName(category.Name)
	if err == nil && existing.ID != category.ID {
		return models.ErrorConflict{Message: "a category with this name already exists"}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return classify(err, "category")
	}
	return nil
}
