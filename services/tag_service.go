package services

import (
	"errors"
	"fmt"

	"iniva-cms/models"
	"iniva-cms/repositories"

	"gorm.io/gorm"
)

type TagService interface {
	CreateTag(req models.TagRequest) (*models.Tag, error)
	GetTags() ([]models.Tag, error)
	GetTag(id string) (*models.Tag, error)
	UpdateTag(id string, req models.TagRequest) (*models.Tag, error)
	DeleteTag(id string) error
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) CreateTag(req models.TagRequest) (*models.Tag, error) {
	tag := &models.Tag{
		Name:  req.Name,
		Slug:  resolveSlug(req.Slug, req.Name),
		Color: req.Color,
	}
	if err := s.checkUnique(tag); err != nil {
		return nil, err
	}

	if err := s.tagRepo.Create(tag); err != nil {
		return nil, classify(err, "tag")
	}
	tag.Count = &models.TermCount{}
	return tag, nil
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	tags, err := s.tagRepo.GetAll()
	if err != nil {
		return nil, classify(err, "tag")
	}

	ids := make([]string, len(tags))
	for i := range tags {
		ids[i] = tags[i].ID
	}
	counts, err := s.tagRepo.CountPosts(ids)
	if err != nil {
		return nil, classify(err, "tag")
	}
	for i := range tags {
		tags[i].Count = &models.TermCount{BlogPosts: counts[tags[i].ID]}
	}
	return tags, nil
}

func (s *tagService) GetTag(id string) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "tag")
	}

	counts, err := s.tagRepo.CountPosts([]string{id})
	if err != nil {
		return nil, classify(err, "tag")
	}
	tag.Count = &models.TermCount{BlogPosts: counts[id]}
	return tag, nil
}

func (s *tagService) UpdateTag(id string, req models.TagRequest) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "tag")
	}

	tag.Name = req.Name
	tag.Slug = resolveSlug(req.Slug, req.Name)
	tag.Color = req.Color
	if err := s.checkUnique(tag); err != nil {
		return nil, err
	}

	if err := s.tagRepo.Update(tag); err != nil {
		return nil, classify(err, "tag")
	}
	return s.GetTag(id)
}

// DeleteTag refuses to remove a tag still attached to posts, leaving the tag
// and its links untouched.
func (s *tagService) DeleteTag(id string) error {
	if _, err := s.tagRepo.GetByID(id); err != nil {
		return classify(err, "tag")
	}

	counts, err := s.tagRepo.CountPosts([]string{id})
	if err != nil {
		return classify(err, "tag")
	}
	if n := counts[id]; n > 0 {
		return models.ErrorConflict{Message: fmt.Sprintf("tag is used by %d blog post(s)", n)}
	}

	return classify(s.tagRepo.Delete(id), "tag")
}

func (s *tagService) checkUnique(tag *models.Tag) error {
	if tag.Slug == "" {
		return invalid("slug cannot be empty", "slug")
	}

	existing, err := s.tagRepo.GetBySlug(tag.Slug)
	if err == nil && existing.ID != tag.ID {
		return models.ErrorConflict{Message: "a tag with this slug already exists"}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return classify(err, "tag")
	}

	existing, err = s.tagRepo.GetByName(tag.Name)
	if err == nil && existing.ID != tag.ID {
		return models.ErrorConflict{Message: "a tag with this name already exists"}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return classify(err, "tag")
	}
	return nil
}
