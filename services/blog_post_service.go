package services

import (
	"errors"
	"fmt"
	"time"

	"iniva-cms/models"
	"iniva-cms/repositories"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type BlogPostService interface {
	CreatePost(req models.BlogPostRequest, authorID string) (*models.BlogPostView, error)
	GetPosts(params models.BlogListParams) (*models.BlogListResponse, error)
	GetPublicPosts(params models.BlogListParams) (*models.BlogListResponse, error)
	GetPost(id string) (*models.BlogPostView, error)
	GetPublicPost(slug string) (*models.BlogPostView, error)
	UpdatePost(id string, req models.BlogPostRequest) (*models.BlogPostView, error)
	SetPostStatus(id string, status models.PostStatus) (*models.BlogPostView, error)
	DeletePost(id string) error
}

type blogPostService struct {
	postRepo     repositories.BlogPostRepository
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
	renderer     *ContentRenderer
	now          func() time.Time
}

func NewBlogPostService(postRepo repositories.BlogPostRepository, categoryRepo repositories.CategoryRepository, tagRepo repositories.TagRepository, renderer *ContentRenderer) BlogPostService {
	return &blogPostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		renderer:     renderer,
		now:          time.Now,
	}
}

func (s *blogPostService) CreatePost(req models.BlogPostRequest, authorID string) (*models.BlogPostView, error) {
	status, err := postStatusOrDraft(req.Status)
	if err != nil {
		return nil, err
	}

	post := &models.BlogPost{
		Title:       req.Title,
		Slug:        resolveSlug(req.Slug, req.Title),
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Image:       req.Image,
		Status:      status,
		PublishedAt: models.ResolvePublishedAt("", nil, status, s.now()),
		AuthorID:    authorID,
	}

	if err := s.checkSlug(post); err != nil {
		return nil, err
	}
	if err := s.checkReferences(req.CategoryIDs, req.TagIDs); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(post, req.CategoryIDs, req.TagIDs); err != nil {
		return nil, classify(err, "blog post")
	}
	return s.GetPost(post.ID)
}

func (s *blogPostService) GetPosts(params models.BlogListParams) (*models.BlogListResponse, error) {
	posts, total, err := s.postRepo.GetList(params, false)
	if err != nil {
		return nil, classify(err, "blog post")
	}

	views := make([]models.BlogPostView, len(posts))
	for i := range posts {
		views[i] = models.NewBlogPostView(posts[i])
	}
	return &models.BlogListResponse{Posts: views, Total: total}, nil
}

// GetPublicPosts lists published posts newest first with rendered content.
func (s *blogPostService) GetPublicPosts(params models.BlogListParams) (*models.BlogListResponse, error) {
	posts, total, err := s.postRepo.GetList(params, true)
	if err != nil {
		return nil, classify(err, "blog post")
	}

	views := make([]models.BlogPostView, len(posts))
	for i := range posts {
		views[i] = s.publicView(posts[i])
	}
	return &models.BlogListResponse{Posts: views, Total: total}, nil
}

func (s *blogPostService) GetPost(id string) (*models.BlogPostView, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "blog post")
	}
	view := models.NewBlogPostView(*post)
	return &view, nil
}

func (s *blogPostService) GetPublicPost(slug string) (*models.BlogPostView, error) {
	post, err := s.postRepo.GetBySlug(slug)
	if err != nil {
		return nil, classify(err, "blog post")
	}
	if post.Status != models.PostPublished {
		return nil, models.NotFound("blog post")
	}
	view := s.publicView(*post)
	return &view, nil
}

func (s *blogPostService) UpdatePost(id string, req models.BlogPostRequest) (*models.BlogPostView, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "blog post")
	}

	status := req.Status
	if status == "" {
		status = post.Status
	}
	if !status.Valid() {
		return nil, invalid("invalid post status", "status")
	}

	post.PublishedAt = models.ResolvePublishedAt(post.Status, post.PublishedAt, status, s.now())
	post.Status = status
	post.Title = req.Title
	post.Slug = resolveSlug(req.Slug, req.Title)
	post.Content = req.Content
	post.Excerpt = req.Excerpt
	post.Image = req.Image

	if err := s.checkSlug(post); err != nil {
		return nil, err
	}
	if err := s.checkReferences(req.CategoryIDs, req.TagIDs); err != nil {
		return nil, err
	}

	post.Author, post.Categories, post.Tags = nil, nil, nil
	if err := s.postRepo.Update(post, req.CategoryIDs, req.TagIDs); err != nil {
		return nil, classify(err, "blog post")
	}
	return s.GetPost(id)
}

func (s *blogPostService) SetPostStatus(id string, status models.PostStatus) (*models.BlogPostView, error) {
	if !status.Valid() {
		return nil, invalid("invalid post status", "status")
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "blog post")
	}

	publishedAt := models.ResolvePublishedAt(post.Status, post.PublishedAt, status, s.now())
	if err := s.postRepo.UpdateStatus(id, status, publishedAt); err != nil {
		return nil, classify(err, "blog post")
	}
	return s.GetPost(id)
}

func (s *blogPostService) DeletePost(id string) error {
	return classify(s.postRepo.Delete(id), "blog post")
}

func (s *blogPostService) publicView(post models.BlogPost) models.BlogPostView {
	view := models.NewBlogPostView(post)
	html, err := s.renderer.RenderHTML(post.Content)
	if err != nil {
		log.Warn().Err(err).Str("post_id", post.ID).Msg("render blog post content")
		return view
	}
	view.ContentHTML = html
	return view
}

func (s *blogPostService) checkSlug(post *models.BlogPost) error {
	if post.Slug == "" {
		return invalid("slug cannot be empty", "slug")
	}

	existing, err := s.postRepo.GetBySlug(post.Slug)
	if err == nil && existing.ID != post.ID {
		return models.ErrorConflict{Message: "a blog post with this slug already exists"}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return classify(err, "blog post")
	}
	return nil
}

// checkReferences verifies every category and tag id resolves to a row.
func (s *blogPostService) checkReferences(categoryIDs, tagIDs []string) error {
	if missing, err := missingIDs(categoryIDs, s.categoryRepo.ExistingIDs); err != nil {
		return classify(err, "category")
	} else if len(missing) > 0 {
		return models.ErrorReference{Message: fmt.Sprintf("unknown category id(s): %v", missing)}
	}

	if missing, err := missingIDs(tagIDs, s.tagRepo.ExistingIDs); err != nil {
		return classify(err, "tag")
	} else if len(missing) > 0 {
		return models.ErrorReference{Message: fmt.Sprintf("unknown tag id(s): %v", missing)}
	}
	return nil
}

func missingIDs(ids []string, existing func([]string) ([]string, error)) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := existing(ids)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(found))
	for _, id := range found {
		present[id] = true
	}
	var missing []string
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func postStatusOrDraft(status models.PostStatus) (models.PostStatus, error) {
	if status == "" {
		return models.PostDraft, nil
	}
	if !status.Valid() {
		return "", invalid("invalid post status", "status")
	}
	return status, nil
}
