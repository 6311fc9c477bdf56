package repositories

import (
	"fmt"
	"time"

	"iniva-cms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogPostRepository interface {
	Create(post *models.BlogPost, categoryIDs, tagIDs []string) error
	GetByID(id string) (*models.BlogPost, error)
	GetBySlug(slug string) (*models.BlogPost, error)
	GetList(params models.BlogListParams, isPublic bool) ([]models.BlogPost, int64, error)
	Update(post *models.BlogPost, categoryIDs, tagIDs []string) error
	UpdateStatus(id string, status models.PostStatus, publishedAt *time.Time) error
	Delete(id string) error
	Count() (int64, error)
}

type blogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

var sortableColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"published_at": true,
	"title":        true,
}

func (r *blogPostRepository) preloaded(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") }).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") })
}

func (r *blogPostRepository) Create(post *models.BlogPost, categoryIDs, tagIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return InsertLinks(tx, CategoryLinks(post.ID, categoryIDs), TagLinks(post.ID, tagIDs))
	})
}

func (r *blogPostRepository) GetByID(id string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.preloaded(r.db).First(&post, "id = ?", id).Error
	return &post, err
}

func (r *blogPostRepository) GetBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.preloaded(r.db).Where("slug = ?", slug).First(&post).Error
	return &post, err
}

func (r *blogPostRepository) GetList(params models.BlogListParams, isPublic bool) ([]models.BlogPost, int64, error) {
	var posts []models.BlogPost
	var total int64

	query := r.db.Model(&models.BlogPost{})

	if isPublic {
		query = query.Where("blog_posts.status = ?", models.PostPublished)
	} else if params.Status != "" {
		query = query.Where("blog_posts.status = ?", params.Status)
	}

	if params.AuthorID != "" {
		query = query.Where("blog_posts.author_id = ?", params.AuthorID)
	}

	if params.CategoryID != "" {
		query = query.Where("blog_posts.id IN (?)",
			r.db.Table("blog_post_categories").Select("blog_post_id").Where("category_id = ?", params.CategoryID))
	}

	if params.TagID != "" {
		query = query.Where("blog_posts.id IN (?)",
			r.db.Table("blog_post_tags").Select("blog_post_id").Where("tag_id = ?", params.TagID))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy, sortOrder := "created_at", "desc"
	if isPublic {
		sortBy = "published_at"
	} else {
		if sortableColumns[params.SortBy] {
			sortBy = params.SortBy
		}
		if params.SortOrder == "asc" {
			sortOrder = "asc"
		}
	}

	query = query.Order(fmt.Sprintf("blog_posts.%s %s", sortBy, sortOrder))

	if params.Limit > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * params.Limit).Limit(params.Limit)
	}

	err := r.preloaded(query).Find(&posts).Error
	return posts, total, err
}

// Update replaces the scalar fields and rewrites the category and tag links
// from the given id lists.
func (r *blogPostRepository) Update(post *models.BlogPost, categoryIDs, tagIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}
		if err := deleteLinks(tx, post.ID); err != nil {
			return err
		}
		return InsertLinks(tx, CategoryLinks(post.ID, categoryIDs), TagLinks(post.ID, tagIDs))
	})
}

func (r *blogPostRepository) UpdateStatus(id string, status models.PostStatus, publishedAt *time.Time) error {
	res := r.db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       status,
		"published_at": publishedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *blogPostRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteLinks(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&models.BlogPost{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *blogPostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Count(&count).Error
	return count, err
}

// CategoryLinks builds the join rows for one post, skipping duplicate ids.
func CategoryLinks(postID string, categoryIDs []string) []models.BlogPostCategory {
	links := make([]models.BlogPostCategory, 0, len(categoryIDs))
	seen := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, models.BlogPostCategory{BlogPostID: postID, CategoryID: id})
	}
	return links
}

// TagLinks builds the join rows for one post, skipping duplicate ids.
func TagLinks(postID string, tagIDs []string) []models.BlogPostTag {
	links := make([]models.BlogPostTag, 0, len(tagIDs))
	seen := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, models.BlogPostTag{BlogPostID: postID, TagID: id})
	}
	return links
}

const linkBatchSize = 500

// InsertLinks writes both join tables, one batched insert per table.
func InsertLinks(tx *gorm.DB, categories []models.BlogPostCategory, tags []models.BlogPostTag) error {
	if len(categories) > 0 {
		if err := tx.CreateInBatches(categories, linkBatchSize).Error; err != nil {
			return err
		}
	}
	if len(tags) > 0 {
		if err := tx.CreateInBatches(tags, linkBatchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteLinks(tx *gorm.DB, postID string) error {
	if err := tx.Where("blog_post_id = ?", postID).Delete(&models.BlogPostCategory{}).Error; err != nil {
		return err
	}
	return tx.Where("blog_post_id = ?", postID).Delete(&models.BlogPostTag{}).Error
}
