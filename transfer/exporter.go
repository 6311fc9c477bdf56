package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"iniva-cms/models"

	"gorm.io/gorm"
)

type Exporter struct {
	db  *gorm.DB
	now func() time.Time
}

func NewExporter(db *gorm.DB) *Exporter {
	return &Exporter{db: db, now: time.Now}
}

// Export reads every table in dependency order. Blog posts are enriched with
// their category and tag references and a summary of their author.
func (e *Exporter) Export(ctx context.Context) (*Document, error) {
	db := e.db.WithContext(ctx)
	doc := &Document{Version: Version}

	var users []models.User
	reads := []struct {
		name string
		dst  interface{}
	}{
		{"users", &users},
		{"hubs", &doc.Hubs},
		{"actors", &doc.Actors},
		{"appointments", &doc.Appointments},
		{"contacts", &doc.Contacts},
		{"categories", &doc.Categories},
		{"tags", &doc.Tags},
		{"settings", &doc.Settings},
	}
	for _, r := range reads {
		if err := db.Order("created_at asc").Order("id asc").Find(r.dst).Error; err != nil {
			return nil, fmt.Errorf("export %s: %w", r.name, err)
		}
	}

	doc.Users = make([]User, len(users))
	authors := make(map[string]*models.Author, len(users))
	for i := range users {
		doc.Users[i] = User{User: users[i], Password: users[i].Password}
		authors[users[i].ID] = users[i].AsAuthor()
	}

	var posts []models.BlogPost
	if err := db.Order("created_at asc").Order("id asc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("export blog posts: %w", err)
	}

	var categoryLinks []models.BlogPostCategory
	if err := db.Order("blog_post_id asc").Order("category_id asc").Find(&categoryLinks).Error; err != nil {
		return nil, fmt.Errorf("export blog post categories: %w", err)
	}
	var tagLinks []models.BlogPostTag
	if err := db.Order("blog_post_id asc").Order("tag_id asc").Find(&tagLinks).Error; err != nil {
		return nil, fmt.Errorf("export blog post tags: %w", err)
	}

	categoriesByPost := make(map[string][]CategoryRef)
	for _, link := range categoryLinks {
		categoriesByPost[link.BlogPostID] = append(categoriesByPost[link.BlogPostID],
			CategoryRef{BlogPostID: link.BlogPostID, CategoryID: link.CategoryID})
	}
	tagsByPost := make(map[string][]TagRef)
	for _, link := range tagLinks {
		tagsByPost[link.BlogPostID] = append(tagsByPost[link.BlogPostID],
			TagRef{BlogPostID: link.BlogPostID, TagID: link.TagID})
	}

	doc.BlogPosts = make([]BlogPost, len(posts))
	for i, post := range posts {
		doc.BlogPosts[i] = BlogPost{
			BlogPost:   post,
			Categories: nonNil(categoriesByPost[post.ID]),
			Tags:       nonNil(tagsByPost[post.ID]),
			Author:     authors[post.AuthorID],
		}
	}

	doc.ExportedAt = e.now().UTC()
	return doc, nil
}

// ExportToWriter writes the document as indented JSON. Nothing is written when
// reading fails.
func (e *Exporter) ExportToWriter(ctx context.Context, w io.Writer) (*Document, error) {
	doc, err := e.Export(ctx)
	if err != nil {
		return nil, err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return doc, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
