package models

import (
	"time"

	"gorm.io/gorm"
)

type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
	PostArchived  PostStatus = "ARCHIVED"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}

type BlogPost struct {
	ID          string     `json:"id" gorm:"primaryKey;size:64"`
	Title       string     `json:"title" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`
	Content     string     `json:"content" gorm:"type:text"`
	Excerpt     string     `json:"excerpt" gorm:"type:text"`
	Image       string     `json:"image"`
	Status      PostStatus `json:"status" gorm:"size:20;not null;index"`
	PublishedAt *time.Time `json:"publishedAt" gorm:"index"`
	AuthorID    string     `json:"authorId" gorm:"size:64;not null;index"`
	Author      *User      `json:"-" gorm:"foreignKey:AuthorID"`
	Categories  []Category `json:"-" gorm:"many2many:blog_post_categories"`
	Tags        []Tag      `json:"-" gorm:"many2many:blog_post_tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Status == "" {
		p.Status = PostDraft
	}
	return nil
}

type BlogPostCategory struct {
	BlogPostID string `json:"blogPostId" gorm:"primaryKey;size:64"`
	CategoryID string `json:"categoryId" gorm:"primaryKey;size:64"`
}

type BlogPostTag struct {
	BlogPostID string `json:"blogPostId" gorm:"primaryKey;size:64"`
	TagID      string `json:"tagId" gorm:"primaryKey;size:64"`
}

// ResolvePublishedAt derives publishedAt for a post moving from prev to next.
// A post that stays published keeps its original timestamp; one entering
// PUBLISHED gets now; every other status clears it.
func ResolvePublishedAt(prev PostStatus, prevPublishedAt *time.Time, next PostStatus, now time.Time) *time.Time {
	if next != PostPublished {
		return nil
	}
	if prev == PostPublished && prevPublishedAt != nil {
		t := *prevPublishedAt
		return &t
	}
	t := now
	return &t
}

// BlogPostView is the response shape of a post with its relations flattened.
type BlogPostView struct {
	BlogPost
	Author      *Author    `json:"author,omitempty"`
	Categories  []Category `json:"categories"`
	Tags        []Tag      `json:"tags"`
	ContentHTML string     `json:"contentHtml,omitempty"`
}

func NewBlogPostView(p BlogPost) BlogPostView {
	view := BlogPostView{
		BlogPost:   p,
		Author:     p.Author.AsAuthor(),
		Categories: p.Categories,
		Tags:       p.Tags,
	}
	if view.Categories == nil {
		view.Categories = []Category{}
	}
	if view.Tags == nil {
		view.Tags = []Tag{}
	}
	return view
}
