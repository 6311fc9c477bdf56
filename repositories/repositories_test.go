package repositories

import (
	"context"
	"errors"
	"testing"

	"iniva-cms/config"
	"iniva-cms/models"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RepositoryTestSuite struct {
	suite.Suite
	db *gorm.DB

	author     *models.User
	categories CategoryRepository
	tags       TagRepository
	posts      BlogPostRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := config.InitDB(config.DatabaseConfig{Driver: "sqlite", Name: ":memory:"})
	s.Require().NoError(err)
	s.db = db

	s.categories = NewCategoryRepository(db)
	s.tags = NewTagRepository(db)
	s.posts = NewBlogPostRepository(db)

	s.author = &models.User{Email: "author@iniva.org", Name: "Autora", Password: "hash"}
	s.Require().NoError(NewUserRepository(db).Create(s.author))
}

func (s *RepositoryTestSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *RepositoryTestSuite) newPost(slug string, status models.PostStatus, categoryIDs, tagIDs []string) *models.BlogPost {
	post := &models.BlogPost{Title: slug, Slug: slug, Content: "x", Status: status, AuthorID: s.author.ID}
	s.Require().NoError(s.posts.Create(post, categoryIDs, tagIDs))
	return post
}

func (s *RepositoryTestSuite) TestWithTransactionRollsBackOnError() {
	boom := errors.New("boom")
	err := WithTransaction(context.Background(), s.db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Hub{Name: "Temp"}).Error; err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	var count int64
	s.Require().NoError(s.db.Model(&models.Hub{}).Count(&count).Error)
	s.Zero(count)
}

func (s *RepositoryTestSuite) TestWithTransactionRollsBackOnPanic() {
	s.Panics(func() {
		_ = WithTransaction(context.Background(), s.db, func(tx *gorm.DB) error {
			tx.Create(&models.Hub{Name: "Temp"})
			panic("unexpected")
		})
	})

	var count int64
	s.Require().NoError(s.db.Model(&models.Hub{}).Count(&count).Error)
	s.Zero(count)
}

func (s *RepositoryTestSuite) TestWithTransactionCommits() {
	err := WithTransaction(context.Background(), s.db, func(tx *gorm.DB) error {
		return tx.Create(&models.Hub{Name: "Kept"}).Error
	})
	s.Require().NoError(err)

	var count int64
	s.Require().NoError(s.db.Model(&models.Hub{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *RepositoryTestSuite) TestPostLinksAreRewrittenOnUpdate() {
	a := &models.Category{Name: "A", Slug: "a"}
	b := &models.Category{Name: "B", Slug: "b"}
	s.Require().NoError(s.categories.Create(a))
	s.Require().NoError(s.categories.Create(b))
	tag := &models.Tag{Name: "T", Slug: "t"}
	s.Require().NoError(s.tags.Create(tag))

	post := s.newPost("post", models.PostDraft, []string{a.ID, a.ID}, []string{tag.ID})

	got, err := s.posts.GetByID(post.ID)
	s.Require().NoError(err)
	s.Require().Len(got.Categories, 1)
	s.Equal(a.ID, got.Categories[0].ID)
	s.Require().NotNil(got.Author)
	s.Equal(s.author.Email, got.Author.Email)

	post.Title = "Updated"
	s.Require().NoError(s.posts.Update(post, []string{b.ID}, nil))

	got, err = s.posts.GetByID(post.ID)
	s.Require().NoError(err)
	s.Equal("Updated", got.Title)
	s.Require().Len(got.Categories, 1)
	s.Equal(b.ID, got.Categories[0].ID)
	s.Empty(got.Tags)

	counts, err := s.categories.CountPosts([]string{a.ID, b.ID})
	s.Require().NoError(err)
	s.Equal(int64(0), counts[a.ID])
	s.Equal(int64(1), counts[b.ID])
}

func (s *RepositoryTestSuite) TestDeletePostRemovesLinks() {
	tag := &models.Tag{Name: "T", Slug: "t"}
	s.Require().NoError(s.tags.Create(tag))
	post := s.newPost("post", models.PostDraft, nil, []string{tag.ID})

	s.Require().NoError(s.posts.Delete(post.ID))

	var links int64
	s.Require().NoError(s.db.Model(&models.BlogPostTag{}).Count(&links).Error)
	s.Zero(links)

	s.ErrorIs(s.posts.Delete(post.ID), gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestGetListFiltersAndPaginates() {
	category := &models.Category{Name: "A", Slug: "a"}
	s.Require().NoError(s.categories.Create(category))

	s.newPost("one", models.PostPublished, []string{category.ID}, nil)
	s.newPost("two", models.PostPublished, nil, nil)
	s.newPost("three", models.PostDraft, []string{category.ID}, nil)

	posts, total, err := s.posts.GetList(models.BlogListParams{Page: 1, Limit: 10}, true)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(posts, 2)

	posts, total, err = s.posts.GetList(models.BlogListParams{CategoryID: category.ID, Page: 1, Limit: 10}, false)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(posts, 2)

	posts, total, err = s.posts.GetList(models.BlogListParams{Status: "DRAFT", Page: 1, Limit: 10}, false)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("three", posts[0].Slug)

	posts, total, err = s.posts.GetList(models.BlogListParams{SortBy: "title", SortOrder: "asc", Page: 2, Limit: 2}, false)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(posts, 1)
	s.Equal("two", posts[0].Slug)
}

func (s *RepositoryTestSuite) TestGetListIgnoresUnknownSortColumn() {
	s.newPost("one", models.PostDraft, nil, nil)

	_, total, err := s.posts.GetList(models.BlogListParams{SortBy: "id; DROP TABLE users", Page: 1, Limit: 10}, false)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
}

func (s *RepositoryTestSuite) TestExistingIDs() {
	tag := &models.Tag{Name: "T", Slug: "t"}
	s.Require().NoError(s.tags.Create(tag))

	found, err := s.tags.ExistingIDs([]string{tag.ID, "missing"})
	s.Require().NoError(err)
	s.Equal([]string{tag.ID}, found)
}

func (s *RepositoryTestSuite) TestUniqueSlugIsTranslated() {
	s.Require().NoError(s.categories.Create(&models.Category{Name: "A", Slug: "a"}))
	err := s.categories.Create(&models.Category{Name: "B", Slug: "a"})
	s.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
