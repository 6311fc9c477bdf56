package transfer

import (
	"context"
	"fmt"
	"time"

	"iniva-cms/models"
	"iniva-cms/repositories"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 100

type Importer struct {
	db  *gorm.DB
	now func() time.Time
}

func NewImporter(db *gorm.DB) *Importer {
	return &Importer{db: db, now: time.Now}
}

// Summary reports the rows written per entity. Records left out by the
// integrity checks are listed under Skipped with a reason each.
type Summary struct {
	Counts
	ImportedAt time.Time           `json:"importedAt"`
	Skipped    map[string][]string `json:"skipped,omitempty"`
}

func (s *Summary) skip(entity, format string, args ...interface{}) {
	if s.Skipped == nil {
		s.Skipped = map[string][]string{}
	}
	s.Skipped[entity] = append(s.Skipped[entity], fmt.Sprintf(format, args...))
}

// Import replaces the content of every table with doc. The user identified
// by preserveUserID survives the purge so the caller keeps a valid account;
// an empty id preserves nobody. Purge and load run in one transaction: on any
// error the store is left as it was.
func (im *Importer) Import(ctx context.Context, doc *Document, preserveUserID string) (*Summary, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	summary := &Summary{}
	err := repositories.WithTransaction(ctx, im.db, func(tx *gorm.DB) error {
		if err := purge(tx, preserveUserID); err != nil {
			return err
		}
		return load(tx, doc, preserveUserID, summary)
	})
	if err != nil {
		return nil, models.Internal("import failed, no changes were applied", err)
	}

	summary.ImportedAt = im.now().UTC()
	log.Info().
		Interface("counts", summary.Counts).
		Int("skipped", summary.skippedTotal()).
		Str("preserved_user", preserveUserID).
		Msg("data import completed")
	return summary, nil
}

func (s *Summary) skippedTotal() int {
	total := 0
	for _, reasons := range s.Skipped {
		total += len(reasons)
	}
	return total
}

// purge deletes children before parents.
func purge(tx *gorm.DB, preserveUserID string) error {
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	steps := []struct {
		name  string
		model interface{}
	}{
		{"blog post categories", &models.BlogPostCategory{}},
		{"blog post tags", &models.BlogPostTag{}},
		{"blog posts", &models.BlogPost{}},
		{"tags", &models.Tag{}},
		{"categories", &models.Category{}},
		{"contacts", &models.Contact{}},
		{"appointments", &models.Appointment{}},
		{"actors", &models.Actor{}},
		{"hubs", &models.Hub{}},
		{"settings", &models.Setting{}},
	}
	for _, step := range steps {
		if err := all.Delete(step.model).Error; err != nil {
			return fmt.Errorf("purge %s: %w", step.name, err)
		}
	}

	users := all
	if preserveUserID != "" {
		users = tx.Where("id <> ?", preserveUserID)
	}
	if err := users.Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("purge users: %w", err)
	}
	return nil
}

func load(tx *gorm.DB, doc *Document, preserveUserID string, summary *Summary) error {
	userIDs, err := loadUsers(tx, doc.Users, summary)
	if err != nil {
		return err
	}

	hubIDs := make(map[string]bool, len(doc.Hubs))
	for _, hub := range doc.Hubs {
		hubIDs[hub.ID] = true
	}
	if summary.Hubs, err = insert(tx, "hubs", doc.Hubs); err != nil {
		return err
	}

	if summary.Actors, err = insert(tx, "actors", doc.Actors); err != nil {
		return err
	}

	appointments := make([]models.Appointment, 0, len(doc.Appointments))
	for _, appointment := range doc.Appointments {
		if !hubIDs[appointment.HubID] {
			summary.skip("appointments", "%s: unknown hub %q", appointment.ID, appointment.HubID)
			continue
		}
		appointment.Hub = nil
		appointments = append(appointments, appointment)
	}
	if summary.Appointments, err = insert(tx.Omit("Hub"), "appointments", appointments); err != nil {
		return err
	}

	if summary.Contacts, err = insert(tx, "contacts", doc.Contacts); err != nil {
		return err
	}

	categoryIDs := make(map[string]bool, len(doc.Categories))
	for _, category := range doc.Categories {
		categoryIDs[category.ID] = true
	}
	if summary.Categories, err = insert(tx, "categories", doc.Categories); err != nil {
		return err
	}

	tagIDs := make(map[string]bool, len(doc.Tags))
	for _, tag := range doc.Tags {
		tagIDs[tag.ID] = true
	}
	if summary.Tags, err = insert(tx, "tags", doc.Tags); err != nil {
		return err
	}

	posts, categoryLinks, tagLinks := resolvePosts(doc.BlogPosts, userIDs, preserveUserID, categoryIDs, tagIDs, doc.ExportedAt.UTC(), summary)
	if summary.BlogPosts, err = insert(tx.Omit(clause.Associations), "blog posts", posts); err != nil {
		return err
	}
	if err := repositories.InsertLinks(tx, categoryLinks, tagLinks); err != nil {
		return fmt.Errorf("import blog post links: %w", err)
	}

	if summary.Settings, err = insert(tx, "settings", doc.Settings); err != nil {
		return err
	}
	return nil
}

// userRefs maps exported user ids and emails to the ids they have after load.
type userRefs struct {
	byID    map[string]string
	byEmail map[string]string
}

func (r userRefs) resolve(authorID string, author *models.Author) (string, bool) {
	if id, ok := r.byID[authorID]; ok {
		return id, true
	}
	if author != nil {
		if id, ok := r.byEmail[models.NormalizeEmail(author.Email)]; ok {
			return id, true
		}
	}
	return "", false
}

// loadUsers inserts users whose email is not already present, comparing
// emails in their normalized form. Users that collide by email are mapped
// onto the surviving row.
func loadUsers(tx *gorm.DB, users []User, summary *Summary) (userRefs, error) {
	refs := userRefs{byID: map[string]string{}, byEmail: map[string]string{}}

	var existing []models.User
	if err := tx.Select("id", "email").Find(&existing).Error; err != nil {
		return refs, fmt.Errorf("import users: %w", err)
	}
	takenIDs := map[string]bool{}
	for _, u := range existing {
		refs.byEmail[models.NormalizeEmail(u.Email)] = u.ID
		takenIDs[u.ID] = true
	}

	toCreate := make([]models.User, 0, len(users))
	for _, u := range users {
		email := models.NormalizeEmail(u.Email)
		if id, ok := refs.byEmail[email]; ok {
			refs.byID[u.ID] = id
			summary.skip("users", "%s: email already present", u.Email)
			continue
		}
		if u.Password == "" {
			summary.skip("users", "%s: missing password hash", u.Email)
			continue
		}
		if !u.Role.Valid() {
			summary.skip("users", "%s: invalid role %q", u.Email, u.Role)
			continue
		}

		user := u.User
		user.Email = email
		user.Password = u.Password
		if user.ID == "" || takenIDs[user.ID] {
			user.ID = models.NewID()
		}
		takenIDs[user.ID] = true
		refs.byID[u.ID] = user.ID
		refs.byEmail[user.Email] = user.ID
		toCreate = append(toCreate, user)
	}

	if _, err := insert(tx, "users", toCreate); err != nil {
		return refs, err
	}
	summary.Users = len(toCreate)
	return refs, nil
}

// resolvePosts applies the integrity policy to blog posts and builds the
// complete list of join rows before anything is written. Published posts
// without a timestamp get publishedFallback.
func resolvePosts(in []BlogPost, users userRefs, preserveUserID string, categoryIDs, tagIDs map[string]bool, publishedFallback time.Time, summary *Summary) ([]models.BlogPost, []models.BlogPostCategory, []models.BlogPostTag) {
	posts := make([]models.BlogPost, 0, len(in))
	var categoryLinks []models.BlogPostCategory
	var tagLinks []models.BlogPostTag

	for _, p := range in {
		post := p.BlogPost
		post.Author, post.Categories, post.Tags = nil, nil, nil

		authorID, ok := users.resolve(p.AuthorID, p.Author)
		if !ok {
			if preserveUserID == "" {
				summary.skip("blogPosts", "%s: unknown author %q", post.ID, p.AuthorID)
				continue
			}
			authorID = preserveUserID
		}
		post.AuthorID = authorID
		if post.ID == "" {
			post.ID = models.NewID()
		}
		if !post.Status.Valid() {
			post.Status = models.PostDraft
		}
		post.PublishedAt = models.ResolvePublishedAt(post.Status, post.PublishedAt, post.Status, publishedFallback)
		posts = append(posts, post)

		var cats []string
		for _, ref := range p.Categories {
			if !categoryIDs[ref.CategoryID] {
				summary.skip("blogPostCategories", "%s: unknown category %q", post.ID, ref.CategoryID)
				continue
			}
			cats = append(cats, ref.CategoryID)
		}
		categoryLinks = append(categoryLinks, repositories.CategoryLinks(post.ID, cats)...)

		var tags []string
		for _, ref := range p.Tags {
			if !tagIDs[ref.TagID] {
				summary.skip("blogPostTags", "%s: unknown tag %q", post.ID, ref.TagID)
				continue
			}
			tags = append(tags, ref.TagID)
		}
		tagLinks = append(tagLinks, repositories.TagLinks(post.ID, tags)...)
	}

	return posts, categoryLinks, tagLinks
}

func insert[T any](tx *gorm.DB, name string, rows []T) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
		return 0, fmt.Errorf("import %s: %w", name, err)
	}
	return len(rows), nil
}
