package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"iniva-cms/app"
	"iniva-cms/cache"
	"iniva-cms/config"
	"iniva-cms/logger"
	"iniva-cms/models"
	"iniva-cms/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	cfg    *config.Config
	store  *storage.LocalStorage
	router *gin.Engine

	adminToken  string
	editorToken string
	adminID     string
	editorID    string
}

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage json.RawMessage `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

func (suite *IntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func (suite *IntegrationTestSuite) SetupTest() {
	cfg := &config.Config{
		Env:             "test",
		JWTSecret:       "test-secret",
		JWTExpiration:   time.Hour,
		UploadDir:       suite.T().TempDir(),
		UploadMaxBytes:  1 << 20,
		ImportMaxBytes:  1 << 20,
		CacheTTL:        time.Minute,
		PublicRateLimit: 1000,
	}

	db, err := config.InitDB(config.DatabaseConfig{Driver: "sqlite", Name: ":memory:"})
	suite.Require().NoError(err)
	suite.db = db
	suite.cfg = cfg

	store, err := storage.NewLocalStorage(cfg.UploadDir, app.LocalUploadURL)
	suite.Require().NoError(err)
	suite.store = store

	a := app.New(cfg, db, nil, store)
	suite.router = a.Router

	_, err = a.Seed.EnsureSuperAdmin("admin@iniva.org", "admin-pass", "Admin")
	suite.Require().NoError(err)
	_, err = a.Auth.CreateUser(models.CreateUserRequest{Email: "editor@iniva.org", Name: "Editor", Password: "editor-pass", Role: models.RoleEditor})
	suite.Require().NoError(err)

	suite.adminToken, suite.adminID = suite.login("admin@iniva.org", "admin-pass")
	suite.editorToken, suite.editorID = suite.login("editor@iniva.org", "editor-pass")
}

func (suite *IntegrationTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (suite *IntegrationTestSuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return suite.serve(req, token)
}

func (suite *IntegrationTestSuite) serve(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (suite *IntegrationTestSuite) login(email, password string) (string, string) {
	w, env := suite.do(http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: email, Password: password})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp models.AuthResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &resp))
	return resp.Token, resp.User.ID
}

func (suite *IntegrationTestSuite) decode(env envelope, v interface{}) {
	suite.Require().NoError(json.Unmarshal(env.Data, v))
}

func (suite *IntegrationTestSuite) createHub(name string, active bool) models.Hub {
	w, env := suite.do(http.MethodPost, "/api/admin/hubs", suite.adminToken, map[string]interface{}{
		"name":     name,
		"location": "Itajubá",
		"address":  "Rua A, 1",
		"services": "Coworking\nMentoria",
		"active":   active,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var hub models.Hub
	suite.decode(env, &hub)
	return hub
}

func (suite *IntegrationTestSuite) TestHealth() {
	w, env := suite.do(http.MethodGet, "/api/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var health models.HealthResponse
	suite.decode(env, &health)
	suite.Equal("healthy", health.Status)
}

func (suite *IntegrationTestSuite) TestAuthFlow() {
	w, env := suite.do(http.MethodGet, "/api/auth/me", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	var user models.User
	suite.decode(env, &user)
	suite.Equal(models.RoleSuperAdmin, user.Role)
	suite.NotContains(w.Body.String(), "password")

	w, env = suite.do(http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "admin@iniva.org", Password: "wrong"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("unAuthorized", env.CodeType)

	w, env = suite.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("validationError", env.CodeType)
}

func (suite *IntegrationTestSuite) TestAdminRoutesRequireRole() {
	w, _ := suite.do(http.MethodGet, "/api/admin/hubs", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w, _ = suite.do(http.MethodGet, "/api/admin/hubs", "bogus", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w, env := suite.do(http.MethodGet, "/api/admin/hubs", suite.editorToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("forbidden", env.CodeType)

	w, _ = suite.do(http.MethodGet, "/api/admin/actors", suite.editorToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w, _ = suite.do(http.MethodPost, "/api/admin/actors", suite.editorToken, map[string]string{"name": "A", "mission": "M"})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *IntegrationTestSuite) TestOnlySuperAdminCreatesSuperAdmins() {
	w, env := suite.do(http.MethodPost, "/api/admin/users", suite.adminToken, models.CreateUserRequest{
		Email: "staff@iniva.org", Name: "Staff", Password: "staff-pass", Role: models.RoleAdmin,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var staff models.User
	suite.decode(env, &staff)
	suite.Equal(models.RoleAdmin, staff.Role)

	staffToken, _ := suite.login("staff@iniva.org", "staff-pass")
	w, _ = suite.do(http.MethodPost, "/api/admin/users", staffToken, models.CreateUserRequest{
		Email: "root2@iniva.org", Name: "Root", Password: "root-pass", Role: models.RoleSuperAdmin,
	})
	suite.Equal(http.StatusForbidden, w.Code)

	w, _ = suite.do(http.MethodPost, "/api/admin/users", suite.adminToken, models.CreateUserRequest{
		Email: "staff@iniva.org", Name: "Dup", Password: "staff-pass",
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *IntegrationTestSuite) TestHubLifecycle() {
	hub := suite.createHub("Hub Centro", true)
	suite.Equal(models.StringList{"Coworking", "Mentoria"}, hub.Services)
	suite.createHub("Hub Norte", false)

	w, env := suite.do(http.MethodGet, "/api/hubs", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var public []models.Hub
	suite.decode(env, &public)
	suite.Require().Len(public, 1)
	suite.Equal("Hub Centro", public[0].Name)

	w, env = suite.do(http.MethodPatch, "/api/admin/hubs/"+hub.ID, suite.adminToken, map[string]bool{"active": false})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var patched models.Hub
	suite.decode(env, &patched)
	suite.False(patched.Active)

	w, _ = suite.do(http.MethodPatch, "/api/admin/hubs/"+hub.ID, suite.adminToken, map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)

	w, _ = suite.do(http.MethodDelete, "/api/admin/hubs/"+hub.ID, suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w, env = suite.do(http.MethodGet, "/api/admin/hubs/"+hub.ID, suite.adminToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("notFound", env.CodeType)
}

func (suite *IntegrationTestSuite) TestPublicAppointmentBooking() {
	open := suite.createHub("Hub Aberto", true)
	closed := suite.createHub("Hub Fechado", false)

	booking := map[string]string{
		"name":  "Ana",
		"email": "ana@example.com",
		"phone": "35999999999",
		"date":  "2024-06-01",
		"time":  "14:00",
		"hubId": open.ID,
	}

	w, env := suite.do(http.MethodPost, "/api/appointments", "", booking)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var appointment models.Appointment
	suite.decode(env, &appointment)
	suite.Equal(models.AppointmentPending, appointment.Status)

	booking["hubId"] = closed.ID
	w, _ = suite.do(http.MethodPost, "/api/appointments", "", booking)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	delete(booking, "phone")
	w, _ = suite.do(http.MethodPost, "/api/appointments", "", booking)
	suite.Equal(http.StatusBadRequest, w.Code)

	w, env = suite.do(http.MethodPatch, "/api/admin/appointments/"+appointment.ID, suite.adminToken, map[string]string{"status": "CONFIRMED"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(env, &appointment)
	suite.Equal(models.AppointmentConfirmed, appointment.Status)
	suite.Require().NotNil(appointment.Hub)
	suite.Equal("Hub Aberto", appointment.Hub.Name)
}

func (suite *IntegrationTestSuite) TestContactSubmission() {
	w, env := suite.do(http.MethodPost, "/api/contacts", "", map[string]string{
		"name":    "João",
		"email":   "joao@example.com",
		"subject": "Parceria",
		"message": "<i>Olá</i>",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var contact models.Contact
	suite.decode(env, &contact)
	suite.Equal(models.ContactNew, contact.Status)
	suite.Equal("Olá", contact.Message)

	w, env = suite.do(http.MethodPatch, "/api/admin/contacts/"+contact.ID, suite.adminToken, map[string]bool{"replied": true})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(env, &contact)
	suite.True(contact.Replied)
}

func (suite *IntegrationTestSuite) TestBlogFlow() {
	w, env := suite.do(http.MethodPost, "/api/admin/blog/categories", suite.adminToken, models.CategoryRequest{Name: "Inovação"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var category models.Category
	suite.decode(env, &category)
	suite.Equal("inovacao", category.Slug)

	w, env = suite.do(http.MethodPost, "/api/admin/blog/tags", suite.adminToken, models.TagRequest{Name: "IA"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var tag models.Tag
	suite.decode(env, &tag)

	w, env = suite.do(http.MethodPost, "/api/admin/blog/posts", suite.adminToken, models.BlogPostRequest{
		Title:       "Semana de Inovação",
		Content:     "Texto **importante**",
		Status:      models.PostPublished,
		CategoryIDs: []string{category.ID},
		TagIDs:      []string{tag.ID},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var post models.BlogPostView
	suite.decode(env, &post)
	suite.Equal("semana-de-inovacao", post.Slug)
	suite.NotNil(post.PublishedAt)
	suite.Require().NotNil(post.Author)
	suite.Equal(suite.adminID, post.Author.ID)

	w, _ = suite.do(http.MethodPost, "/api/admin/blog/posts", suite.adminToken, models.BlogPostRequest{Title: "Semana de Inovação", Content: "x"})
	suite.Equal(http.StatusConflict, w.Code)

	w, _ = suite.do(http.MethodPost, "/api/admin/blog/posts", suite.adminToken, models.BlogPostRequest{Title: "Outro", Content: "x", CategoryIDs: []string{"missing"}})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w, env = suite.do(http.MethodGet, "/api/blog", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list models.BlogListResponse
	suite.decode(env, &list)
	suite.Equal(int64(1), list.Total)
	suite.Require().Len(list.Posts, 1)
	suite.Contains(list.Posts[0].ContentHTML, "<strong>importante</strong>")

	w, _ = suite.do(http.MethodGet, "/api/blog/semana-de-inovacao", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	w, env = suite.do(http.MethodGet, "/api/admin/blog/posts?status=PUBLISHED&page=1&limit=5", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page struct {
		Total      int64                  `json:"total"`
		Pagination map[string]interface{} `json:"pagination"`
	}
	suite.decode(env, &page)
	suite.Equal(int64(1), page.Total)
	suite.EqualValues(5, page.Pagination["perPage"])

	w, _ = suite.do(http.MethodDelete, "/api/admin/blog/tags/"+tag.ID, suite.adminToken, nil)
	suite.Equal(http.StatusConflict, w.Code)

	w, env = suite.do(http.MethodPatch, "/api/admin/blog/posts/"+post.ID, suite.adminToken, models.PostStatusRequest{Status: models.PostArchived})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(env, &post)
	suite.Nil(post.PublishedAt)

	w, _ = suite.do(http.MethodGet, "/api/blog/semana-de-inovacao", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestPublicBlogCacheKeysIncludeAuthor() {
	suite.router = app.New(suite.cfg, suite.db, newMapCache(), suite.store).Router

	w, _ := suite.do(http.MethodPost, "/api/admin/blog/posts", suite.adminToken, models.BlogPostRequest{
		Title: "Do admin", Content: "x", Status: models.PostPublished,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	published := time.Now().UTC()
	editorPost := &models.BlogPost{Title: "Da editora", Slug: "da-editora", Content: "y", Status: models.PostPublished, PublishedAt: &published, AuthorID: suite.editorID}
	suite.Require().NoError(suite.db.Omit("Author", "Categories", "Tags").Create(editorPost).Error)

	total := func(path string) int64 {
		w, env := suite.do(http.MethodGet, path, "", nil)
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var list models.BlogListResponse
		suite.decode(env, &list)
		return list.Total
	}

	suite.Equal(int64(1), total("/api/blog?authorId="+suite.editorID))
	suite.Equal(int64(2), total("/api/blog"))
	suite.Equal(int64(1), total("/api/blog?authorId="+suite.adminID))
}

func (suite *IntegrationTestSuite) TestSettings() {
	w, env := suite.do(http.MethodPut, "/api/admin/settings/site", suite.adminToken, map[string]interface{}{
		"value": map[string]string{"title": "Iniva"},
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var setting models.Setting
	suite.decode(env, &setting)
	suite.JSONEq(`{"title":"Iniva"}`, string(setting.Value))

	w, _ = suite.do(http.MethodGet, "/api/admin/settings/site", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestUploadAndServe() {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	suite.Require().NoError(png.Encode(&buf, img))

	req := suite.multipart("/api/admin/upload", "file", "logo.png", buf.Bytes())
	w, env := suite.serve(req, suite.adminToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var upload models.UploadResponse
	suite.decode(env, &upload)
	suite.Equal(2, upload.Width)

	w, _ = suite.do(http.MethodGet, upload.ImageURL, "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("image/png", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Cache-Control"), "immutable")
	suite.Equal("default-src 'none'", w.Header().Get("Content-Security-Policy"))

	w, _ = suite.do(http.MethodGet, "/api/uploads/..%2Fsecret", "", nil)
	suite.NotEqual(http.StatusOK, w.Code)

	req = suite.multipart("/api/admin/upload", "file", "notes.png", []byte("plain text, not an image"))
	w, _ = suite.serve(req, suite.adminToken)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) TestExportImportRoundTrip() {
	suite.createHub("Hub Centro", true)

	req, err := http.NewRequest(http.MethodGet, "/api/admin/export", nil)
	suite.Require().NoError(err)
	w, _ := suite.serve(req, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), "data-export.json")
	exported := w.Body.Bytes()

	suite.createHub("Hub Extra", true)

	req = suite.multipart("/api/admin/import-data", "dataFile", "data-export.json", exported)
	w, env := suite.serve(req, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Success bool `json:"success"`
		Summary struct {
			Hubs  int `json:"hubs"`
			Users int `json:"users"`
		} `json:"summary"`
	}
	suite.decode(env, &result)
	suite.True(result.Success)
	suite.Equal(1, result.Summary.Hubs)

	w, env = suite.do(http.MethodGet, "/api/admin/hubs", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var hubs []models.Hub
	suite.decode(env, &hubs)
	suite.Require().Len(hubs, 1)
	suite.Equal("Hub Centro", hubs[0].Name)

	// The caller's session stays valid after the import.
	w, _ = suite.do(http.MethodGet, "/api/auth/me", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	req = suite.multipart("/api/admin/import-data", "dataFile", "bad.json", []byte(`{"hubs": []}`))
	w, _ = suite.serve(req, suite.adminToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	w, _ = suite.do(http.MethodPost, "/api/admin/import-data", suite.editorToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *IntegrationTestSuite) TestStats() {
	suite.createHub("Hub Centro", true)

	w, env := suite.do(http.MethodGet, "/api/admin/stats", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var stats models.Stats
	suite.decode(env, &stats)
	suite.Equal(int64(2), stats.Users)
	suite.Equal(int64(1), stats.Hubs)
}

func (suite *IntegrationTestSuite) multipart(path, field, filename string, content []byte) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req, err := http.NewRequest(http.MethodPost, path, &body)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type mapCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string][]byte{}}
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mapCache) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			delete(m.values, k)
		}
	}
	return nil
}

func (m *mapCache) Close() error { return nil }

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
