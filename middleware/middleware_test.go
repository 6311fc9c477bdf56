package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"iniva-cms/cache"
	"iniva-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens map[string]*models.Claims

func (f fakeTokens) ParseToken(token string) (*models.Claims, error) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

type recordingCache struct {
	cache.NoopCache
	prefixes []string
}

func (r *recordingCache) DeletePrefix(_ context.Context, prefix string) error {
	r.prefixes = append(r.prefixes, prefix)
	return nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAndRoles(t *testing.T) {
	tokens := fakeTokens{
		"admin":  {UserID: "u1", Email: "admin@iniva.org", Role: models.RoleAdmin},
		"editor": {UserID: "u2", Email: "editor@iniva.org", Role: models.RoleEditor},
	}

	r := gin.New()
	authed := r.Group("/", AuthMiddleware(tokens))
	authed.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c)+":"+string(CurrentRole(c)))
	})
	authed.GET("/staff", RequireRole(models.RoleAdmin, models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"missing header", "/me", "", http.StatusUnauthorized, "Authorization header required"},
		{"not bearer", "/me", "Basic abc", http.StatusUnauthorized, "Bearer token required"},
		{"unknown token", "/me", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"valid token", "/me", "Bearer editor", http.StatusOK, "u2:EDITOR"},
		{"role allowed", "/staff", "Bearer admin", http.StatusNoContent, ""},
		{"role denied", "/staff", "Bearer editor", http.StatusForbidden, "Insufficient permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodGet, tt.path, tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/staff", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := perform(r, http.MethodGet, "/staff", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "buckets are per client")
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1)
	r := gin.New()
	r.POST("/contacts", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/contacts", "").Code)

	w := perform(r, http.MethodPost, "/contacts", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "tooManyRequests")
}

func TestInvalidatePublicCache(t *testing.T) {
	c := &recordingCache{}
	r := gin.New()
	g := r.Group("/", InvalidatePublicCache(c))
	g.GET("/hubs", func(c *gin.Context) { c.Status(http.StatusOK) })
	g.POST("/hubs", func(c *gin.Context) { c.Status(http.StatusCreated) })
	g.DELETE("/hubs/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	perform(r, http.MethodGet, "/hubs", "")
	assert.Empty(t, c.prefixes)

	perform(r, http.MethodDelete, "/hubs/missing", "")
	assert.Empty(t, c.prefixes, "failed writes keep the cache")

	perform(r, http.MethodPost, "/hubs", "")
	require.Len(t, c.prefixes, 1)
	assert.Equal(t, cache.PublicPrefix, c.prefixes[0])
}

func TestLoggerAndRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), Logger(), CORS())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internalError")

	w = perform(r, http.MethodGet, "/ok", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(r, http.MethodOptions, "/ok", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
