package middleware

import (
	"strings"

	"iniva-cms/helper"
	"iniva-cms/models"

	"github.com/gin-gonic/gin"
)

var HTTPHelper = helper.NewHTTPHelper()

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

type TokenParser interface {
	ParseToken(tokenString string) (*models.Claims, error)
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HTTPHelper.SendUnauthorizedError(c, "Authorization header required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Invalid token", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextRole)
		if !exists {
			HTTPHelper.SendUnauthorizedError(c, "User role not found", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		role, _ := userRole.(models.UserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		HTTPHelper.SendForbiddenError(c, "Insufficient permissions", HTTPHelper.EmptyJsonMap())
		c.Abort()
	}
}

// CurrentUserID returns the id of the authenticated caller.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// CurrentRole returns the role of the authenticated caller.
func CurrentRole(c *gin.Context) models.UserRole {
	role, _ := c.Get(ContextRole)
	r, _ := role.(models.UserRole)
	return r
}
