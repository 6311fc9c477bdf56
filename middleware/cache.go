package middleware

import (
	"context"
	"net/http"
	"time"

	"iniva-cms/cache"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// InvalidatePublicCache drops cached public listings after every successful
// write request handled by the group it is attached to.
func InvalidatePublicCache(c cache.Cache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		switch ctx.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		if ctx.Writer.Status() >= http.StatusBadRequest {
			return
		}

		bg, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.DeletePrefix(bg, cache.PublicPrefix); err != nil {
			log.Warn().Err(err).Msg("invalidate public cache")
		}
	}
}
