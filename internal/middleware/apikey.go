package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/sevaconnect/booking-api/internal/handler"
	"github.com/sevaconnect/booking-api/internal/repository"
)

const HeaderAPIKey = "X-API-Key"

// APIKeyMiddleware authenticates partner requests against keys in the CRM
// store. Validated keys are cached so the hot path skips the database; a key
// deactivated in the store keeps working until its cache entry expires, up
// to 5 minutes.
type APIKeyMiddleware struct {
	keys  repository.APIKeyRepository
	cache *cache.Cache
}

func NewAPIKeyMiddleware(keys repository.APIKeyRepository) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		keys:  keys,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (m *APIKeyMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAPIKey)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("missing X-API-Key header"))
			return
		}

		if _, ok := m.cache.Get(key); ok {
			c.Next()
			return
		}

		apiKey, err := m.keys.GetByKey(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, handler.NewErrorResponse("invalid API key"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to validate API key"))
			return
		}

		if !apiKey.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, handler.NewErrorResponse("API key is disabled"))
			return
		}

		if err := m.keys.Touch(c.Request.Context(), apiKey.ID); err != nil {
			log.Warn().Err(err).Msg("failed to update api key last_used_at")
		}

		m.cache.Set(key, apiKey.ID, cache.DefaultExpiration)
		c.Next()
	}
}
