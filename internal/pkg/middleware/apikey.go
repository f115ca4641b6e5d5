package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/internal/utils"
)

const (
	APIKeyHeader = "X-API-Key"
)

// APIKeyMiddleware validates API keys for internal and admin access
type APIKeyMiddleware struct {
	keys map[string]string
}

// NewAPIKeyMiddleware creates a new API key middleware from configuration
func NewAPIKeyMiddleware(cfg *models.APIKeyConfig) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		keys: map[string]string{
			"admin": cfg.AdminKey,
			"ops":   cfg.OpsKey,
		},
	}
}

// APIKeyHandler returns middleware that allows only the named callers
func (m *APIKeyMiddleware) APIKeyHandler(allowedCallers ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "API key is required")
			}

			// Check if the API key belongs to any of the allowed callers
			validKey := false
			for _, caller := range allowedCallers {
				expected := m.keys[caller]
				if expected != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1 {
					validKey = true
					break
				}
			}

			if !validKey {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
			}

			return next(c)
		}
	}
}
