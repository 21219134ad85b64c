package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UsernameKey is the context key for storing the authenticated username
	UsernameKey ContextKey = "username"
)

// ExtractUsername is a middleware that extracts the X-User-ID header
// and stores it in the request context. Imports record it as the
// template's created_by attribution.
//
// Usage:
//   e := echo.New()
//   e.Use(middleware.ExtractUsername())
func ExtractUsername() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := c.Request().Header.Get("X-User-ID")

			// Anonymous imports are allowed; created_by stays null
			if username != "" {
				c.Set(string(UsernameKey), username)
			}

			return next(c)
		}
	}
}

// ExtractUsernameStrict is a stricter version that requires X-User-ID header
func ExtractUsernameStrict() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := c.Request().Header.Get("X-User-ID")

			if username == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": "X-User-ID header is required",
				})
			}

			c.Set(string(UsernameKey), username)
			return next(c)
		}
	}
}

// GetUsername retrieves the username from the echo context.
// Returns empty string if not set.
func GetUsername(c echo.Context) string {
	if username, ok := c.Get(string(UsernameKey)).(string); ok {
		return username
	}
	return ""
}
