package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/apicus/roi-engine/cmd/apicus/container"
	"github.com/apicus/roi-engine/cmd/apicus/handlers"
	apimiddleware "github.com/apicus/roi-engine/common/middleware"
	"github.com/apicus/roi-engine/common/ratelimit"
)

// RegisterTemplateRoutes registers all template-related routes
func RegisterTemplateRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewTemplateHandler(c.TemplateService)

	templates := e.Group("/api/v1/templates")
	{
		importHandlers := []echo.MiddlewareFunc{}
		if c.RateLimiter != nil {
			importHandlers = append(importHandlers,
				apimiddleware.EndpointRateLimitMiddleware(c.RateLimiter, ratelimit.EndpointImport))
		}

		templates.POST("/import", h.ImportTemplate, importHandlers...) // POST /api/v1/templates/import
		templates.GET("", h.ListTemplates)                             // GET /api/v1/templates
		templates.GET("/:id", h.GetTemplate)                           // GET /api/v1/templates/:id
		templates.PATCH("/:id", h.PatchTemplate)                       // PATCH /api/v1/templates/:id
	}
}
