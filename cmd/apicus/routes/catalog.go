package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/apicus/roi-engine/cmd/apicus/container"
	"github.com/apicus/roi-engine/cmd/apicus/handlers"
	apimiddleware "github.com/apicus/roi-engine/common/middleware"
	"github.com/apicus/roi-engine/common/ratelimit"
)

// RegisterCatalogRoutes registers pricing catalog routes
func RegisterCatalogRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewCatalogHandler(c.CatalogService)

	catalog := e.Group("/api/v1/catalog")
	{
		catalog.GET("/apps", h.ListApps) // GET /api/v1/catalog/apps?slugs=...

		syncHandlers := []echo.MiddlewareFunc{}
		if c.RateLimiter != nil {
			syncHandlers = append(syncHandlers,
				apimiddleware.EndpointRateLimitMiddleware(c.RateLimiter, ratelimit.EndpointSync))
		}
		catalog.POST("/sync", h.SyncCatalog, syncHandlers...) // POST /api/v1/catalog/sync
	}
}
