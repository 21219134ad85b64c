package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/apicus/roi-engine/cmd/apicus/container"
	"github.com/apicus/roi-engine/cmd/apicus/handlers"
)

// RegisterROIRoutes registers all ROI computation routes
func RegisterROIRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewROIHandler(c.ROIService)

	roi := e.Group("/api/v1/roi")
	{
		roi.POST("/preview", h.Preview)        // POST /api/v1/roi/preview
		roi.POST("/nodes", h.NodeBreakdown)    // POST /api/v1/roi/nodes
		roi.POST("/groups", h.Groups)          // POST /api/v1/roi/groups
		roi.POST("/alerts/eval", h.EvalAlert)  // POST /api/v1/roi/alerts/eval
	}
}
