package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/apicus/roi-engine/cmd/apicus/container"
	apimiddleware "github.com/apicus/roi-engine/cmd/apicus/middleware"
	"github.com/apicus/roi-engine/cmd/apicus/routes"
	"github.com/apicus/roi-engine/common/bootstrap"
	commonmiddleware "github.com/apicus/roi-engine/common/middleware"
)

func main() {
	ctx := context.Background()

	// Bootstrap common components (DB, logger, queue, cache, telemetry)
	components, err := bootstrap.Setup(ctx, "apicus")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap apicus: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	// Start the enrichment worker on the shared queue
	if err := serviceContainer.Enricher.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start enrichment worker: %v\n", err)
		os.Exit(1)
	}

	// Initialize Echo server
	e := setupEcho()

	// Setup middleware
	setupMiddleware(e, serviceContainer)

	// Setup health check
	setupHealthCheck(e)

	// Register all routes
	registerRoutes(e, serviceContainer)

	// Start server
	startServer(e, components)
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo, c *container.Container) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(apimiddleware.ExtractUsername())

	if c.RateLimiter != nil {
		e.Use(commonmiddleware.GlobalRateLimitMiddleware(
			c.RateLimiter,
			c.Components.Config.RateLimit.GlobalPerMinute,
		))
	}
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "ok",
			"service": "apicus",
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, serviceContainer *container.Container) {
	routes.RegisterTemplateRoutes(e, serviceContainer)
	routes.RegisterROIRoutes(e, serviceContainer)
	routes.RegisterCatalogRoutes(e, serviceContainer)
}

// startServer starts the Echo server on the configured port
func startServer(e *echo.Echo, components *bootstrap.Components) {
	port := components.Config.Service.Port
	components.Logger.Info("Starting apicus", "port", port)

	// Start with graceful shutdown
	if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
		components.Logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
