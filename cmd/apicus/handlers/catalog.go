package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/apicus/roi-engine/cmd/apicus/service"
)

// CatalogHandler handles pricing catalog queries and sync
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
	}
}

// ListApps retrieves catalog records, optionally filtered by slug
// GET /api/v1/catalog/apps?slugs=slack,openai
func (h *CatalogHandler) ListApps(c echo.Context) error {
	var slugs []string
	if raw := c.QueryParam("slugs"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				slugs = append(slugs, s)
			}
		}
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	records, err := h.catalog.ListApps(c.Request().Context(), slugs, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"apps":  records,
		"count": len(records),
	})
}

// SyncCatalog pulls the remote pricing feed into the local catalog
// POST /api/v1/catalog/sync
func (h *CatalogHandler) SyncCatalog(c echo.Context) error {
	synced, err := h.catalog.Sync(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]interface{}{
			"error":  err.Error(),
			"synced": synced,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"synced": synced,
	})
}
