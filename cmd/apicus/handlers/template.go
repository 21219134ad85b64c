package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/apicus/roi-engine/cmd/apicus/middleware"
	apimodels "github.com/apicus/roi-engine/cmd/apicus/models"
	"github.com/apicus/roi-engine/cmd/apicus/repository"
	"github.com/apicus/roi-engine/cmd/apicus/service"
)

// TemplateHandler handles template import, retrieval and patching
type TemplateHandler struct {
	templates *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
	}
}

// ImportTemplate imports a raw platform blueprint
// POST /api/v1/templates/import
func (h *TemplateHandler) ImportTemplate(c echo.Context) error {
	var req apimodels.ImportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	if len(req.Blueprint) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "blueprint is required",
		})
	}

	tpl, err := h.templates.Import(c.Request().Context(), req.Blueprint, req.Title, middleware.GetUsername(c))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, tpl)
}

// GetTemplate retrieves a template by id
// GET /api/v1/templates/:id
func (h *TemplateHandler) GetTemplate(c echo.Context) error {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid template id",
		})
	}

	tpl, err := h.templates.Get(c.Request().Context(), templateID)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"error": "template not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, tpl)
}

// ListTemplates lists templates, newest first
// GET /api/v1/templates?limit=50&offset=0
func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	templates, err := h.templates.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"templates": templates,
		"count":     len(templates),
	})
}

// PatchTemplate applies an RFC 6902 patch to a stored template
// PATCH /api/v1/templates/:id
func (h *TemplateHandler) PatchTemplate(c echo.Context) error {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid template id",
		})
	}

	var req apimodels.PatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	tpl, err := h.templates.Patch(c.Request().Context(), templateID, req.Operations)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"error": "template not found",
			})
		}
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, tpl)
}
