package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apimodels "github.com/apicus/roi-engine/cmd/apicus/models"
	"github.com/apicus/roi-engine/cmd/apicus/repository"
	"github.com/apicus/roi-engine/cmd/apicus/service"
)

// ROIHandler handles ROI preview, group rollup and alert evaluation
type ROIHandler struct {
	roi *service.ROIService
}

// NewROIHandler creates a new ROI handler
func NewROIHandler(roi *service.ROIService) *ROIHandler {
	return &ROIHandler{
		roi: roi,
	}
}

// Preview computes an ROI result for a graph or template
// POST /api/v1/roi/preview
func (h *ROIHandler) Preview(c echo.Context) error {
	var req apimodels.ROIPreviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	result, err := h.roi.Preview(c.Request().Context(), req.Graph, req.TemplateID, req.Settings)
	if err != nil {
		return roiError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// NodeBreakdown attributes saved minutes across the graph's nodes
// POST /api/v1/roi/nodes
func (h *ROIHandler) NodeBreakdown(c echo.Context) error {
	var req apimodels.ROIPreviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	minutes, err := h.roi.NodeBreakdown(c.Request().Context(), req.Graph, req.TemplateID, req.Settings)
	if err != nil {
		return roiError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"node_minutes": minutes,
	})
}

// Groups computes rollup metrics for a subset of nodes
// POST /api/v1/roi/groups
func (h *ROIHandler) Groups(c echo.Context) error {
	var req apimodels.GroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	metrics, err := h.roi.Groups(c.Request().Context(), req.Graph, req.TemplateID, req.NodeIDs, req.Settings)
	if err != nil {
		return roiError(c, err)
	}

	return c.JSON(http.StatusOK, metrics)
}

// EvalAlert evaluates a boolean formula over a computed ROI result
// POST /api/v1/roi/alerts/eval
func (h *ROIHandler) EvalAlert(c echo.Context) error {
	var req apimodels.AlertEvalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	fired, result, err := h.roi.EvalAlert(c.Request().Context(), req.Graph, req.TemplateID, req.Settings, req.Formula)
	if err != nil {
		return roiError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"fired":  fired,
		"result": result,
	})
}

func roiError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrTemplateNotFound) {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": "template not found",
		})
	}
	return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
		"error": err.Error(),
	})
}
