package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/apicus/roi-engine/cmd/apicus/repository"
	"github.com/apicus/roi-engine/common/formula"
	"github.com/apicus/roi-engine/common/logger"
	"github.com/apicus/roi-engine/common/models"
	"github.com/apicus/roi-engine/common/pricing"
	"github.com/apicus/roi-engine/common/roi"
)

// ROIService computes ROI previews, group rollups and alert formulas
// over either an inline graph or a stored template.
type ROIService struct {
	templates *repository.TemplateRepository
	schedules pricing.Schedules
	evaluator *formula.Evaluator
	log       *logger.Logger
}

// NewROIService creates a new ROI service
func NewROIService(templates *repository.TemplateRepository, evaluator *formula.Evaluator, log *logger.Logger) *ROIService {
	return &ROIService{
		templates: templates,
		schedules: pricing.Default(),
		evaluator: evaluator,
		log:       log,
	}
}

// resolveGraph picks the inline graph when present, otherwise loads the
// referenced template's graph.
func (s *ROIService) resolveGraph(ctx context.Context, graph *models.WorkflowGraph, templateID *uuid.UUID) (models.WorkflowGraph, error) {
	if graph != nil {
		if err := graph.Validate(); err != nil {
			return models.WorkflowGraph{}, fmt.Errorf("invalid graph: %w", err)
		}
		return *graph, nil
	}

	if templateID == nil {
		return models.WorkflowGraph{}, fmt.Errorf("either graph or template_id is required")
	}

	tpl, err := s.templates.GetByID(ctx, *templateID)
	if err != nil {
		return models.WorkflowGraph{}, err
	}

	return tpl.Graph(), nil
}

// Preview computes a full ROI result for a graph and settings
func (s *ROIService) Preview(ctx context.Context, graph *models.WorkflowGraph, templateID *uuid.UUID, settings models.ROISettings) (models.ROIResult, error) {
	g, err := s.resolveGraph(ctx, graph, templateID)
	if err != nil {
		return models.ROIResult{}, err
	}

	return roi.Compute(g, settings, s.schedules), nil
}

// NodeBreakdown attributes the workflow's saved minutes across nodes
func (s *ROIService) NodeBreakdown(ctx context.Context, graph *models.WorkflowGraph, templateID *uuid.UUID, settings models.ROISettings) (map[string]float64, error) {
	g, err := s.resolveGraph(ctx, graph, templateID)
	if err != nil {
		return nil, err
	}

	settings = settings.Clamped()
	minutes := make(map[string]float64, len(g.Nodes))
	for _, node := range g.Nodes {
		minutes[node.ID] = roi.NodeMinutes(node, g.Nodes, settings.MinutesPerRun)
	}
	return minutes, nil
}

// Groups computes rollup metrics for a named subset of nodes
func (s *ROIService) Groups(ctx context.Context, graph *models.WorkflowGraph, templateID *uuid.UUID, nodeIDs []string, settings models.ROISettings) (roi.GroupMetrics, error) {
	g, err := s.resolveGraph(ctx, graph, templateID)
	if err != nil {
		return roi.GroupMetrics{}, err
	}

	if len(nodeIDs) == 0 {
		return roi.GroupMetrics{}, fmt.Errorf("node_ids is required")
	}

	return roi.AggregateGroup(g, nodeIDs, settings, s.schedules), nil
}

// EvalAlert computes an ROI result and evaluates a boolean formula over it
func (s *ROIService) EvalAlert(ctx context.Context, graph *models.WorkflowGraph, templateID *uuid.UUID, settings models.ROISettings, expression string) (bool, models.ROIResult, error) {
	if expression == "" {
		return false, models.ROIResult{}, fmt.Errorf("formula is required")
	}

	result, err := s.Preview(ctx, graph, templateID, settings)
	if err != nil {
		return false, models.ROIResult{}, err
	}

	fired, err := s.evaluator.Evaluate(expression, result)
	if err != nil {
		return false, result, fmt.Errorf("failed to evaluate formula: %w", err)
	}

	return fired, result, nil
}
