package service

import (
	"context"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"

	"github.com/apicus/roi-engine/cmd/apicus/repository"
	"github.com/apicus/roi-engine/common/importer"
	"github.com/apicus/roi-engine/common/logger"
	"github.com/apicus/roi-engine/common/models"
	"github.com/apicus/roi-engine/common/validation"
	"github.com/apicus/roi-engine/common/worker"
)

// TemplateService handles template import, retrieval and patching
type TemplateService struct {
	repo      *repository.TemplateRepository
	enricher  *worker.EnrichmentWorker
	validator *validation.PatchValidator
	log       *logger.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(repo *repository.TemplateRepository, enricher *worker.EnrichmentWorker, log *logger.Logger) *TemplateService {
	return &TemplateService{
		repo:      repo,
		enricher:  enricher,
		validator: validation.NewPatchValidator(),
		log:       log,
	}
}

// Import normalizes a raw blueprint into a canonical template, persists
// it, and queues pricing enrichment. The import succeeds even when the
// enrichment job cannot be queued; pricing is an enhancement.
func (s *TemplateService) Import(ctx context.Context, raw []byte, title, createdBy string) (*models.Template, error) {
	tpl, err := importer.Import(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to import blueprint: %w", err)
	}

	if title != "" {
		tpl.Title = title
	}
	if createdBy != "" {
		tpl.CreatedBy = &createdBy
	}

	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to persist template: %w", err)
	}

	if err := s.enricher.Enqueue(ctx, tpl.TemplateID); err != nil {
		s.log.WithTemplateID(tpl.TemplateID.String()).Warn("failed to queue enrichment", "error", err)
	}

	s.log.Info("imported template",
		"template_id", tpl.TemplateID,
		"title", tpl.Title,
		"steps", tpl.StepCount,
		"apps", len(tpl.AppIDs),
	)

	return tpl, nil
}

// Get retrieves a template by id
func (s *TemplateService) Get(ctx context.Context, templateID uuid.UUID) (*models.Template, error) {
	return s.repo.GetByID(ctx, templateID)
}

// List retrieves templates, newest first
func (s *TemplateService) List(ctx context.Context, limit, offset int) ([]*models.Template, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Patch applies an RFC 6902 patch to a stored template document.
// Identity fields are protected; the patched graph must still validate.
func (s *TemplateService) Patch(ctx context.Context, templateID uuid.UUID, operations []map[string]interface{}) (*models.Template, error) {
	if err := s.validator.ValidateOperations(operations); err != nil {
		return nil, err
	}

	tpl, err := s.repo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	doc, err := json.Marshal(tpl)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}

	patchDoc, err := json.Marshal(operations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch: %w", err)
	}

	patch, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, fmt.Errorf("invalid patch document: %w", err)
	}

	patched, err := patch.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to apply patch: %w", err)
	}

	updated := &models.Template{}
	if err := json.Unmarshal(patched, updated); err != nil {
		return nil, fmt.Errorf("patched document is not a valid template: %w", err)
	}

	// Identity survives regardless of what the patch claimed
	updated.TemplateID = tpl.TemplateID
	updated.CreatedBy = tpl.CreatedBy
	updated.CreatedAt = tpl.CreatedAt
	updated.PricingSummary = tpl.PricingSummary

	graph := updated.Graph()
	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("patched graph is invalid: %w", err)
	}
	updated.StepCount = graph.StepCount()

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.log.Info("patched template",
		"template_id", templateID,
		"operations", len(operations),
	)

	return updated, nil
}
