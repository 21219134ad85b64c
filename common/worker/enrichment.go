package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/apicus/roi-engine/common/enrich"
	"github.com/apicus/roi-engine/common/logger"
	"github.com/apicus/roi-engine/common/models"
	"github.com/apicus/roi-engine/common/queue"
)

// TemplateStore is the subset of the template repository the worker
// needs: load a graph and persist the pricing summary back.
type TemplateStore interface {
	GetByID(ctx context.Context, templateID uuid.UUID) (*models.Template, error)
	UpdatePricingSummary(ctx context.Context, templateID uuid.UUID, summary map[string]models.AppPricingSummary) error
}

// EnrichmentJob is the queue payload published once per import.
type EnrichmentJob struct {
	TemplateID uuid.UUID `json:"template_id"`
}

// EnrichmentWorker joins imported templates against the pricing
// catalog asynchronously. A failed join leaves the template without
// pricing data rather than failing the import.
type EnrichmentWorker struct {
	queue     queue.Queue
	catalog   enrich.Catalog
	templates TemplateStore
	logger    *logger.Logger
}

// NewEnrichmentWorker creates an enrichment worker
func NewEnrichmentWorker(q queue.Queue, catalog enrich.Catalog, templates TemplateStore, log *logger.Logger) *EnrichmentWorker {
	return &EnrichmentWorker{
		queue:     q,
		catalog:   catalog,
		templates: templates,
		logger:    log,
	}
}

// Start subscribes to the enrichment topic. Returns once the
// subscription is registered; processing happens on the queue's
// consumer goroutine until ctx is cancelled.
func (w *EnrichmentWorker) Start(ctx context.Context) error {
	if err := w.queue.Subscribe(ctx, queue.TopicEnrichmentJobs, w.handle); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", queue.TopicEnrichmentJobs, err)
	}
	w.logger.Info("enrichment worker started", "topic", queue.TopicEnrichmentJobs)
	return nil
}

// Enqueue publishes an enrichment job for a template
func (w *EnrichmentWorker) Enqueue(ctx context.Context, templateID uuid.UUID) error {
	payload, err := json.Marshal(EnrichmentJob{TemplateID: templateID})
	if err != nil {
		return fmt.Errorf("failed to marshal enrichment job: %w", err)
	}
	if err := w.queue.Publish(ctx, queue.TopicEnrichmentJobs, templateID.String(), payload); err != nil {
		return fmt.Errorf("failed to publish enrichment job: %w", err)
	}
	return nil
}

func (w *EnrichmentWorker) handle(ctx context.Context, key string, value []byte) error {
	var job EnrichmentJob
	if err := json.Unmarshal(value, &job); err != nil {
		w.logger.Error("invalid enrichment job payload", "key", key, "error", err)
		// Malformed payloads are dropped, not retried
		return nil
	}

	log := w.logger.WithTemplateID(job.TemplateID.String())

	tpl, err := w.templates.GetByID(ctx, job.TemplateID)
	if err != nil {
		log.Error("failed to load template for enrichment", "error", err)
		return err
	}

	summary := enrich.Enrich(ctx, w.catalog, tpl.Graph())
	if len(summary) == 0 {
		log.Warn("no pricing data matched template apps", "app_count", len(tpl.AppIDs))
	}

	if err := w.templates.UpdatePricingSummary(ctx, job.TemplateID, summary); err != nil {
		log.Error("failed to persist pricing summary", "error", err)
		return err
	}

	log.Info("template enriched", "apps_matched", len(summary))
	return nil
}
