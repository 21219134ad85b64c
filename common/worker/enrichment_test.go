package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apicus/roi-engine/common/logger"
	"github.com/apicus/roi-engine/common/models"
	"github.com/apicus/roi-engine/common/queue"
)

func price(v float64) *float64 { return &v }

type stubCatalog struct {
	records []models.PricingRecord
}

func (s *stubCatalog) FindPricingBySlug(ctx context.Context, slugs []string) ([]models.PricingRecord, error) {
	return s.records, nil
}

type stubStore struct {
	mu        sync.Mutex
	templates map[uuid.UUID]*models.Template
	saved     chan map[string]models.AppPricingSummary
}

func newStubStore() *stubStore {
	return &stubStore{
		templates: make(map[uuid.UUID]*models.Template),
		saved:     make(chan map[string]models.AppPricingSummary, 1),
	}
}

func (s *stubStore) GetByID(ctx context.Context, templateID uuid.UUID) (*models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.templates[templateID]
	if !ok {
		return nil, assert.AnError
	}
	return tpl, nil
}

func (s *stubStore) UpdatePricingSummary(ctx context.Context, templateID uuid.UUID, summary map[string]models.AppPricingSummary) error {
	s.saved <- summary
	return nil
}

func TestEnrichmentWorkerEndToEnd(t *testing.T) {
	log := logger.New("error", "json")
	q := queue.NewMemoryQueue(log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newStubStore()
	templateID := uuid.New()
	store.templates[templateID] = &models.Template{
		TemplateID: templateID,
		Nodes: []models.GraphNode{
			{ID: "n1", Role: models.RoleTrigger, AppName: "Slack"},
		},
	}

	catalog := &stubCatalog{records: []models.PricingRecord{
		{
			ID:      "rec-slack",
			AppSlug: "slack",
			PricingTiers: []models.CatalogTier{
				{Name: "Pro", MonthlyPrice: price(8.75)},
			},
		},
	}}

	w := NewEnrichmentWorker(q, catalog, store, log)
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Enqueue(ctx, templateID))

	select {
	case summary := <-store.saved:
		require.Len(t, summary, 1)
		got, ok := summary["rec-slack"]
		require.True(t, ok)
		require.NotNil(t, got.LowestMonthlyPrice)
		assert.InDelta(t, 8.75, *got.LowestMonthlyPrice, 1e-9)
	case <-time.After(2 * time.Second):
		t.Fatal("pricing summary never persisted")
	}
}

func TestEnrichmentWorkerCatalogMissDegradesToEmptySummary(t *testing.T) {
	log := logger.New("error", "json")
	q := queue.NewMemoryQueue(log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newStubStore()
	templateID := uuid.New()
	store.templates[templateID] = &models.Template{
		TemplateID: templateID,
		Nodes:      []models.GraphNode{{ID: "n1", Role: models.RoleTrigger, AppName: "Obscuro"}},
	}

	w := NewEnrichmentWorker(q, &stubCatalog{}, store, log)
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Enqueue(ctx, templateID))

	select {
	case summary := <-store.saved:
		assert.Empty(t, summary)
	case <-time.After(2 * time.Second):
		t.Fatal("pricing summary never persisted")
	}
}
