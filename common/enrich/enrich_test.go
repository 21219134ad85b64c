package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apicus/roi-engine/common/models"
)

// stubCatalog returns canned records or a canned error
type stubCatalog struct {
	records []models.PricingRecord
	err     error
	queried []string
}

func (s *stubCatalog) FindPricingBySlug(ctx context.Context, slugs []string) ([]models.PricingRecord, error) {
	s.queried = slugs
	return s.records, s.err
}

func price(v float64) *float64 { return &v }

func graphWith(appNames ...string) models.WorkflowGraph {
	g := models.WorkflowGraph{}
	for i, name := range appNames {
		g.Nodes = append(g.Nodes, models.GraphNode{
			ID:      string(rune('a' + i)),
			Role:    models.RoleAction,
			AppName: name,
		})
	}
	return g
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Slack", "slack"},
		{"Google Sheets", "google-sheets"},
		{"  Flow Control  ", "flow-control"},
		{"OpenAI (GPT-4)", "openai-gpt-4"},
		{"Émail!", "mail"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in))
	}
}

func TestAppSlugsFirstSeenDistinct(t *testing.T) {
	g := graphWith("Slack", "OpenAI", "Slack", "", "Google Sheets")
	assert.Equal(t, []string{"slack", "openai", "google-sheets"}, AppSlugs(g))
}

func TestEnrichHappyPath(t *testing.T) {
	catalog := &stubCatalog{
		records: []models.PricingRecord{
			{
				ID:      "rec-slack",
				AppSlug: "slack",
				PricingTiers: []models.CatalogTier{
					{Name: "Free", MonthlyPrice: price(0)},
					{Name: "Pro", MonthlyPrice: price(8.75)},
				},
				HasFreeTier: true,
			},
		},
	}

	got := Enrich(context.Background(), catalog, graphWith("Slack", "OpenAI"))

	assert.Equal(t, []string{"slack", "openai"}, catalog.queried)
	require.Len(t, got, 1)
	summary, ok := got["rec-slack"]
	require.True(t, ok)
	assert.True(t, summary.HasFreeTier)
	assert.InDelta(t, 8.75, *summary.HighestMonthlyPrice, 1e-9)
}

func TestEnrichDegradesToEmpty(t *testing.T) {
	g := graphWith("Slack")

	// Catalog failure
	got := Enrich(context.Background(), &stubCatalog{err: errors.New("connection refused")}, g)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	// Zero matches
	got = Enrich(context.Background(), &stubCatalog{}, g)
	assert.Empty(t, got)

	// Nil catalog
	got = Enrich(context.Background(), nil, g)
	assert.Empty(t, got)

	// Graph with no app names
	got = Enrich(context.Background(), &stubCatalog{}, models.WorkflowGraph{})
	assert.Empty(t, got)
}

func TestEnrichDuplicateSlugResolvesToFirstMatch(t *testing.T) {
	catalog := &stubCatalog{
		records: []models.PricingRecord{
			{ID: "rec-1", AppSlug: "slack", PricingTiers: []models.CatalogTier{{Name: "Pro", MonthlyPrice: price(10)}}},
			{ID: "rec-2", AppSlug: "slack", PricingTiers: []models.CatalogTier{{Name: "Pro", MonthlyPrice: price(99)}}},
		},
	}

	got := Enrich(context.Background(), catalog, graphWith("Slack"))

	require.Len(t, got, 1)
	_, ok := got["rec-1"]
	assert.True(t, ok)
}

func TestSummarizeSkipsContactSalesTiers(t *testing.T) {
	rec := models.PricingRecord{
		PricingTiers: []models.CatalogTier{
			{Name: "Free", MonthlyPrice: price(0)},
			{Name: "Team", MonthlyPrice: price(30)},
			{Name: "Enterprise", MonthlyPrice: nil}, // contact sales
		},
	}

	got := Summarize(rec)

	require.NotNil(t, got.LowestMonthlyPrice)
	require.NotNil(t, got.HighestMonthlyPrice)
	assert.Zero(t, *got.LowestMonthlyPrice)
	assert.InDelta(t, 30.0, *got.HighestMonthlyPrice, 1e-9)
	assert.Equal(t, 3, got.TierCount)
}

func TestSummarizeAllTiersUnpublished(t *testing.T) {
	rec := models.PricingRecord{
		PricingTiers: []models.CatalogTier{{Name: "Enterprise", MonthlyPrice: nil}},
	}

	got := Summarize(rec)

	assert.Nil(t, got.LowestMonthlyPrice)
	assert.Nil(t, got.HighestMonthlyPrice)
	assert.Equal(t, 1, got.TierCount)
}

func TestPriceModelType(t *testing.T) {
	tests := []struct {
		name string
		rec  models.PricingRecord
		want string
	}{
		{
			"usage based",
			models.PricingRecord{UsageBasedPricing: []models.UsageRate{{Unit: "token", Price: 0.002}}},
			"usage-based",
		},
		{
			"free",
			models.PricingRecord{PricingTiers: []models.CatalogTier{{MonthlyPrice: price(0)}}},
			"free",
		},
		{
			"flat",
			models.PricingRecord{PricingTiers: []models.CatalogTier{{MonthlyPrice: price(12)}}},
			"flat",
		},
		{
			"tiered",
			models.PricingRecord{PricingTiers: []models.CatalogTier{
				{MonthlyPrice: price(10)}, {MonthlyPrice: price(25)},
			}},
			"tiered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.rec).PriceModelType)
		})
	}
}
