// Package enrich joins a workflow graph's app names against the pricing
// catalog and projects each match down to the summary the ROI math and
// UI consume. Pricing is an enhancement, never a hard dependency: every
// failure path degrades to "no pricing data" instead of raising.
package enrich

import (
	"context"

	"github.com/apicus/roi-engine/common/models"
)

// Catalog is the persistence collaborator's query surface. Results carry
// no ordering guarantee and may contain duplicate slugs.
type Catalog interface {
	FindPricingBySlug(ctx context.Context, slugs []string) ([]models.PricingRecord, error)
}

// AppSlugs returns the distinct slugs of the graph's app names in
// first-seen order.
func AppSlugs(graph models.WorkflowGraph) []string {
	seen := make(map[string]bool)
	var slugs []string
	for _, n := range graph.Nodes {
		slug := Slugify(n.AppName)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}
	return slugs
}

// Enrich batch-queries the catalog for the graph's app slugs and returns
// summaries keyed by the catalog's own record id rather than the slug:
// multiple display names may canonicalize to the same record and callers
// join summaries back to node app names themselves.
//
// A failed query or zero matches yields an empty map; the graph itself
// is never modified and no error reaches the ROI path. Duplicate slugs
// in the result resolve deterministically to the first match.
func Enrich(ctx context.Context, catalog Catalog, graph models.WorkflowGraph) map[string]models.AppPricingSummary {
	slugs := AppSlugs(graph)
	if len(slugs) == 0 || catalog == nil {
		return map[string]models.AppPricingSummary{}
	}

	records, err := catalog.FindPricingBySlug(ctx, slugs)
	if err != nil || len(records) == 0 {
		return map[string]models.AppPricingSummary{}
	}

	seenSlug := make(map[string]bool, len(records))
	summaries := make(map[string]models.AppPricingSummary, len(records))
	for _, rec := range records {
		if seenSlug[rec.AppSlug] {
			continue
		}
		seenSlug[rec.AppSlug] = true
		summaries[rec.ID] = Summarize(rec)
	}

	return summaries
}

// Summarize projects a full catalog record down to the ROI-relevant
// summary. Tiers with no published price are "contact sales" tiers:
// excluded from the min/max comparison, not treated as zero.
func Summarize(rec models.PricingRecord) models.AppPricingSummary {
	var lowest, highest *float64
	for _, tier := range rec.PricingTiers {
		if tier.MonthlyPrice == nil {
			continue
		}
		price := *tier.MonthlyPrice
		if lowest == nil || price < *lowest {
			p := price
			lowest = &p
		}
		if highest == nil || price > *highest {
			p := price
			highest = &p
		}
	}

	return models.AppPricingSummary{
		HasFreeTier:          rec.HasFreeTier,
		LowestMonthlyPrice:   lowest,
		HighestMonthlyPrice:  highest,
		TierCount:            len(rec.PricingTiers),
		HasUsageBasedPricing: len(rec.UsageBasedPricing) > 0,
		HasAIFeatures:        len(rec.AISpecificPricing) > 0,
		PriceModelType:       priceModelType(rec),
	}
}

// priceModelType classifies how an app charges: usage-based when metered
// rates dominate, free when nothing has a price, flat for a single paid
// tier, tiered otherwise.
func priceModelType(rec models.PricingRecord) string {
	paid := 0
	for _, tier := range rec.PricingTiers {
		if tier.MonthlyPrice != nil && *tier.MonthlyPrice > 0 {
			paid++
		}
	}

	switch {
	case len(rec.UsageBasedPricing) > 0 && paid == 0:
		return "usage-based"
	case paid == 0:
		return "free"
	case paid == 1:
		return "flat"
	default:
		return "tiered"
	}
}
