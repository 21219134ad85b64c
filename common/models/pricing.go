package models

import "time"

// CatalogTier is one plan level of a catalog app's pricing. A nil
// MonthlyPrice means a "contact sales" tier with no published number.
type CatalogTier struct {
	Name         string   `json:"name"`
	MonthlyPrice *float64 `json:"monthly_price"`
	Features     []string `json:"features,omitempty"`
}

// UsageRate is a metered price component (e.g. per-task, per-token).
type UsageRate struct {
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
}

// PricingRecord is a full catalog entry for one app, as stored by the
// persistence collaborator.
type PricingRecord struct {
	ID                string           `json:"id"`
	AppSlug           string           `json:"app_slug"`
	AppName           string           `json:"app_name"`
	Currency          string           `json:"currency"`
	HasFreeTier       bool             `json:"has_free_tier"`
	HasFreeTrial      bool             `json:"has_free_trial"`
	PricingTiers      []CatalogTier    `json:"pricing_tiers"`
	UsageBasedPricing []UsageRate      `json:"usage_based_pricing,omitempty"`
	AISpecificPricing map[string]any   `json:"ai_specific_pricing,omitempty"`
	Metadata          map[string]any   `json:"original_app_metadata,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at,omitempty"`
}

// AppPricingSummary is the lossy projection of a PricingRecord that the
// ROI calculator and UI consume. Fields irrelevant to ROI math are
// intentionally dropped.
type AppPricingSummary struct {
	HasFreeTier          bool     `json:"has_free_tier"`
	LowestMonthlyPrice   *float64 `json:"lowest_monthly_price"`
	HighestMonthlyPrice  *float64 `json:"highest_monthly_price"`
	TierCount            int      `json:"tier_count"`
	HasUsageBasedPricing bool     `json:"has_usage_based_pricing"`
	HasAIFeatures        bool     `json:"has_ai_features"`
	PriceModelType       string   `json:"price_model_type"`
}
