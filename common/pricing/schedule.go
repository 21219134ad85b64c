// Package pricing holds the per-platform tier schedules and the cost
// function the ROI calculator bills platform usage with. Schedules are
// immutable configuration: loaded once and passed explicitly into every
// calculation so the math stays testable and reentrant.
package pricing

import "github.com/apicus/roi-engine/common/models"

// Tier is one plan level of a platform schedule. IncludedQuota 0 means
// the tier is unlimited (flat price).
type Tier struct {
	Name          string  `json:"name"`
	MonthlyCost   float64 `json:"monthly_cost"`
	IncludedQuota float64 `json:"included_quota"`
}

// Schedule is the billing convention of one automation platform.
//
// Platforms disagree on what a billable unit is: Zapier and Make bill
// per-step invocations (tasks/operations), n8n bills per workflow
// execution regardless of step count. PerStepBilling captures that so
// callers never hardcode platform logic inline.
type Schedule struct {
	Platform       models.Platform `json:"platform"`
	Unit           string          `json:"unit"`
	PerStepBilling bool            `json:"per_step_billing"`

	// OveragePerUnit prices units beyond the top tier's quota. Zero means
	// excess is treated as included in the top tier's flat cost.
	OveragePerUnit float64 `json:"overage_per_unit"`

	// Tiers in ascending quota order; evaluated first-match.
	Tiers []Tier `json:"tiers"`
}

// Schedules maps platforms to their billing schedules.
type Schedules map[models.Platform]Schedule

// Default returns the built-in schedule set. Figures track each
// platform's published plans closely enough for modeling; bit-exact
// billing parity is a non-goal.
func Default() Schedules {
	return Schedules{
		models.PlatformZapier: {
			Platform:       models.PlatformZapier,
			Unit:           "tasks",
			PerStepBilling: true,
			OveragePerUnit: 0.04,
			Tiers: []Tier{
				{Name: "Free", MonthlyCost: 0, IncludedQuota: 100},
				{Name: "Starter", MonthlyCost: 19.99, IncludedQuota: 750},
				{Name: "Professional", MonthlyCost: 49, IncludedQuota: 2000},
				{Name: "Team", MonthlyCost: 69, IncludedQuota: 50000},
			},
		},
		models.PlatformMake: {
			Platform:       models.PlatformMake,
			Unit:           "operations",
			PerStepBilling: true,
			OveragePerUnit: 0.002,
			Tiers: []Tier{
				{Name: "Free", MonthlyCost: 0, IncludedQuota: 1000},
				{Name: "Core", MonthlyCost: 9, IncludedQuota: 10000},
				{Name: "Pro", MonthlyCost: 16, IncludedQuota: 20000},
				{Name: "Teams", MonthlyCost: 29, IncludedQuota: 40000},
			},
		},
		models.PlatformN8N: {
			Platform:       models.PlatformN8N,
			Unit:           "executions",
			PerStepBilling: false,
			Tiers: []Tier{
				{Name: "Starter", MonthlyCost: 20, IncludedQuota: 2500},
				{Name: "Pro", MonthlyCost: 50, IncludedQuota: 10000},
				// Quota 0 = unlimited, so the enterprise tier absorbs any volume.
				{Name: "Enterprise", MonthlyCost: 120, IncludedQuota: 0},
			},
		},
	}
}

// UnitsPerMonth converts run volume into the platform's billable units.
// Unknown platforms fall back to per-execution accounting.
func (s Schedules) UnitsPerMonth(platform models.Platform, runsPerMonth, stepsPerRun float64) float64 {
	sched, ok := s[platform]
	if ok && sched.PerStepBilling {
		return runsPerMonth * stepsPerRun
	}
	return runsPerMonth
}
