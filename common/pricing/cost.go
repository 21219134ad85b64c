package pricing

import "github.com/apicus/roi-engine/common/models"

// CostResult is the selected tier and the resulting monthly cost.
type CostResult struct {
	TierName string  `json:"tier_name"`
	Cost     float64 `json:"cost"`
}

// Cost selects the cheapest tier that covers unitsPerMonth and returns
// its monthly cost.
//
// Tiers are evaluated in schedule order: the first tier whose quota is 0
// (unlimited) or >= unitsPerMonth wins. If every tier is finite and
// insufficient, the last tier is used and the excess is billed at the
// schedule's OveragePerUnit (zero rate means the excess is included in
// the flat tier cost).
//
// An unrecognized platform yields zero cost rather than an error; a live
// ROI preview must never crash on a lookup miss. Callers needing
// strictness validate platform membership upstream.
func (s Schedules) Cost(platform models.Platform, unitsPerMonth float64) CostResult {
	sched, ok := s[platform]
	if !ok || len(sched.Tiers) == 0 {
		return CostResult{}
	}

	if unitsPerMonth < 0 {
		unitsPerMonth = 0
	}

	for _, tier := range sched.Tiers {
		if tier.IncludedQuota == 0 || tier.IncludedQuota >= unitsPerMonth {
			return CostResult{TierName: tier.Name, Cost: tier.MonthlyCost}
		}
	}

	last := sched.Tiers[len(sched.Tiers)-1]
	excess := unitsPerMonth - last.IncludedQuota
	return CostResult{
		TierName: last.Name,
		Cost:     last.MonthlyCost + sched.OveragePerUnit*excess,
	}
}
