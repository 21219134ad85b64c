// Package roi computes the full return-on-investment metric set for a
// workflow. Every function here is pure and total: finite, valid inputs
// always produce a finite result (payback period being the one field
// where +Inf is itself a legitimate domain value). NaN never escapes.
package roi

import (
	"math"

	"github.com/apicus/roi-engine/common/models"
	"github.com/apicus/roi-engine/common/pricing"
)

// TimeValue is the monthly dollar value of time saved:
// (runs * minutes / 60) * hourlyRate * taskMultiplier.
func TimeValue(s models.ROISettings) float64 {
	return (s.RunsPerMonth * s.MinutesPerRun / 60) * s.HourlyRate * s.TaskMultiplier
}

// RiskValue is the monthly value of errors avoided. RiskLevel is
// normalized against 3, the intended severity midpoint of the 1-5 range.
func RiskValue(s models.ROISettings) float64 {
	if !s.ComplianceEnabled {
		return 0
	}
	return s.RunsPerMonth * (s.RiskFrequency / 100) * s.ErrorCost * (float64(s.RiskLevel) / 3)
}

// RevenueValue is the monthly revenue uplift attributed to the workflow.
func RevenueValue(s models.ROISettings) float64 {
	if !s.RevenueEnabled {
		return 0
	}
	return s.MonthlyVolume * (s.ConversionRate / 100) * s.ValuePerConversion
}

// Ratio is totalValue/platformCost, defined as 0 when cost is 0 so the
// output stays finite and UI-safe instead of shooting to infinity.
func Ratio(totalValue, platformCost float64) float64 {
	if platformCost > 0 {
		return totalValue / platformCost
	}
	return 0
}

// PaybackDays converts monthly cost and net ROI into days to break even.
// Non-positive net ROI means the workflow never pays for itself: +Inf.
func PaybackDays(platformCost, netROI float64) float64 {
	if netROI > 0 {
		return (platformCost / netROI) * 30
	}
	return math.Inf(1)
}

// Compute is the single entry point every caller needs: it derives the
// complete metric set from a graph, a settings object, and the platform
// schedules. Settings are clamped, never rejected, so a preview renders
// for any structurally valid input.
func Compute(graph models.WorkflowGraph, settings models.ROISettings, schedules pricing.Schedules) models.ROIResult {
	s := settings.Clamped()

	timeValue := TimeValue(s)
	riskValue := RiskValue(s)
	revenueValue := RevenueValue(s)
	totalValue := timeValue + riskValue + revenueValue

	units := schedules.UnitsPerMonth(s.Platform, s.RunsPerMonth, float64(graph.StepCount()))
	cost := schedules.Cost(s.Platform, units)

	netROI := totalValue - cost.Cost
	ratio := Ratio(totalValue, cost.Cost)
	payback := PaybackDays(cost.Cost, netROI)

	return models.ROIResult{
		TimeValue:         timeValue,
		RiskValue:         riskValue,
		RevenueValue:      revenueValue,
		TotalValue:        totalValue,
		PlatformCost:      cost.Cost,
		NetROI:            netROI,
		ROIRatio:          ratio,
		PaybackPeriodDays: payback,
		TierUsed:          cost.TierName,
		RatioLabel:        FormatRatio(ratio),
		PaybackLabel:      FormatPayback(payback),
	}
}
