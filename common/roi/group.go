package roi

import (
	"github.com/apicus/roi-engine/common/models"
	"github.com/apicus/roi-engine/common/pricing"
)

// groupStepsPerRun is the fixed step count used when billing a group's
// platform cost. Platform billing is workflow-level, not group-level, so
// the rollup assumes a typical workflow shape instead of the subset's
// actual step count.
const groupStepsPerRun = 5

// GroupMetrics is the rolled-up metric set for an arbitrary node subset.
type GroupMetrics struct {
	TotalMinutesSaved float64 `json:"total_minutes_saved"`
	TimeValue         float64 `json:"time_value"`
	PlatformCost      float64 `json:"platform_cost"`
	NetROI            float64 `json:"net_roi"`
	ROIRatio          float64 `json:"roi_ratio"`
	NodeCount         int     `json:"node_count"`
}

// AggregateGroup rolls up time and ROI metrics over exactly the nodes in
// nodeIDs, summing per-node time attribution against the full graph and
// feeding the sum through the calculator. Read-only: safe to call
// concurrently from independent UI views with no coordination.
func AggregateGroup(graph models.WorkflowGraph, nodeIDs []string, settings models.ROISettings, schedules pricing.Schedules) GroupMetrics {
	s := settings.Clamped()

	member := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		member[id] = true
	}

	var minutes float64
	var count int
	for _, n := range graph.Nodes {
		if !member[n.ID] {
			continue
		}
		minutes += NodeMinutes(n, graph.Nodes, s.MinutesPerRun)
		count++
	}

	timeValue := (s.RunsPerMonth * minutes / 60) * s.HourlyRate * s.TaskMultiplier

	units := schedules.UnitsPerMonth(s.Platform, s.RunsPerMonth, groupStepsPerRun)
	cost := schedules.Cost(s.Platform, units)

	return GroupMetrics{
		TotalMinutesSaved: minutes,
		TimeValue:         timeValue,
		PlatformCost:      cost.Cost,
		NetROI:            timeValue - cost.Cost,
		ROIRatio:          Ratio(timeValue, cost.Cost),
		NodeCount:         count,
	}
}
