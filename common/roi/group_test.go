package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apicus/roi-engine/common/models"
	"github.com/apicus/roi-engine/common/pricing"
)

func TestAggregateGroupSubset(t *testing.T) {
	graph := models.WorkflowGraph{
		Nodes: []models.GraphNode{
			{ID: "t", Role: models.RoleTrigger},
			{ID: "a1", Role: models.RoleAction},
			{ID: "a2", Role: models.RoleAction},
			{ID: "d", Role: models.RoleDecision},
		},
	}
	settings := models.ROISettings{
		RunsPerMonth:   100,
		MinutesPerRun:  6,
		HourlyRate:     40,
		TaskMultiplier: 1,
		Platform:       models.PlatformN8N,
		RiskLevel:      3,
	}
	schedules := pricing.Default()

	got := AggregateGroup(graph, []string{"a1", "a2"}, settings, schedules)

	wantMinutes := NodeMinutes(graph.Nodes[1], graph.Nodes, 6) + NodeMinutes(graph.Nodes[2], graph.Nodes, 6)
	assert.Equal(t, 2, got.NodeCount)
	assert.InDelta(t, wantMinutes, got.TotalMinutesSaved, 1e-9)

	wantTimeValue := (100 * wantMinutes / 60) * 40
	assert.InDelta(t, wantTimeValue, got.TimeValue, 1e-9)

	// 100 n8n executions land on the starter plan
	assert.InDelta(t, 20.0, got.PlatformCost, 1e-9)
	assert.InDelta(t, wantTimeValue-20, got.NetROI, 1e-9)
	assert.InDelta(t, wantTimeValue/20, got.ROIRatio, 1e-9)
}

func TestAggregateGroupIgnoresUnknownIDs(t *testing.T) {
	graph := models.WorkflowGraph{
		Nodes: []models.GraphNode{{ID: "t", Role: models.RoleTrigger}},
	}
	settings := models.ROISettings{RunsPerMonth: 10, MinutesPerRun: 5, HourlyRate: 30, TaskMultiplier: 1, RiskLevel: 3}

	got := AggregateGroup(graph, []string{"missing"}, settings, pricing.Default())

	assert.Zero(t, got.NodeCount)
	assert.Zero(t, got.TotalMinutesSaved)
	assert.Zero(t, got.TimeValue)
}

func TestAggregateGroupWholeGraphConservesMinutes(t *testing.T) {
	graph := models.WorkflowGraph{
		Nodes: []models.GraphNode{
			{ID: "a", Role: models.RoleAction},
			{ID: "b", Role: models.RoleAction},
			{ID: "c", Role: models.RoleAction},
		},
	}
	settings := models.ROISettings{RunsPerMonth: 50, MinutesPerRun: 9, HourlyRate: 25, TaskMultiplier: 1, Platform: models.PlatformMake, RiskLevel: 3}

	got := AggregateGroup(graph, []string{"a", "b", "c"}, settings, pricing.Default())

	assert.InDelta(t, 9.0, got.TotalMinutesSaved, 1e-9)
}
