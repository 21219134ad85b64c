package roi

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apicus/roi-engine/common/models"
	"github.com/apicus/roi-engine/common/pricing"
)

func baseSettings() models.ROISettings {
	return models.ROISettings{
		RunsPerMonth:   250,
		MinutesPerRun:  3,
		HourlyRate:     40,
		TaskMultiplier: 1,
		Platform:       models.PlatformMake,
		RiskLevel:      3,
	}
}

func twoNodeGraph() models.WorkflowGraph {
	return models.WorkflowGraph{
		Nodes: []models.GraphNode{
			{ID: "module-1", Role: models.RoleTrigger},
			{ID: "module-2", Role: models.RoleAction},
		},
		Edges: []models.GraphEdge{
			{ID: "edge-module-1-module-2", Source: "module-1", Target: "module-2"},
		},
	}
}

func TestTimeValue(t *testing.T) {
	// (250*3/60)*40*1 = 500
	assert.InDelta(t, 500.0, TimeValue(baseSettings()), 1e-9)
}

func TestRiskValueDisabled(t *testing.T) {
	s := baseSettings()
	s.ComplianceEnabled = false
	s.RiskFrequency = 50
	s.ErrorCost = 200
	s.RiskLevel = 5

	assert.Zero(t, RiskValue(s))
}

func TestRiskValueNormalizedAroundMidpoint(t *testing.T) {
	s := baseSettings()
	s.ComplianceEnabled = true
	s.RiskFrequency = 10 // 10% of runs
	s.ErrorCost = 12

	// Midpoint severity leaves the base product unscaled
	s.RiskLevel = 3
	assert.InDelta(t, 250*0.1*12, RiskValue(s), 1e-9)

	// Max severity scales it by 5/3
	s.RiskLevel = 5
	assert.InDelta(t, 250*0.1*12*5.0/3.0, RiskValue(s), 1e-9)
}

func TestRevenueValue(t *testing.T) {
	s := baseSettings()
	s.RevenueEnabled = true
	s.MonthlyVolume = 1000
	s.ConversionRate = 2.5
	s.ValuePerConversion = 80

	assert.InDelta(t, 1000*0.025*80, RevenueValue(s), 1e-9)

	s.RevenueEnabled = false
	assert.Zero(t, RevenueValue(s))
}

func TestRatioZeroCost(t *testing.T) {
	assert.Zero(t, Ratio(500, 0))
	assert.InDelta(t, 2.5, Ratio(50, 20), 1e-9)
}

func TestPaybackDays(t *testing.T) {
	// Cost 100, net ROI 0: never breaks even
	assert.True(t, math.IsInf(PaybackDays(100, 0), 1))
	assert.True(t, math.IsInf(PaybackDays(100, -50), 1))

	// Cost 100, net ROI 400: (100/400)*30 = 7.5 days
	assert.InDelta(t, 7.5, PaybackDays(100, 400), 1e-9)
}

func TestComputeFullResult(t *testing.T) {
	result := Compute(twoNodeGraph(), baseSettings(), pricing.Default())

	// 250 runs * 2 steps = 500 make operations: free tier
	assert.InDelta(t, 500.0, result.TimeValue, 1e-9)
	assert.Zero(t, result.RiskValue)
	assert.Zero(t, result.RevenueValue)
	assert.InDelta(t, 500.0, result.TotalValue, 1e-9)
	assert.Zero(t, result.PlatformCost)
	assert.Equal(t, "Free", result.TierUsed)
	assert.InDelta(t, 500.0, result.NetROI, 1e-9)

	// Zero cost pins the ratio to 0 and payback to immediate break-even
	assert.Zero(t, result.ROIRatio)
	assert.Equal(t, "0.00x", result.RatioLabel)
}

func TestComputeClampsNegativeSettings(t *testing.T) {
	s := baseSettings()
	s.MinutesPerRun = -3
	s.HourlyRate = -40

	result := Compute(twoNodeGraph(), s, pricing.Default())

	assert.Zero(t, result.TimeValue)
	assert.False(t, math.IsNaN(result.ROIRatio))
}

func TestComputeNeverReturnsNaN(t *testing.T) {
	result := Compute(models.WorkflowGraph{}, models.ROISettings{}, pricing.Default())

	for name, v := range map[string]float64{
		"time_value":    result.TimeValue,
		"risk_value":    result.RiskValue,
		"revenue_value": result.RevenueValue,
		"total_value":   result.TotalValue,
		"platform_cost": result.PlatformCost,
		"net_roi":       result.NetROI,
		"roi_ratio":     result.ROIRatio,
	} {
		assert.Falsef(t, math.IsNaN(v), "%s is NaN", name)
		assert.Falsef(t, math.IsInf(v, 0), "%s is Inf", name)
	}
}

func TestResultJSONRoundTripWithInfinitePayback(t *testing.T) {
	result := Compute(twoNodeGraph(), models.ROISettings{
		Platform:     models.PlatformN8N,
		RunsPerMonth: 100,
		RiskLevel:    3,
	}, pricing.Default())

	// No value, positive cost: payback never arrives
	require.True(t, math.IsInf(result.PaybackPeriodDays, 1))
	require.Equal(t, "Never", result.PaybackLabel)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"payback_period_days":null`)

	var decoded models.ROIResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, math.IsInf(decoded.PaybackPeriodDays, 1))
}
