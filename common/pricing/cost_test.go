package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apicus/roi-engine/common/models"
)

func TestCostTierSelection(t *testing.T) {
	schedules := Default()

	tests := []struct {
		name     string
		platform models.Platform
		units    float64
		wantTier string
		wantCost float64
	}{
		{"zapier free tier", models.PlatformZapier, 50, "Free", 0},
		{"zapier free boundary", models.PlatformZapier, 100, "Free", 0},
		{"zapier starter", models.PlatformZapier, 101, "Starter", 19.99},
		{"zapier professional", models.PlatformZapier, 1500, "Professional", 49},
		{"zapier team", models.PlatformZapier, 30000, "Team", 69},
		{"make free", models.PlatformMake, 900, "Free", 0},
		{"make core", models.PlatformMake, 5000, "Core", 9},
		{"make teams", models.PlatformMake, 40000, "Teams", 29},
		{"n8n starter", models.PlatformN8N, 2500, "Starter", 20},
		{"n8n pro", models.PlatformN8N, 9999, "Pro", 50},
		{"zero units lands on first tier", models.PlatformZapier, 0, "Free", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedules.Cost(tt.platform, tt.units)
			assert.Equal(t, tt.wantTier, got.TierName)
			assert.InDelta(t, tt.wantCost, got.Cost, 1e-9)
		})
	}
}

func TestCostOverage(t *testing.T) {
	schedules := Default()

	// 1000 units past Zapier's top quota at 0.04/unit
	got := schedules.Cost(models.PlatformZapier, 51000)
	assert.Equal(t, "Team", got.TierName)
	assert.InDelta(t, 69+0.04*1000, got.Cost, 1e-9)

	// Make overage is priced per operation
	got = schedules.Cost(models.PlatformMake, 45000)
	assert.Equal(t, "Teams", got.TierName)
	assert.InDelta(t, 29+0.002*5000, got.Cost, 1e-9)
}

func TestCostUnlimitedTierAbsorbsAnyVolume(t *testing.T) {
	schedules := Default()

	// n8n's enterprise tier has no quota cap
	got := schedules.Cost(models.PlatformN8N, 10_000_000)
	assert.Equal(t, "Enterprise", got.TierName)
	assert.InDelta(t, 120.0, got.Cost, 1e-9)
}

func TestCostUnknownPlatform(t *testing.T) {
	schedules := Default()

	got := schedules.Cost(models.Platform("airtable"), 5000)
	assert.Equal(t, "", got.TierName)
	assert.Zero(t, got.Cost)
}

func TestCostNegativeUnitsClamped(t *testing.T) {
	schedules := Default()

	got := schedules.Cost(models.PlatformZapier, -10)
	assert.Equal(t, "Free", got.TierName)
	assert.Zero(t, got.Cost)
}

func TestCostMonotonicInUnits(t *testing.T) {
	schedules := Default()

	for _, platform := range []models.Platform{models.PlatformZapier, models.PlatformMake, models.PlatformN8N} {
		prev := 0.0
		for units := 0.0; units <= 120000; units += 250 {
			cost := schedules.Cost(platform, units).Cost
			require.GreaterOrEqualf(t, cost, prev, "cost dropped at %.0f units on %s", units, platform)
			prev = cost
		}
	}
}

func TestUnitsPerMonth(t *testing.T) {
	schedules := Default()

	// Per-step platforms bill runs * steps
	assert.Equal(t, 1250.0, schedules.UnitsPerMonth(models.PlatformZapier, 250, 5))
	assert.Equal(t, 1250.0, schedules.UnitsPerMonth(models.PlatformMake, 250, 5))

	// n8n bills per execution regardless of steps
	assert.Equal(t, 250.0, schedules.UnitsPerMonth(models.PlatformN8N, 250, 5))

	// Unknown platforms fall back to per-execution accounting
	assert.Equal(t, 250.0, schedules.UnitsPerMonth(models.Platform("other"), 250, 5))
}
