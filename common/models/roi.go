package models

import (
	"encoding/json"
	"math"
)

// Platform identifies a supported automation platform.
type Platform string

const (
	PlatformZapier Platform = "zapier"
	PlatformMake   Platform = "make"
	PlatformN8N    Platform = "n8n"
)

// ROISettings is the immutable input to a single ROI calculation.
//
// Numeric fields are expected to be non-negative; negative values are a
// caller contract violation and are clamped to zero rather than rejected,
// so a live preview never fails on a half-typed form.
type ROISettings struct {
	RunsPerMonth   float64  `json:"runs_per_month"`
	MinutesPerRun  float64  `json:"minutes_per_run"`
	HourlyRate     float64  `json:"hourly_rate"`
	TaskMultiplier float64  `json:"task_multiplier"`
	Platform       Platform `json:"platform"`

	// Risk block. RiskLevel ranges 1-5 around a baseline of 3.
	ComplianceEnabled bool    `json:"compliance_enabled"`
	RiskLevel         int     `json:"risk_level"`
	RiskFrequency     float64 `json:"risk_frequency"` // percentage 0-100
	ErrorCost         float64 `json:"error_cost"`

	// Revenue block.
	RevenueEnabled     bool    `json:"revenue_enabled"`
	MonthlyVolume      float64 `json:"monthly_volume"`
	ConversionRate     float64 `json:"conversion_rate"` // percentage 0-100
	ValuePerConversion float64 `json:"value_per_conversion"`
}

// Clamped returns a copy with negative numerics clamped to zero and
// RiskLevel bounded to 1-5.
func (s ROISettings) Clamped() ROISettings {
	c := s
	c.RunsPerMonth = math.Max(0, s.RunsPerMonth)
	c.MinutesPerRun = math.Max(0, s.MinutesPerRun)
	c.HourlyRate = math.Max(0, s.HourlyRate)
	c.TaskMultiplier = math.Max(0, s.TaskMultiplier)
	c.RiskFrequency = math.Min(100, math.Max(0, s.RiskFrequency))
	c.ErrorCost = math.Max(0, s.ErrorCost)
	c.MonthlyVolume = math.Max(0, s.MonthlyVolume)
	c.ConversionRate = math.Min(100, math.Max(0, s.ConversionRate))
	c.ValuePerConversion = math.Max(0, s.ValuePerConversion)

	if c.RiskLevel < 1 {
		c.RiskLevel = 1
	} else if c.RiskLevel > 5 {
		c.RiskLevel = 5
	}

	return c
}

// ROIResult is the derived metric set. It is always recomputed, never
// persisted as a source of truth.
//
// PaybackPeriodDays may legitimately be +Inf ("never breaks even"); the
// JSON encoding renders that as null days with the "Never" label, since
// encoding/json cannot represent infinities.
type ROIResult struct {
	TimeValue         float64 `json:"time_value"`
	RiskValue         float64 `json:"risk_value"`
	RevenueValue      float64 `json:"revenue_value"`
	TotalValue        float64 `json:"total_value"`
	PlatformCost      float64 `json:"platform_cost"`
	NetROI            float64 `json:"net_roi"`
	ROIRatio          float64 `json:"roi_ratio"`
	PaybackPeriodDays float64 `json:"-"`

	TierUsed     string `json:"tier_used,omitempty"`
	RatioLabel   string `json:"ratio_label"`
	PaybackLabel string `json:"payback_label"`
}

// MarshalJSON renders an infinite payback period as null.
func (r ROIResult) MarshalJSON() ([]byte, error) {
	type alias ROIResult
	out := struct {
		alias
		PaybackPeriodDays *float64 `json:"payback_period_days"`
	}{alias: alias(r)}

	if !math.IsInf(r.PaybackPeriodDays, 1) {
		days := r.PaybackPeriodDays
		out.PaybackPeriodDays = &days
	}

	return json.Marshal(out)
}

// UnmarshalJSON restores null payback back to +Inf.
func (r *ROIResult) UnmarshalJSON(data []byte) error {
	type alias ROIResult
	in := struct {
		*alias
		PaybackPeriodDays *float64 `json:"payback_period_days"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	if in.PaybackPeriodDays == nil {
		r.PaybackPeriodDays = math.Inf(1)
	} else {
		r.PaybackPeriodDays = *in.PaybackPeriodDays
	}

	return nil
}
