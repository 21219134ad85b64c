package roi

import (
	"fmt"
	"math"
)

// FormatRatio renders an ROI ratio with precision that shrinks as the
// number grows: "0.50x" below 10, "12.3x" below 100, "123x" below 1000,
// "1.5kx" above. Presentation only; reproduced here for UI parity.
func FormatRatio(ratio float64) string {
	switch {
	case ratio < 10:
		return fmt.Sprintf("%.2fx", ratio)
	case ratio < 100:
		return fmt.Sprintf("%.1fx", ratio)
	case ratio < 1000:
		return fmt.Sprintf("%.0fx", ratio)
	default:
		return fmt.Sprintf("%.1fkx", ratio/1000)
	}
}

// FormatPayback renders a payback period in days as a human label.
// +Inf means the workflow never breaks even.
func FormatPayback(days float64) string {
	switch {
	case math.IsInf(days, 1):
		return "Never"
	case days < 1:
		return "Immediate"
	case days < 30:
		return fmt.Sprintf("%.0f days", days)
	case days < 365:
		return fmt.Sprintf("%.1f months", days/30)
	default:
		return fmt.Sprintf("%.1f years", days/365)
	}
}
