package simulate

import "time"

// Ramp maps days since the organization's assistant adoption date to a
// productivity multiplier. Gains are gradual: a slight dip in week one,
// then a monotonic rise to a 1.30 ceiling from week eight onward. The day
// thresholds (7/14/21/28/35/42/56) are part of the documented model; any
// change here changes what the dashboards show for the adoption story.
func Ramp(daysSinceAdoption int) float64 {
	switch {
	case daysSinceAdoption <= 0:
		return 1.0
	case daysSinceAdoption < 7:
		return 0.98
	case daysSinceAdoption < 14:
		return 1.02
	case daysSinceAdoption < 21:
		return 1.08
	case daysSinceAdoption < 28:
		return 1.15
	case daysSinceAdoption < 35:
		return 1.20
	case daysSinceAdoption < 42:
		return 1.25
	case daysSinceAdoption < 56:
		return 1.28
	default:
		return 1.30
	}
}

// UsageRamp scales raw interaction volume while a developer is still
// getting used to the assistant: linear growth from 30% to full volume
// over the first 28 days.
func UsageRamp(daysSinceAdoption int) float64 {
	v := 0.3 + float64(daysSinceAdoption)/28*0.7
	if v > 1.0 {
		return 1.0
	}
	return v
}

// daysSince returns whole days from adoption to day, negative before it.
func daysSince(day, adoption time.Time) int {
	return int(day.Sub(adoption).Hours() / 24)
}

// isWorkday reports whether day falls on Monday through Friday.
func isWorkday(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
