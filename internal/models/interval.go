// Package models defines data structures and domain types.
package models

// Interval represents the selected aggregation granularity.
type Interval int

const (
	// IntervalDaily buckets sessions by calendar day.
	IntervalDaily Interval = iota
	// IntervalWeekly buckets sessions by ISO week (Monday start).
	IntervalWeekly
	// IntervalMonthly buckets sessions by calendar month.
	IntervalMonthly
	// IntervalYearly buckets sessions by calendar year.
	IntervalYearly
)

// String returns the display name for an interval.
func (i Interval) String() string {
	switch i {
	case IntervalDaily:
		return "Daily"
	case IntervalWeekly:
		return "Weekly"
	case IntervalMonthly:
		return "Monthly"
	case IntervalYearly:
		return "Yearly"
	default:
		return "Unknown"
	}
}

// Next cycles to the next interval.
func (i Interval) Next() Interval {
	return (i + 1) % 4
}

// ParseInterval maps a selector literal ("daily", "weekly", "monthly",
// "yearly") to an Interval. Unknown values fall back to daily.
func ParseInterval(s string) Interval {
	switch s {
	case "weekly":
		return IntervalWeekly
	case "monthly":
		return IntervalMonthly
	case "yearly":
		return IntervalYearly
	default:
		return IntervalDaily
	}
}
