package models

import "time"

// BucketKey identifies one calendar period. It is a structural key: a plain
// (year, month, day) triple that sorts chronologically and can be advanced
// with calendar arithmetic, never a formatted string. Weekly keys carry the
// Monday that starts the week, monthly keys the first of the month, yearly
// keys January 1st.
type BucketKey struct {
	Year  int
	Month time.Month
	Day   int
}

// Time returns the start of the period as a local midnight.
func (k BucketKey) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.Local)
}

// Before reports whether k starts before other.
func (k BucketKey) Before(other BucketKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Day < other.Day
}

// Next returns the key for the period immediately after k.
func (k BucketKey) Next(interval Interval) BucketKey {
	t := k.Time()
	switch interval {
	case IntervalWeekly:
		t = t.AddDate(0, 0, 7)
	case IntervalMonthly:
		t = t.AddDate(0, 1, 0)
	case IntervalYearly:
		t = t.AddDate(1, 0, 0)
	default:
		t = t.AddDate(0, 0, 1)
	}
	return BucketKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Label renders the period for display.
func (k BucketKey) Label(interval Interval) string {
	switch interval {
	case IntervalMonthly:
		return k.Time().Format("Jan 2006")
	case IntervalYearly:
		return k.Time().Format("2006")
	default:
		return k.Time().Format("Jan 2, 2006")
	}
}
