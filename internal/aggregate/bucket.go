package aggregate

import (
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

// KeyFor maps a timestamp to the bucket key for the period containing it.
// Two timestamps in the same period always map to the same key, and key
// ordering matches the chronological order of the periods, including across
// year boundaries.
func KeyFor(t time.Time, interval models.Interval) models.BucketKey {
	switch interval {
	case models.IntervalWeekly:
		// Anchor to the Monday on/before t.
		offset := (int(t.Weekday()) + 6) % 7
		monday := t.AddDate(0, 0, -offset)
		return models.BucketKey{Year: monday.Year(), Month: monday.Month(), Day: monday.Day()}
	case models.IntervalMonthly:
		return models.BucketKey{Year: t.Year(), Month: t.Month(), Day: 1}
	case models.IntervalYearly:
		return models.BucketKey{Year: t.Year(), Month: time.January, Day: 1}
	default:
		return models.BucketKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
	}
}
