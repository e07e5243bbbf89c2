package aggregate

import (
	"testing"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

func TestKeyFor(t *testing.T) {
	// 2025-01-08 is a Wednesday.
	wednesday := time.Date(2025, 1, 8, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name     string
		t        time.Time
		interval models.Interval
		want     models.BucketKey
	}{
		{
			name:     "Daily",
			t:        wednesday,
			interval: models.IntervalDaily,
			want:     models.BucketKey{2025, time.January, 8},
		},
		{
			name:     "WeeklyAnchorsToMonday",
			t:        wednesday,
			interval: models.IntervalWeekly,
			want:     models.BucketKey{2025, time.January, 6},
		},
		{
			name:     "WeeklyOnMondayStaysPut",
			t:        time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local),
			interval: models.IntervalWeekly,
			want:     models.BucketKey{2025, time.January, 6},
		},
		{
			name:     "WeeklySundayBelongsToPreviousMonday",
			t:        time.Date(2025, 1, 12, 23, 59, 0, 0, time.Local),
			interval: models.IntervalWeekly,
			want:     models.BucketKey{2025, time.January, 6},
		},
		{
			name:     "WeeklyAcrossYearBoundary",
			t:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), // Wednesday
			interval: models.IntervalWeekly,
			want:     models.BucketKey{2024, time.December, 30},
		},
		{
			name:     "Monthly",
			t:        wednesday,
			interval: models.IntervalMonthly,
			want:     models.BucketKey{2025, time.January, 1},
		},
		{
			name:     "Yearly",
			t:        wednesday,
			interval: models.IntervalYearly,
			want:     models.BucketKey{2025, time.January, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFor(tt.t, tt.interval); got != tt.want {
				t.Errorf("KeyFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyFor_SamePeriodSameKey(t *testing.T) {
	morning := time.Date(2025, 3, 15, 8, 0, 0, 0, time.Local)
	evening := time.Date(2025, 3, 15, 22, 45, 0, 0, time.Local)

	for _, interval := range []models.Interval{
		models.IntervalDaily, models.IntervalWeekly,
		models.IntervalMonthly, models.IntervalYearly,
	} {
		if KeyFor(morning, interval) != KeyFor(evening, interval) {
			t.Errorf("%v: timestamps in the same period map to different keys", interval)
		}
	}
}
