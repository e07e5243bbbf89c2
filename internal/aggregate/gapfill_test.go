package aggregate

import (
	"testing"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

func TestFillGaps_DailyCompleteness(t *testing.T) {
	records := []models.SessionRecord{
		record(time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local), "B1", "Ch1", "pending", 10, 10),
		record(time.Date(2025, 1, 5, 9, 0, 0, 0, time.Local), "B1", "Ch2", "pending", 20, 20),
	}
	grouped := Fold(records, models.IntervalDaily)

	now := time.Date(2025, 1, 5, 18, 0, 0, 0, time.Local)
	series := FillGaps(grouped, models.IntervalDaily, now)

	if len(series) != 5 {
		t.Fatalf("expected 5 consecutive daily entries, got %d", len(series))
	}
	for i, agg := range series {
		wantKey := models.BucketKey{2025, time.January, i + 1}
		if agg.Key != wantKey {
			t.Errorf("series[%d].Key = %v, want %v", i, agg.Key, wantKey)
		}
	}
	for _, i := range []int{1, 2, 3} {
		if series[i].TotalPages != 0 || series[i].SessionCount != 0 {
			t.Errorf("series[%d] should be a zero aggregate, got %+v", i, series[i])
		}
	}
	if series[0].TotalPages != 10 || series[4].TotalPages != 20 {
		t.Errorf("observed buckets lost data: %d, %d", series[0].TotalPages, series[4].TotalPages)
	}
}

func TestFillGaps_ExtendsToNow(t *testing.T) {
	records := []models.SessionRecord{
		record(time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local), "B1", "", "", 10, 10),
	}
	grouped := Fold(records, models.IntervalDaily)

	now := time.Date(2025, 1, 4, 8, 0, 0, 0, time.Local)
	series := FillGaps(grouped, models.IntervalDaily, now)

	if len(series) != 4 {
		t.Fatalf("expected 4 entries through today, got %d", len(series))
	}
	last := series[len(series)-1]
	if (last.Key != models.BucketKey{2025, time.January, 4}) {
		t.Errorf("series should end at the period containing now, got %v", last.Key)
	}
}

func TestFillGaps_FutureBucketKept(t *testing.T) {
	// A timestamp past "now" still closes the series.
	records := []models.SessionRecord{
		record(time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local), "B1", "", "", 10, 10),
		record(time.Date(2025, 1, 7, 9, 0, 0, 0, time.Local), "B1", "", "", 5, 5),
	}
	grouped := Fold(records, models.IntervalDaily)

	now := time.Date(2025, 1, 3, 0, 0, 0, 0, time.Local)
	series := FillGaps(grouped, models.IntervalDaily, now)

	if len(series) != 7 {
		t.Fatalf("expected 7 entries through the future bucket, got %d", len(series))
	}
}

func TestFillGaps_MonthlyAcrossYearBoundary(t *testing.T) {
	records := []models.SessionRecord{
		record(time.Date(2024, 11, 10, 0, 0, 0, 0, time.Local), "B1", "", "", 1, 1),
		record(time.Date(2025, 2, 10, 0, 0, 0, 0, time.Local), "B1", "", "", 1, 1),
	}
	grouped := Fold(records, models.IntervalMonthly)

	now := time.Date(2025, 2, 20, 0, 0, 0, 0, time.Local)
	series := FillGaps(grouped, models.IntervalMonthly, now)

	want := []models.BucketKey{
		{2024, time.November, 1},
		{2024, time.December, 1},
		{2025, time.January, 1},
		{2025, time.February, 1},
	}
	if len(series) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(series))
	}
	for i, agg := range series {
		if agg.Key != want[i] {
			t.Errorf("series[%d].Key = %v, want %v", i, agg.Key, want[i])
		}
	}
}

func TestFillGaps_Empty(t *testing.T) {
	series := FillGaps(nil, models.IntervalDaily, time.Now())
	if len(series) != 0 {
		t.Errorf("empty mapping should yield an empty series, got %d entries", len(series))
	}
}

func TestTruncateWindow(t *testing.T) {
	var series []*models.BucketAggregate
	key := models.BucketKey{2025, time.January, 1}
	for i := 0; i < 25; i++ {
		series = append(series, models.NewBucketAggregate(key))
		key = key.Next(models.IntervalDaily)
	}

	got := TruncateWindow(series)
	if len(got) != DisplayWindow {
		t.Fatalf("expected %d entries, got %d", DisplayWindow, len(got))
	}
	if got[len(got)-1] != series[len(series)-1] {
		t.Error("truncation must keep the most recent periods")
	}

	short := series[:3]
	if len(TruncateWindow(short)) != 3 {
		t.Error("series shorter than the window must pass through unchanged")
	}
}
