package aggregate

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

func record(ts time.Time, bookID, chapter, status string, pages int, minutes float64) models.SessionRecord {
	rec := models.SessionRecord{
		Timestamp: ts,
		BookID:    bookID,
		BookTitle: bookID + " title",
		PagesRead: pages,
		Minutes:   minutes,
		Chapter:   chapter,
		Status:    status,
		Completed: status == "completed",
	}
	if minutes > 0 {
		rec.Speed = round2(float64(pages) / minutes)
	}
	return rec
}

func TestFold_ConcreteScenario(t *testing.T) {
	jan1 := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	records := []models.SessionRecord{
		record(jan1, "B1", "Ch1", "completed", 20, 30),
		record(jan1.Add(4*time.Hour), "B1", "Ch2", "pending", 10, 15),
	}

	grouped := Fold(records, models.IntervalDaily)
	if len(grouped) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(grouped))
	}

	agg, ok := grouped[models.BucketKey{2025, time.January, 1}]
	if !ok {
		t.Fatal("Jan 1 bucket missing")
	}

	if agg.TotalPages != 30 {
		t.Errorf("TotalPages = %d, want 30", agg.TotalPages)
	}
	if agg.TotalMinutes != 45 {
		t.Errorf("TotalMinutes = %v, want 45", agg.TotalMinutes)
	}
	if agg.SessionCount != 2 {
		t.Errorf("SessionCount = %d, want 2", agg.SessionCount)
	}
	if len(agg.DistinctBooks) != 1 {
		t.Errorf("DistinctBooks = %d, want 1", len(agg.DistinctBooks))
	}
	if len(agg.DistinctChapters) != 2 {
		t.Errorf("DistinctChapters = %d, want 2", len(agg.DistinctChapters))
	}
	if len(agg.CompletedChapters) != 1 {
		t.Errorf("CompletedChapters = %d, want 1", len(agg.CompletedChapters))
	}
	if _, ok := agg.CompletedChapters["Ch1"]; !ok {
		t.Error("Ch1 should be the completed chapter")
	}
	if agg.PerBookPages["B1"] != 30 {
		t.Errorf("PerBookPages[B1] = %d, want 30", agg.PerBookPages["B1"])
	}

	// Mean of per-session speeds: (20/30 + 10/15) / 2.
	if got := agg.MeanSpeed(); math.Abs(got-0.665) > 0.01 {
		t.Errorf("MeanSpeed() = %v, want ~0.667", got)
	}
}

func TestFold_SkipsUnkeyedRecords(t *testing.T) {
	jan1 := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	records := []models.SessionRecord{
		record(jan1, "B1", "Ch1", "pending", 10, 10),
		record(jan1, "", "Ch1", "pending", 99, 99),        // no book id
		record(time.Time{}, "B2", "Ch1", "pending", 5, 5), // no timestamp
	}

	grouped := Fold(records, models.IntervalDaily)
	if len(grouped) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(grouped))
	}
	for _, agg := range grouped {
		if agg.TotalPages != 10 {
			t.Errorf("TotalPages = %d, want 10 (unkeyed rows excluded)", agg.TotalPages)
		}
	}
}

func TestFold_OrderIndependent(t *testing.T) {
	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.Local)
	var records []models.SessionRecord
	for i := 0; i < 40; i++ {
		records = append(records, record(
			base.AddDate(0, 0, i%7), "B1", "Ch1", "completed", i+1, float64(i+5)))
		records = append(records, record(
			base.AddDate(0, 0, i%5), "B2", "Ch2", "pending", i, float64(i+1)))
	}

	want := Fold(records, models.IntervalDaily)

	shuffled := make([]models.SessionRecord, len(records))
	copy(shuffled, records)
	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	got := Fold(shuffled, models.IntervalDaily)
	if !reflect.DeepEqual(want, got) {
		t.Error("folding is not order independent")
	}
}
