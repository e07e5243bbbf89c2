package aggregate

import (
	"github.com/a-mhatre/studylog-tui/internal/models"
)

// Fold groups records into per-bucket aggregates. Folding is commutative and
// associative per key, so input order does not matter. Records without a
// book ID or a usable timestamp are skipped; there is no per-row error
// channel in this design.
func Fold(records []models.SessionRecord, interval models.Interval) map[models.BucketKey]*models.BucketAggregate {
	grouped := make(map[models.BucketKey]*models.BucketAggregate)
	for _, rec := range records {
		foldRecord(grouped, rec, interval)
	}
	return grouped
}

// foldRecord is the single reducer used by every aggregation path, inline or
// on a background goroutine.
func foldRecord(
	grouped map[models.BucketKey]*models.BucketAggregate,
	rec models.SessionRecord,
	interval models.Interval,
) {
	if rec.BookID == "" || rec.Timestamp.IsZero() {
		return
	}

	key := KeyFor(rec.Timestamp, interval)
	agg, ok := grouped[key]
	if !ok {
		agg = models.NewBucketAggregate(key)
		grouped[key] = agg
	}

	agg.TotalPages += rec.PagesRead
	agg.TotalMinutes += rec.Minutes
	agg.SpeedSum += rec.Speed
	agg.SessionCount++
	agg.DistinctBooks[rec.BookID] = struct{}{}
	if rec.Chapter != "" {
		agg.DistinctChapters[rec.Chapter] = struct{}{}
		if rec.Completed {
			agg.CompletedChapters[rec.Chapter] = struct{}{}
		}
	}
	agg.PerBookPages[rec.BookID] += rec.PagesRead
}
