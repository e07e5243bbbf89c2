package aggregate

import (
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

// DisplayWindow is the number of most recent periods shown by bucketed
// consumers. The book rollup path works on full history and never truncates.
const DisplayWindow = 10

// FillGaps walks the bucket timeline from the earliest observed period
// through the period containing now (or the latest observed period, if that
// lies in the future), emitting the real aggregate where one exists and a
// zero aggregate for silent periods. The result is dense and strictly
// ascending. An empty input yields an empty series.
func FillGaps(
	grouped map[models.BucketKey]*models.BucketAggregate,
	interval models.Interval,
	now time.Time,
) []*models.BucketAggregate {
	if len(grouped) == 0 {
		return nil
	}

	var minKey, maxKey models.BucketKey
	first := true
	for k := range grouped {
		if first {
			minKey, maxKey = k, k
			first = false
			continue
		}
		if k.Before(minKey) {
			minKey = k
		}
		if maxKey.Before(k) {
			maxKey = k
		}
	}

	end := KeyFor(now, interval)
	if end.Before(maxKey) {
		end = maxKey
	}

	var series []*models.BucketAggregate
	for key := minKey; !end.Before(key); key = key.Next(interval) {
		if agg, ok := grouped[key]; ok {
			series = append(series, agg)
		} else {
			series = append(series, models.NewBucketAggregate(key))
		}
	}
	return series
}

// TruncateWindow limits a dense series to the most recent DisplayWindow
// periods.
func TruncateWindow(series []*models.BucketAggregate) []*models.BucketAggregate {
	if len(series) > DisplayWindow {
		return series[len(series)-DisplayWindow:]
	}
	return series
}
