package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

// ChangeForm formats the period-over-period change between two values as a
// signed percentage. A zero baseline means no comparison is available and
// yields the empty string, never NaN or Infinity.
func ChangeForm(current, previous float64) string {
	if previous == 0 {
		return ""
	}
	diff := current - previous
	sign := ""
	switch {
	case diff > 0:
		sign = "+"
	case diff < 0:
		sign = "-"
	}
	percent := math.Abs(diff/previous) * 100
	return fmt.Sprintf("%s%.1f%%", sign, percent)
}

// FormatMinutes renders a minute count as "H h M min" when at least an hour,
// else "M min". Values are rounded to whole minutes before formatting.
func FormatMinutes(minutes float64) string {
	total := int(math.Round(minutes))
	if total >= 60 {
		return fmt.Sprintf("%d h %d min", total/60, total%60)
	}
	return fmt.Sprintf("%d min", total)
}

func formatSpeed(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}

// DeriveStats builds the summary cards from a display-window series: the raw
// value for the most recent period, the change against the period before it,
// and for speed a whole-window throughput average (total pages over total
// minutes) used as a reference line. A series shorter than 2 entries has no
// baseline, so every change is empty.
func DeriveStats(series []*models.BucketAggregate) []models.StatCard {
	if len(series) == 0 {
		return nil
	}

	last := series[len(series)-1]
	var prev *models.BucketAggregate
	if len(series) >= 2 {
		prev = series[len(series)-2]
	}

	change := func(cur, base float64) string {
		if prev == nil {
			return ""
		}
		return ChangeForm(cur, base)
	}

	var windowPages, windowMinutes float64
	for _, agg := range series {
		windowPages += float64(agg.TotalPages)
		windowMinutes += agg.TotalMinutes
	}
	windowSpeed := 0.0
	if windowMinutes > 0 {
		windowSpeed = windowPages / windowMinutes
	}

	prevOr := func(get func(*models.BucketAggregate) float64) float64 {
		if prev == nil {
			return 0
		}
		return get(prev)
	}

	return []models.StatCard{
		{
			Label:  "Pages Read",
			Value:  strconv.Itoa(last.TotalPages),
			Change: change(float64(last.TotalPages), prevOr(func(a *models.BucketAggregate) float64 { return float64(a.TotalPages) })),
		},
		{
			Label:  "Reading Time",
			Value:  FormatMinutes(last.TotalMinutes),
			Change: change(last.TotalMinutes, prevOr(func(a *models.BucketAggregate) float64 { return a.TotalMinutes })),
		},
		{
			Label:  "Books",
			Value:  strconv.Itoa(len(last.DistinctBooks)),
			Change: change(float64(len(last.DistinctBooks)), prevOr(func(a *models.BucketAggregate) float64 { return float64(len(a.DistinctBooks)) })),
		},
		{
			Label:  "Chapters",
			Value:  strconv.Itoa(len(last.DistinctChapters)),
			Change: change(float64(len(last.DistinctChapters)), prevOr(func(a *models.BucketAggregate) float64 { return float64(len(a.DistinctChapters)) })),
		},
		{
			Label:  "Chapters Completed",
			Value:  strconv.Itoa(len(last.CompletedChapters)),
			Change: change(float64(len(last.CompletedChapters)), prevOr(func(a *models.BucketAggregate) float64 { return float64(len(a.CompletedChapters)) })),
		},
		{
			Label:  "Avg Speed",
			Value:  formatSpeed(last.MeanSpeed()),
			Change: change(last.MeanSpeed(), prevOr(func(a *models.BucketAggregate) float64 { return a.MeanSpeed() })),
			Avg:    formatSpeed(windowSpeed),
		},
	}
}

// BuildPie produces the per-book page breakdown for the most recent period
// with activity. Labels prefer the display title when one is known for the
// book ID. Slices are sorted by value descending, then label, for a stable
// presentation order.
func BuildPie(series []*models.BucketAggregate, titles map[string]string) []models.PieSlice {
	var last *models.BucketAggregate
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].SessionCount > 0 {
			last = series[i]
			break
		}
	}
	if last == nil {
		return nil
	}

	slices := make([]models.PieSlice, 0, len(last.PerBookPages))
	for bookID, pages := range last.PerBookPages {
		label := bookID
		if title, ok := titles[bookID]; ok && title != "" {
			label = title
		}
		slices = append(slices, models.PieSlice{Label: label, Value: pages})
	}

	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Label < slices[j].Label
	})
	return slices
}

// recentLimit caps the recent-sessions list.
const recentLimit = 3

// Recent lists the most recent sessions, newest first.
func Recent(records []models.SessionRecord) []models.RecentItem {
	sorted := make([]models.SessionRecord, 0, len(records))
	for _, rec := range records {
		if rec.BookID == "" || rec.Timestamp.IsZero() {
			continue
		}
		sorted = append(sorted, rec)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	if len(sorted) == 0 {
		return nil
	}
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}

	items := make([]models.RecentItem, 0, len(sorted))
	for _, rec := range sorted {
		subtitle := rec.Chapter
		if subtitle == "" {
			subtitle = rec.Timestamp.Format("Jan 2, 2006")
		}
		items = append(items, models.RecentItem{
			ID:       fmt.Sprintf("%s-%d", rec.BookID, rec.Timestamp.Unix()),
			Label:    rec.BookTitle,
			Subtitle: subtitle,
			Value:    fmt.Sprintf("%d pages, %s", rec.PagesRead, FormatMinutes(rec.Minutes)),
			Status:   rec.Status,
		})
	}
	return items
}
