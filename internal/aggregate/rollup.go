package aggregate

import (
	"math"
	"sort"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

// BuildRollups folds the full, untruncated record set into one rollup per
// observed book ID and joins against the book master. The master title wins
// over the session-observed title when both are present; the completion
// percentage prefers the declared chapter count, falls back to declared
// pages, and is clamped to [0, 100] even when recorded chapters exceed the
// declared count. Rollups are ordered most recently read first.
func BuildRollups(records []models.SessionRecord, master map[string]models.BookMaster) []models.BookRollup {
	type bookAcc struct {
		title    string
		pages    int
		minutes  float64
		lastRead models.SessionRecord
		chapters map[string]struct{}
	}

	byID := make(map[string]*bookAcc)
	for _, rec := range records {
		if rec.BookID == "" {
			continue
		}

		acc, ok := byID[rec.BookID]
		if !ok {
			acc = &bookAcc{title: rec.BookTitle, chapters: make(map[string]struct{})}
			byID[rec.BookID] = acc
		}

		acc.pages += rec.PagesRead
		acc.minutes += rec.Minutes
		if rec.Chapter != "" {
			acc.chapters[rec.Chapter] = struct{}{}
		}
		if !rec.Timestamp.IsZero() && rec.Timestamp.After(acc.lastRead.Timestamp) {
			acc.lastRead = rec
		}
	}

	rollups := make([]models.BookRollup, 0, len(byID))
	for bookID, acc := range byID {
		chapters := make([]string, 0, len(acc.chapters))
		for ch := range acc.chapters {
			chapters = append(chapters, ch)
		}
		sort.Strings(chapters)

		rollup := models.BookRollup{
			BookID:           bookID,
			BookTitle:        acc.title,
			TotalPagesRead:   acc.pages,
			TotalTimeMinutes: acc.minutes,
			LastRead:         acc.lastRead.Timestamp,
			Chapters:         chapters,
		}

		if m, ok := master[bookID]; ok {
			rollup.TotalPages = m.TotalPages
			rollup.TotalChapters = m.TotalChapters
			if m.Title != "" {
				rollup.BookTitle = m.Title
			}
		}

		rollup.PercentCompleted = completionPercent(
			len(chapters), rollup.TotalChapters, acc.pages, rollup.TotalPages)

		rollups = append(rollups, rollup)
	}

	sort.Slice(rollups, func(i, j int) bool {
		if !rollups[i].LastRead.Equal(rollups[j].LastRead) {
			return rollups[i].LastRead.After(rollups[j].LastRead)
		}
		return rollups[i].BookID < rollups[j].BookID
	})
	return rollups
}

// completionPercent derives the bounded completion ratio: chapters against
// the declared chapter count when one exists, else pages against the
// declared page count, else 0.
func completionPercent(chaptersRead, totalChapters, pagesRead, totalPages int) int {
	var percent int
	switch {
	case totalChapters > 0:
		percent = int(math.Round(float64(chaptersRead) / float64(totalChapters) * 100))
	case totalPages > 0:
		percent = int(math.Round(float64(pagesRead) / float64(totalPages) * 100))
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent
}

// ComputeTotals sums a rollup list for the books header line.
func ComputeTotals(rollups []models.BookRollup) models.Totals {
	totals := models.Totals{TotalBooks: len(rollups)}
	for _, r := range rollups {
		totals.TotalPages += r.TotalPagesRead
		totals.TotalTime += r.TotalTimeMinutes
	}
	return totals
}
