// Package aggregate implements the data aggregation pipeline: row
// normalization, time bucketing, gap filling, stats derivation, per-book
// rollups, and memoization of computed bundles. Everything here is pure and
// synchronous; callers decide whether to run a pass on a background
// goroutine.
package aggregate

import (
	"math"
	"strings"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

// Column offsets of the sessions sheet. The fetch layer guarantees this
// fixed positional schema.
const (
	colTimestamp = 0
	colBookTitle = 1
	colStartTime = 4
	colEndTime   = 5
	colChapter   = 6
	colStatus    = 7
	colPagesRead = 8
	colDuration  = 9
	colBookID    = 10
)

// statusCompleted is the status text that flags a session as completed,
// compared after trimming and lowercasing.
const statusCompleted = "completed"

func cellAt(row []models.Cell, idx int) models.Cell {
	if idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return models.EmptyCell()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeRow converts one raw data row into a SessionRecord. Malformed
// cells degrade to safe defaults: numeric cells to 0, the timestamp to the
// zero time. Rows are never rejected here; records without a book ID or a
// usable timestamp are skipped later by the keyed folds.
func NormalizeRow(row []models.Cell) models.SessionRecord {
	pages := int(cellAt(row, colPagesRead).Float())
	if pages < 0 {
		pages = 0
	}

	minutes := cellAt(row, colDuration).Minutes()
	if minutes < 0 {
		minutes = 0
	}

	ts, _ := cellAt(row, colTimestamp).When()
	status := cellAt(row, colStatus).Str()

	rec := models.SessionRecord{
		Timestamp: ts,
		BookID:    strings.TrimSpace(cellAt(row, colBookID).Str()),
		BookTitle: strings.TrimSpace(cellAt(row, colBookTitle).Str()),
		PagesRead: pages,
		Minutes:   minutes,
		Chapter:   strings.TrimSpace(cellAt(row, colChapter).Str()),
		Status:    status,
		Completed: strings.ToLower(strings.TrimSpace(status)) == statusCompleted,
	}

	if rec.Minutes > 0 {
		rec.Speed = round2(float64(rec.PagesRead) / rec.Minutes)
	}

	return rec
}

// NormalizeRows converts every data row of a sheet. The header row is not
// part of sheet.Rows, so all rows are normalized.
func NormalizeRows(sheet *models.Sheet) []models.SessionRecord {
	if sheet.Empty() {
		return nil
	}

	records := make([]models.SessionRecord, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		records = append(records, NormalizeRow(row))
	}
	return records
}
