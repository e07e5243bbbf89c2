package models

import "time"

// SessionRecord is the typed view over one raw session row. Records are
// rebuilt from the raw snapshot on every aggregation pass and never persisted
// as entities.
type SessionRecord struct {
	Timestamp time.Time
	BookID    string
	BookTitle string
	PagesRead int
	Minutes   float64
	Chapter   string
	Status    string // raw status text, preserved for display
	Completed bool
	Speed     float64 // pages per minute, 0 when Minutes == 0
}

// Sheet is one fetched tabular snapshot: a header row plus data rows of
// loosely-typed cells at fixed column offsets.
type Sheet struct {
	Header []string `json:"header"`
	Rows   [][]Cell `json:"rows"`
}

// Empty reports whether the sheet has no data rows.
func (s *Sheet) Empty() bool {
	return s == nil || len(s.Rows) == 0
}
