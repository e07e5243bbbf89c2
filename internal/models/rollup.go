package models

import "time"

// BookMaster is the externally supplied record for one book.
type BookMaster struct {
	BookID        string `json:"bookId"`
	Title         string `json:"title"`
	TotalPages    int    `json:"totalPages"`
	TotalChapters int    `json:"totalChapters"`
}

// BookRollup aggregates all sessions for one book, joined against the book
// master. Chapters are sorted lexicographically.
type BookRollup struct {
	BookID           string
	BookTitle        string
	TotalPagesRead   int
	TotalTimeMinutes float64
	LastRead         time.Time
	Chapters         []string
	TotalPages       int // declared by the book master, 0 if unknown
	TotalChapters    int // declared by the book master, 0 if unknown
	PercentCompleted int // always within [0, 100]
}

// Totals summarizes a rollup list for a header line.
type Totals struct {
	TotalPages int
	TotalBooks int
	TotalTime  float64
}

// TestPoint is the mean test score for one period.
type TestPoint struct {
	Key   BucketKey
	Mean  float64
	Count int
}

// SyllabusCoverage reports completed topics against the declared topic list
// for one subject.
type SyllabusCoverage struct {
	Subject   string
	Completed int
	Total     int
	Percent   int // within [0, 100]
}
