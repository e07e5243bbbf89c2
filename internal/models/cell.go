package models

import (
	"strconv"
	"strings"
	"time"
)

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	// CellEmpty is a blank cell.
	CellEmpty CellKind = iota
	// CellNumeric holds a plain number.
	CellNumeric
	// CellDate holds a structured date-time value.
	CellDate
	// CellText holds an uninterpreted string.
	CellText
)

// Cell is one loosely-typed spreadsheet cell. Upstream sheets deliver the
// same column as a date-like value, a string, or a number depending on how
// the row was entered, so consumers pattern-match on Kind instead of relying
// on implicit coercion.
type Cell struct {
	Kind CellKind  `json:"kind"`
	Num  float64   `json:"num,omitempty"`
	Time time.Time `json:"time,omitempty"`
	Text string    `json:"text,omitempty"`
}

// EmptyCell returns a blank cell.
func EmptyCell() Cell { return Cell{Kind: CellEmpty} }

// NumericCell returns a cell holding n.
func NumericCell(n float64) Cell { return Cell{Kind: CellNumeric, Num: n} }

// DateCell returns a cell holding t.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// TextCell returns a cell holding s. Blank strings collapse to an empty cell.
func TextCell(s string) Cell {
	if s == "" {
		return EmptyCell()
	}
	return Cell{Kind: CellText, Text: s}
}

// Float returns the numeric value of the cell. Text cells are parsed as
// numbers where possible; anything unparseable yields 0, never NaN.
func (c Cell) Float() float64 {
	switch c.Kind {
	case CellNumeric:
		return c.Num
	case CellText:
		if n, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64); err == nil {
			return n
		}
	}
	return 0
}

// Minutes interprets the cell as a duration in minutes. Date cells carry only
// clock-time semantics (the sheet encodes durations as times), text cells may
// be either a clock string or a raw minute count, numeric cells are minutes.
func (c Cell) Minutes() float64 {
	switch c.Kind {
	case CellNumeric:
		return c.Num
	case CellDate:
		return float64(c.Time.Hour())*60 + float64(c.Time.Minute()) + float64(c.Time.Second())/60
	case CellText:
		s := strings.TrimSpace(c.Text)
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
		if t, err := time.Parse("15:04:05", s); err == nil {
			return float64(t.Hour())*60 + float64(t.Minute()) + float64(t.Second())/60
		}
		if t, err := time.Parse("15:04", s); err == nil {
			return float64(t.Hour())*60 + float64(t.Minute())
		}
	}
	return 0
}

// Str returns the textual value of the cell for display purposes.
func (c Cell) Str() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumeric:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellDate:
		return c.Time.Format("2006-01-02 15:04:05")
	}
	return ""
}

// When returns the timestamp held by the cell. Text cells are parsed with a
// small set of accepted layouts; the second return reports success.
func (c Cell) When() (time.Time, bool) {
	switch c.Kind {
	case CellDate:
		return c.Time, true
	case CellText:
		for _, layout := range []string{
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02",
			"1/2/2006 15:04:05",
			"1/2/2006",
		} {
			if t, err := time.ParseInLocation(layout, strings.TrimSpace(c.Text), time.Local); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty || (c.Kind == CellText && strings.TrimSpace(c.Text) == "")
}
