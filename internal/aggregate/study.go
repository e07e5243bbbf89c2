package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

// TargetFor converts a daily pages target into the active interval: a week
// is seven days, a month uses the reference month's day count, a year
// accounts for leap years.
func TargetFor(daily float64, interval models.Interval, ref time.Time) float64 {
	switch interval {
	case models.IntervalWeekly:
		return daily * 7
	case models.IntervalMonthly:
		// Day 0 of the next month is the last day of ref's month.
		days := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()
		return daily * float64(days)
	case models.IntervalYearly:
		days := 365.0
		if isLeapYear(ref.Year()) {
			days = 366
		}
		return daily * days
	default:
		return daily
	}
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func headerIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// TestSeries buckets test rows by their date column and averages the named
// score column per period, ascending. Sheets missing either column yield no
// series.
func TestSeries(sheet *models.Sheet, scoreColumn string, interval models.Interval) []models.TestPoint {
	if sheet.Empty() {
		return nil
	}

	dateIdx := headerIndex(sheet.Header, "Date")
	scoreIdx := headerIndex(sheet.Header, scoreColumn)
	if dateIdx < 0 || scoreIdx < 0 {
		return nil
	}

	type acc struct {
		sum   float64
		count int
	}
	grouped := make(map[models.BucketKey]*acc)

	for _, row := range sheet.Rows {
		ts, ok := cellAt(row, dateIdx).When()
		if !ok {
			continue
		}
		key := KeyFor(ts, interval)
		a, exists := grouped[key]
		if !exists {
			a = &acc{}
			grouped[key] = a
		}
		a.sum += cellAt(row, scoreIdx).Float()
		a.count++
	}

	points := make([]models.TestPoint, 0, len(grouped))
	for key, a := range grouped {
		points = append(points, models.TestPoint{
			Key:   key,
			Mean:  round2(a.sum / float64(a.count)),
			Count: a.count,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Key.Before(points[j].Key)
	})
	return points
}

// SyllabusProgress counts completed topics per subject from a syllabus sheet
// with a subject column and a status column. Subjects are ordered by first
// appearance in the sheet.
func SyllabusProgress(sheet *models.Sheet, subjectColumn, statusColumn string) []models.SyllabusCoverage {
	if sheet.Empty() {
		return nil
	}

	subjectIdx := headerIndex(sheet.Header, subjectColumn)
	statusIdx := headerIndex(sheet.Header, statusColumn)
	if subjectIdx < 0 || statusIdx < 0 {
		return nil
	}

	var order []string
	bySubject := make(map[string]*models.SyllabusCoverage)

	for _, row := range sheet.Rows {
		subject := strings.TrimSpace(cellAt(row, subjectIdx).Str())
		if subject == "" {
			continue
		}

		cov, ok := bySubject[subject]
		if !ok {
			cov = &models.SyllabusCoverage{Subject: subject}
			bySubject[subject] = cov
			order = append(order, subject)
		}

		cov.Total++
		status := strings.ToLower(strings.TrimSpace(cellAt(row, statusIdx).Str()))
		if status == statusCompleted {
			cov.Completed++
		}
	}

	coverage := make([]models.SyllabusCoverage, 0, len(order))
	for _, subject := range order {
		cov := bySubject[subject]
		cov.Percent = completionPercent(cov.Completed, cov.Total, 0, 0)
		coverage = append(coverage, *cov)
	}
	return coverage
}
