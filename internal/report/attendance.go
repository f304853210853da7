package report

import (
	"math"
	"time"

	"github.com/pjok-digital/backend/internal/models"
)

// Weighted presence per status. Present and dispensation count fully;
// the rest are discounted so that no single absence wrecks the
// percentage. This mirrors the school's report-card policy, not literal
// attendance.
const (
	weightSick   = 0.98
	weightPermit = 0.95
	weightAbsent = 0.75
)

type AttendanceStats struct {
	Present      int `json:"h"`
	Sick         int `json:"s"`
	Permit       int `json:"i"`
	Absent       int `json:"a"`
	Dispensation int `json:"d"`
	Percentage   int `json:"percentage"`
}

// TotalRecorded returns the number of days with any record at all.
func (s AttendanceStats) TotalRecorded() int {
	return s.Present + s.Sick + s.Permit + s.Absent + s.Dispensation
}

// ComputeAttendanceStats counts one student's records per status and
// derives the weighted attendance percentage. Days inside the effective
// meeting window with no record at all are credited as present: a date
// where this class simply was not scheduled must not penalize the
// student.
func ComputeAttendanceStats(records []models.AttendanceRecord, effectiveMeetingDays int) AttendanceStats {
	if effectiveMeetingDays < 1 {
		effectiveMeetingDays = 1
	}

	var stats AttendanceStats
	for _, r := range records {
		switch r.Status {
		case models.StatusPresent:
			stats.Present++
		case models.StatusSick:
			stats.Sick++
		case models.StatusPermit:
			stats.Permit++
		case models.StatusAbsent:
			stats.Absent++
		case models.StatusDispensation:
			stats.Dispensation++
		}
	}

	weighted := float64(stats.Present) + float64(stats.Dispensation) +
		weightSick*float64(stats.Sick) +
		weightPermit*float64(stats.Permit) +
		weightAbsent*float64(stats.Absent)

	unrecorded := effectiveMeetingDays - stats.TotalRecorded()
	if unrecorded < 0 {
		unrecorded = 0
	}

	final := weighted + float64(unrecorded)
	pct := int(math.Round(100 * final / float64(effectiveMeetingDays)))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	stats.Percentage = pct

	return stats
}

// EffectiveMeetingDays counts the distinct dates carrying at least one
// record, floored at 1 so the percentage denominator is never zero.
func EffectiveMeetingDays(records []models.AttendanceRecord) int {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.Date.Format("2006-01-02")] = true
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}

// WeekCell is one week-of-month bucket in the attendance grid. Status is
// empty when no record falls in the bucket.
type WeekCell struct {
	Week   int                     `json:"week"`
	Status models.AttendanceStatus `json:"status,omitempty"`
	Notes  string                  `json:"notes,omitempty"`
}

type MonthGrid struct {
	Month string     `json:"month"`
	Weeks []WeekCell `json:"weeks"`
}

var monthNames = map[string]time.Month{
	"Januari": time.January, "Februari": time.February, "Maret": time.March,
	"April": time.April, "Mei": time.May, "Juni": time.June,
	"Juli": time.July, "Agustus": time.August, "September": time.September,
	"Oktober": time.October, "November": time.November, "Desember": time.December,
}

// MonthsForSemester returns the display months of a semester: odd
// semesters run July through December, even ones January through June.
func MonthsForSemester(semester int) []string {
	if semester == 2 {
		return []string{"Januari", "Februari", "Maret", "April", "Mei", "Juni"}
	}
	return []string{"Juli", "Agustus", "September", "Oktober", "November", "Desember"}
}

// WeekOfMonth buckets a day of month into weeks 1-5.
func WeekOfMonth(day int) int {
	return (day + 6) / 7
}

// ComputeAttendanceGrid projects one student's records onto a
// (month, week-of-month) grid for the given months. It is a display
// projection only and plays no part in the percentage formula.
func ComputeAttendanceGrid(records []models.AttendanceRecord, months []string) []MonthGrid {
	grid := make([]MonthGrid, 0, len(months))
	for _, name := range months {
		m := MonthGrid{Month: name, Weeks: make([]WeekCell, 5)}
		for w := range m.Weeks {
			m.Weeks[w] = WeekCell{Week: w + 1}
		}
		target, ok := monthNames[name]
		if ok {
			for _, r := range records {
				if r.Date.Month() != target {
					continue
				}
				w := WeekOfMonth(r.Date.Day())
				if w < 1 || w > 5 {
					continue
				}
				cell := &m.Weeks[w-1]
				cell.Status = r.Status
				if r.Notes != nil {
					cell.Notes = *r.Notes
				}
			}
		}
		grid = append(grid, m)
	}
	return grid
}
