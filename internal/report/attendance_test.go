package report

import (
	"testing"
	"time"

	"github.com/pjok-digital/backend/internal/models"
)

func rec(date string, status models.AttendanceStatus) models.AttendanceRecord {
	d, _ := time.Parse("2006-01-02", date)
	return models.AttendanceRecord{StudentID: "s1", Date: d, Status: status}
}

func repeatRecs(status models.AttendanceStatus, dates ...string) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	for _, d := range dates {
		out = append(out, rec(d, status))
	}
	return out
}

func TestComputeAttendanceStatsCounts(t *testing.T) {
	records := []models.AttendanceRecord{
		rec("2025-07-07", models.StatusPresent),
		rec("2025-07-08", models.StatusSick),
		rec("2025-07-09", models.StatusPermit),
		rec("2025-07-10", models.StatusAbsent),
		rec("2025-07-11", models.StatusDispensation),
	}

	stats := ComputeAttendanceStats(records, 5)
	if stats.Present != 1 || stats.Sick != 1 || stats.Permit != 1 || stats.Absent != 1 || stats.Dispensation != 1 {
		t.Errorf("counts = %+v, want one of each", stats)
	}
	if stats.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded() = %d, want 5", stats.TotalRecorded())
	}
}

// Full-semester scenario: 20 meeting days, H=15 S=2 I=1 A=1 D=1.
// weighted = 15 + 1 + 1.96 + 0.95 + 0.75 = 19.66 -> 98%.
func TestComputeAttendanceStatsWeighted(t *testing.T) {
	var records []models.AttendanceRecord
	days := 0
	addDay := func(status models.AttendanceStatus) {
		days++
		records = append(records, rec(time.Date(2025, 8, days, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), status))
	}
	for i := 0; i < 15; i++ {
		addDay(models.StatusPresent)
	}
	addDay(models.StatusSick)
	addDay(models.StatusSick)
	addDay(models.StatusPermit)
	addDay(models.StatusAbsent)
	addDay(models.StatusDispensation)

	stats := ComputeAttendanceStats(records, 20)
	if stats.Percentage != 98 {
		t.Errorf("Percentage = %d, want 98", stats.Percentage)
	}
}

func TestComputeAttendanceStatsBounds(t *testing.T) {
	tests := []struct {
		name    string
		records []models.AttendanceRecord
		days    int
	}{
		{"empty", nil, 1},
		{"all absent", repeatRecs(models.StatusAbsent, "2025-07-07", "2025-07-08", "2025-07-09"), 3},
		{"all present", repeatRecs(models.StatusPresent, "2025-07-07", "2025-07-08"), 2},
		{"more records than days", repeatRecs(models.StatusPresent, "2025-07-07", "2025-07-08", "2025-07-09"), 1},
		{"zero days floored", repeatRecs(models.StatusSick, "2025-07-07"), 0},
	}

	for _, tt := range tests {
		stats := ComputeAttendanceStats(tt.records, tt.days)
		if stats.Percentage < 0 || stats.Percentage > 100 {
			t.Errorf("%s: Percentage = %d, want within [0,100]", tt.name, stats.Percentage)
		}
	}
}

// A present day can never score below the same day recorded as an
// unexcused absence.
func TestComputeAttendanceStatsWeightingOrder(t *testing.T) {
	base := repeatRecs(models.StatusPresent, "2025-07-07", "2025-07-08", "2025-07-09")

	present := append([]models.AttendanceRecord{}, base...)
	present = append(present, rec("2025-07-10", models.StatusPresent))

	absent := append([]models.AttendanceRecord{}, base...)
	absent = append(absent, rec("2025-07-10", models.StatusAbsent))

	pPresent := ComputeAttendanceStats(present, 4).Percentage
	pAbsent := ComputeAttendanceStats(absent, 4).Percentage
	if pPresent < pAbsent {
		t.Errorf("present percentage %d < absent percentage %d", pPresent, pAbsent)
	}
}

// Unrecorded days are credited as present: a student with no records at
// all scores 100%.
func TestComputeAttendanceStatsUnrecordedCredit(t *testing.T) {
	stats := ComputeAttendanceStats(nil, 10)
	if stats.Percentage != 100 {
		t.Errorf("Percentage = %d, want 100", stats.Percentage)
	}
}

func TestEffectiveMeetingDays(t *testing.T) {
	records := []models.AttendanceRecord{
		rec("2025-07-07", models.StatusPresent),
		rec("2025-07-07", models.StatusSick), // different student, same date
		rec("2025-07-08", models.StatusPresent),
	}

	if got := EffectiveMeetingDays(records); got != 2 {
		t.Errorf("EffectiveMeetingDays = %d, want 2", got)
	}
	if got := EffectiveMeetingDays(nil); got != 1 {
		t.Errorf("EffectiveMeetingDays(nil) = %d, want 1", got)
	}
}

func TestWeekOfMonth(t *testing.T) {
	tests := []struct {
		day  int
		want int
	}{
		{1, 1}, {7, 1}, {8, 2}, {14, 2}, {15, 3}, {21, 3}, {28, 4}, {29, 5}, {31, 5},
	}
	for _, tt := range tests {
		if got := WeekOfMonth(tt.day); got != tt.want {
			t.Errorf("WeekOfMonth(%d) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestComputeAttendanceGrid(t *testing.T) {
	note := "Lomba voli kecamatan"
	d, _ := time.Parse("2006-01-02", "2025-08-20")
	records := []models.AttendanceRecord{
		rec("2025-07-07", models.StatusPresent),
		rec("2025-09-01", models.StatusSick),
		{StudentID: "s1", Date: d, Status: models.StatusDispensation, Notes: &note},
	}

	grid := ComputeAttendanceGrid(records, MonthsForSemester(1))
	if len(grid) != 6 {
		t.Fatalf("len(grid) = %d, want 6", len(grid))
	}

	// July 7 -> week 1
	if grid[0].Month != "Juli" || grid[0].Weeks[0].Status != models.StatusPresent {
		t.Errorf("Juli week 1 = %+v, want H", grid[0].Weeks[0])
	}
	// August 20 -> week 3, carries the dispensation note
	if grid[1].Weeks[2].Status != models.StatusDispensation || grid[1].Weeks[2].Notes != note {
		t.Errorf("Agustus week 3 = %+v, want D with note", grid[1].Weeks[2])
	}
	// September 1 -> week 1
	if grid[2].Weeks[0].Status != models.StatusSick {
		t.Errorf("September week 1 = %+v, want S", grid[2].Weeks[0])
	}
	// Untouched buckets stay empty
	if grid[5].Weeks[4].Status != "" {
		t.Errorf("Desember week 5 = %+v, want empty", grid[5].Weeks[4])
	}
}

func TestMonthsForSemester(t *testing.T) {
	if got := MonthsForSemester(1); got[0] != "Juli" || got[5] != "Desember" {
		t.Errorf("semester 1 months = %v", got)
	}
	if got := MonthsForSemester(2); got[0] != "Januari" || got[5] != "Juni" {
		t.Errorf("semester 2 months = %v", got)
	}
}
