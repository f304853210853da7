package attendance

import (
	"testing"

	"github.com/pjok-digital/backend/internal/models"
	"github.com/pjok-digital/backend/internal/report"
)

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2025-08-18"); err != nil {
		t.Errorf("parseDate valid date: %v", err)
	}
	for _, bad := range []string{"", "18-08-2025", "2025/08/18", "not a date"} {
		if _, err := parseDate(bad); err != ErrInvalidDate {
			t.Errorf("parseDate(%q) err = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestBuildRecapCSV(t *testing.T) {
	rows := []RecapRow{
		{
			Student: models.Student{NIS: "2400123", Name: "Budi Santoso", ClassName: "7A"},
			Stats:   report.AttendanceStats{Present: 15, Sick: 2, Permit: 1, Absent: 1, Dispensation: 1, Percentage: 98},
		},
	}

	cells := BuildRecapCSV(rows, 20)
	if len(cells) != 2 {
		t.Fatalf("len(cells) = %d, want 2", len(cells))
	}
	if cells[0][0] != "No" || cells[0][10] != "Persentase" {
		t.Errorf("header = %v", cells[0])
	}

	row := cells[1]
	want := []string{"1", "2400123", "Budi Santoso", "7A", "15", "2", "1", "1", "1", "20", "98%"}
	if len(row) != len(want) {
		t.Fatalf("row length = %d, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %q, want %q", i, row[i], want[i])
		}
	}
}

func TestBuildRecapCSVEmpty(t *testing.T) {
	cells := BuildRecapCSV(nil, 1)
	if len(cells) != 1 {
		t.Errorf("len(cells) = %d, want header only", len(cells))
	}
}
