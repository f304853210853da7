package grades

import (
	"testing"

	"github.com/pjok-digital/backend/internal/models"
	"github.com/pjok-digital/backend/internal/report"
)

func TestBuildRecapCSV(t *testing.T) {
	materials := []models.MaterialInfo{
		{ID: 1, Position: 1, Label: "NH1", Topic: "Bola Voli"},
		{ID: 2, Position: 2, Label: "NH2", Topic: "Atletik"},
	}
	eighty := 80
	rows := []GradeRecapRow{
		{
			Student: models.Student{NIS: "2400123", Name: "Budi Santoso", ClassName: "7A"},
			Grades: models.Grades{
				Daily:         []int{70, 60},
				PTS:           75,
				PAS:           60,
				DailyRemedial: []*int{nil, nil},
				PASRemedial:   &eighty,
			},
			Stats:   report.GradeStats{DailyAverage: 65, ReportMidterm: 70, ReportFinal: 69},
			KKM:     75,
			Passing: false,
		},
	}

	cells := BuildRecapCSV(rows, materials)
	if len(cells) != 2 {
		t.Fatalf("len(cells) = %d, want 2", len(cells))
	}

	header := cells[0]
	if header[4] != "NH1" || header[5] != "NH2" {
		t.Errorf("material columns = %v", header[4:6])
	}

	row := cells[1]
	if row[4] != "70" || row[5] != "60" {
		t.Errorf("daily cells = %v", row[4:6])
	}
	// PAS column shows the effective score: max(60, 80 remedial)
	if row[8] != "80" {
		t.Errorf("PAS cell = %q, want \"80\"", row[8])
	}
	if row[len(row)-1] != "Belum Tuntas" {
		t.Errorf("status cell = %q, want \"Belum Tuntas\"", row[len(row)-1])
	}
}

func TestBuildRecapCSVShortDailySlice(t *testing.T) {
	materials := []models.MaterialInfo{
		{ID: 1, Position: 1, Label: "NH1"},
		{ID: 2, Position: 2, Label: "NH2"},
		{ID: 3, Position: 3, Label: "NH3"},
	}
	rows := []GradeRecapRow{
		{
			Student: models.Student{NIS: "2400124", Name: "Siti", ClassName: "8B"},
			Grades:  models.Grades{Daily: []int{90}},
			Passing: true,
		},
	}

	cells := BuildRecapCSV(rows, materials)
	row := cells[1]
	if row[4] != "90" || row[5] != "0" || row[6] != "0" {
		t.Errorf("daily cells = %v, want [90 0 0]", row[4:7])
	}
	if row[len(row)-1] != "Tuntas" {
		t.Errorf("status cell = %q, want \"Tuntas\"", row[len(row)-1])
	}
}
