package report

import (
	"testing"

	"github.com/pjok-digital/backend/internal/models"
)

func TestComputeGradeStats(t *testing.T) {
	tests := []struct {
		name   string
		grades models.Grades
		count  int
		want   GradeStats
	}{
		{
			name:   "worked example",
			grades: models.Grades{Daily: []int{80, 90, 70}, PTS: 75, PAS: 60},
			count:  3,
			want:   GradeStats{DailyAverage: 80, ReportMidterm: 78, ReportFinal: 74},
		},
		{
			name:   "no materials",
			grades: models.Grades{PTS: 80, PAS: 90},
			count:  0,
			want:   GradeStats{DailyAverage: 0, ReportMidterm: 40, ReportFinal: 43},
		},
		{
			name:   "missing daily slots count as zero",
			grades: models.Grades{Daily: []int{100}, PTS: 100, PAS: 100},
			count:  2,
			want:   GradeStats{DailyAverage: 50, ReportMidterm: 75, ReportFinal: 75},
		},
		{
			name:   "all full marks",
			grades: models.Grades{Daily: []int{100, 100}, PTS: 100, PAS: 100},
			count:  2,
			want:   GradeStats{DailyAverage: 100, ReportMidterm: 100, ReportFinal: 100},
		},
		{
			name:   "rounding to nearest",
			grades: models.Grades{Daily: []int{75, 76}, PTS: 74, PAS: 73},
			count:  2,
			// avg = round(75.5) = 76, midterm = round(75) = 75,
			// final = round((152+74+73)/4) = round(74.75) = 75
			want: GradeStats{DailyAverage: 76, ReportMidterm: 75, ReportFinal: 75},
		},
	}

	for _, tt := range tests {
		got := ComputeGradeStats(tt.grades, tt.count)
		if got != tt.want {
			t.Errorf("%s: ComputeGradeStats = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestGradesEffective(t *testing.T) {
	seventy := 70
	ninety := 90
	g := models.Grades{
		Daily:         []int{80, 60},
		PTS:           75,
		PAS:           60,
		DailyRemedial: []*int{nil, &ninety},
		PASRemedial:   &seventy,
	}

	eff := g.Effective()
	if eff.Daily[0] != 80 || eff.Daily[1] != 90 {
		t.Errorf("effective daily = %v, want [80 90]", eff.Daily)
	}
	if eff.PTS != 75 {
		t.Errorf("effective PTS = %d, want 75", eff.PTS)
	}
	if eff.PAS != 70 {
		t.Errorf("effective PAS = %d, want 70", eff.PAS)
	}
}

// A remedial score below the base score never lowers the effective value.
func TestGradesEffectiveRaiseOnly(t *testing.T) {
	low := 10
	g := models.Grades{Daily: []int{85}, PTS: 80, PAS: 75, PTSRemedial: &low, PASRemedial: &low}

	eff := g.Effective()
	if eff.PTS != 80 || eff.PAS != 75 {
		t.Errorf("effective = PTS %d PAS %d, want 80 75", eff.PTS, eff.PAS)
	}
}
