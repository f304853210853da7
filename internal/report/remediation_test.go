package report

import (
	"testing"

	"github.com/pjok-digital/backend/internal/models"
)

// Worked example: daily [80 90 70], PTS 75, PAS 60, kkm 75. The final
// report score is 74, one short, and raising PAS to 80 is enough.
func TestSolveRemediationRaisesPAS(t *testing.T) {
	grades := models.Grades{Daily: []int{80, 90, 70}, PTS: 75, PAS: 60}

	out := SolveRemediation(grades, 3, 75)
	if out.PAS != 80 {
		t.Errorf("PAS = %d, want 80", out.PAS)
	}
	if out.PTS != 75 {
		t.Errorf("PTS = %d, want 75 (untouched)", out.PTS)
	}
	for i, d := range out.Daily {
		if d != grades.Daily[i] {
			t.Errorf("Daily[%d] = %d, want %d (untouched)", i, d, grades.Daily[i])
		}
	}

	stats := ComputeGradeStats(out, 3)
	if stats.ReportFinal != 79 {
		t.Errorf("ReportFinal = %d, want 79", stats.ReportFinal)
	}
}

func TestSolveRemediationPassingUnchanged(t *testing.T) {
	grades := models.Grades{Daily: []int{80, 80}, PTS: 80, PAS: 80}

	out := SolveRemediation(grades, 2, 75)
	if out.PTS != 80 || out.PAS != 80 {
		t.Errorf("out = %+v, want unchanged", out)
	}
	for i, d := range out.Daily {
		if d != 80 {
			t.Errorf("Daily[%d] = %d, want 80", i, d)
		}
	}
}

// When maxing PAS is not enough the solver spills into PTS.
func TestSolveRemediationSpillsToPTS(t *testing.T) {
	grades := models.Grades{Daily: []int{60, 60}, PTS: 20, PAS: 10}

	out := SolveRemediation(grades, 2, 75)
	if out.PAS != 100 {
		t.Errorf("PAS = %d, want 100", out.PAS)
	}
	// Target 2*60 + PTS + 100 >= 300 -> PTS rises to 80.
	if out.PTS != 80 {
		t.Errorf("PTS = %d, want 80", out.PTS)
	}
	if out.Daily[0] != 60 || out.Daily[1] != 60 {
		t.Errorf("Daily = %v, want untouched", out.Daily)
	}
	stats := ComputeGradeStats(out, 2)
	if !IsPassing(stats.ReportFinal, 75) {
		t.Errorf("ReportFinal = %d, still below 75", stats.ReportFinal)
	}
}

func TestSolveRemediationRaisesDaily(t *testing.T) {
	grades := models.Grades{Daily: []int{10, 20}, PTS: 10, PAS: 10}

	out := SolveRemediation(grades, 2, 75)
	if out.PAS != 100 || out.PTS != 100 {
		t.Errorf("PTS/PAS = %d/%d, want 100/100", out.PTS, out.PAS)
	}
	// Target 2*da + 200 >= 300 -> da >= 50, so every slot rises to 50.
	for i, d := range out.Daily {
		if d != 50 {
			t.Errorf("Daily[%d] = %d, want 50", i, d)
		}
	}
	stats := ComputeGradeStats(out, 2)
	if !IsPassing(stats.ReportFinal, 75) {
		t.Errorf("ReportFinal = %d, still below 75", stats.ReportFinal)
	}
}

// The solver only ever raises scores and never exceeds 100, whatever the
// starting point.
func TestSolveRemediationMonotonic(t *testing.T) {
	cases := []struct {
		name   string
		grades models.Grades
		count  int
		kkm    int
	}{
		{"near miss", models.Grades{Daily: []int{70, 70, 70}, PTS: 70, PAS: 70}, 3, 75},
		{"all zero", models.Grades{}, 3, 75},
		{"high threshold", models.Grades{Daily: []int{50}, PTS: 50, PAS: 50}, 1, 100},
		{"short daily slice", models.Grades{Daily: []int{60}, PTS: 60, PAS: 60}, 4, 80},
	}

	for _, tt := range cases {
		out := SolveRemediation(tt.grades, tt.count, tt.kkm)

		if out.PTS < tt.grades.PTS || out.PTS > 100 {
			t.Errorf("%s: PTS %d -> %d out of range", tt.name, tt.grades.PTS, out.PTS)
		}
		if out.PAS < tt.grades.PAS || out.PAS > 100 {
			t.Errorf("%s: PAS %d -> %d out of range", tt.name, tt.grades.PAS, out.PAS)
		}
		for i, d := range out.Daily {
			before := 0
			if i < len(tt.grades.Daily) {
				before = tt.grades.Daily[i]
			}
			if d < before || d > 100 {
				t.Errorf("%s: Daily[%d] %d -> %d out of range", tt.name, i, before, d)
			}
		}

		stats := ComputeGradeStats(out, tt.count)
		if !IsPassing(stats.ReportFinal, tt.kkm) {
			t.Errorf("%s: ReportFinal = %d, want >= %d", tt.name, stats.ReportFinal, tt.kkm)
		}
	}
}
