package report

import (
	"math"

	"github.com/pjok-digital/backend/internal/models"
)

type GradeStats struct {
	DailyAverage  int `json:"daily_average"`
	ReportMidterm int `json:"report_midterm"`
	ReportFinal   int `json:"report_final"`
}

// ComputeGradeStats derives the report figures from one student's raw
// scores. assignmentCount is the number of configured materials; slots
// beyond the recorded daily scores count as 0.
//
// The formulas are the canonical ones used on every surface:
//
//	dailyAverage  = round(sum(daily) / n)
//	reportMidterm = round((dailyAverage + PTS) / 2)
//	reportFinal   = round((2*dailyAverage + PTS + PAS) / 4)
//
// Formative work weighs double relative to each single exam in the
// final figure.
func ComputeGradeStats(grades models.Grades, assignmentCount int) GradeStats {
	avg := 0
	if assignmentCount > 0 {
		sum := 0
		for i := 0; i < assignmentCount; i++ {
			if i < len(grades.Daily) {
				sum += grades.Daily[i]
			}
		}
		avg = int(math.Round(float64(sum) / float64(assignmentCount)))
	}

	return GradeStats{
		DailyAverage:  avg,
		ReportMidterm: int(math.Round(float64(avg+grades.PTS) / 2)),
		ReportFinal:   int(math.Round(float64(2*avg+grades.PTS+grades.PAS) / 4)),
	}
}
