package report

import "github.com/pjok-digital/backend/internal/models"

// SolveRemediation ("katrol") computes the minimal raise-only
// adjustment that lifts a failing student's final report score to the
// threshold. Adjustments apply in a fixed priority order — PAS first,
// then PTS, then every daily slot uniformly — and never push any field
// past 100 or below its current value. A passing student comes back
// unchanged.
//
// Target: 2*dailyAverage + PTS + PAS >= 4*kkm.
func SolveRemediation(grades models.Grades, dailyCount, kkm int) models.Grades {
	stats := ComputeGradeStats(grades, dailyCount)
	if IsPassing(stats.ReportFinal, kkm) {
		return grades
	}

	out := models.Grades{
		Daily: make([]int, dailyCount),
		PTS:   grades.PTS,
		PAS:   grades.PAS,
	}
	copy(out.Daily, grades.Daily)

	base := 2*stats.DailyAverage + out.PTS
	requiredPAS := 4*kkm - base
	if requiredPAS <= 100 {
		if requiredPAS > out.PAS {
			out.PAS = requiredPAS
		}
		return out
	}

	out.PAS = 100
	requiredPTS := 4*kkm - 2*stats.DailyAverage - 100
	if requiredPTS <= 100 {
		if requiredPTS > out.PTS {
			out.PTS = requiredPTS
		}
		return out
	}

	out.PTS = 100
	requiredDaily := (4*kkm - 200 + 1) / 2
	if requiredDaily > 100 {
		requiredDaily = 100
	}
	for i := range out.Daily {
		if out.Daily[i] < requiredDaily {
			out.Daily[i] = requiredDaily
		}
	}
	return out
}
