package grades

import (
	"github.com/volatiletech/null/v8"

	"github.com/abhisek/boletin/internal/roster"
)

// PassMark is the lowest passing score on the 0-10 scale.
const PassMark = 5.0

// Passing reports whether score reaches the pass mark.
func Passing(score float64) bool {
	return score >= PassMark
}

// Summary is the cohort-level rollup shown on dashboards.
type Summary struct {
	TotalStudents   int          `json:"total_students"`
	OverallAverage  null.Float64 `json:"overall_average"`
	PassingStudents int          `json:"passing_students"`
	AtRiskStudents  int          `json:"at_risk_students"`
}

// CohortSummary counts passing and at-risk students from their best
// evaluation (a resit supersedes an earlier failing attempt) and averages
// every evaluation's final score. The overall average is evaluation-level:
// a student with three evaluations contributes three samples.
//
// Students without a scored evaluation are neither passing nor at risk.
// Evaluations of students absent from the roster are ignored.
func CohortSummary(sc Scoring, students []roster.Student, evaluations []Evaluation) Summary {
	if len(students) == 0 {
		return Summary{}
	}

	known := make(map[string]bool, len(students))
	for _, s := range students {
		known[s.ID] = true
	}

	best := make(map[string]float64, len(students))
	var all []float64
	for _, e := range evaluations {
		if !known[e.StudentID] {
			continue
		}
		score := sc.FinalScore(e)
		if !score.Valid {
			continue
		}
		all = append(all, score.Float64)
		if cur, ok := best[e.StudentID]; !ok || score.Float64 > cur {
			best[e.StudentID] = score.Float64
		}
	}

	summary := Summary{
		TotalStudents:  len(students),
		OverallAverage: meanOf(all),
	}
	counted := make(map[string]bool, len(best))
	for _, s := range students {
		b, ok := best[s.ID]
		if !ok || counted[s.ID] {
			continue
		}
		counted[s.ID] = true
		if Passing(b) {
			summary.PassingStudents++
		} else {
			summary.AtRiskStudents++
		}
	}
	return summary
}

// StaleEvaluations returns the evaluations whose student is not in the roster.
// Cohort calculations skip these; callers may want to report them.
func StaleEvaluations(students []roster.Student, evaluations []Evaluation) []Evaluation {
	known := make(map[string]bool, len(students))
	for _, s := range students {
		known[s.ID] = true
	}
	var stale []Evaluation
	for _, e := range evaluations {
		if !known[e.StudentID] {
			stale = append(stale, e)
		}
	}
	return stale
}
