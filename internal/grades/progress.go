package grades

import (
	"github.com/volatiletech/null/v8"

	"github.com/abhisek/boletin/internal/rubric"
)

// OutcomeProgress is the cohort-level average of one learning outcome.
type OutcomeProgress struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Average null.Float64 `json:"average"`
	Weight  float64      `json:"weight"`
}

// RAProgress returns one entry per rubric outcome, in rubric order.
//
// The reduction has two levels. Each evaluation first collapses to one
// sub-score per outcome (mean of its graded criteria); the outcome average
// is then the mean of those sub-scores, so every evaluation weighs the same
// however many criteria it graded. Evaluations with no graded criterion for
// an outcome do not contribute to it.
func RAProgress(r *rubric.Rubric, evaluations []Evaluation) []OutcomeProgress {
	outcomes := r.Outcomes()
	progress := make([]OutcomeProgress, 0, len(outcomes))
	for _, o := range outcomes {
		var subScores []float64
		for _, e := range evaluations {
			if sub, ok := outcomeSubScore(o, e); ok {
				subScores = append(subScores, sub)
			}
		}
		progress = append(progress, OutcomeProgress{
			ID:      o.ID,
			Name:    o.Name,
			Average: meanOf(subScores),
			Weight:  o.Weight,
		})
	}
	return progress
}

// StudentRAProgress is RAProgress restricted to one student's evaluations.
func StudentRAProgress(r *rubric.Rubric, studentID string, evaluations []Evaluation) []OutcomeProgress {
	var own []Evaluation
	for _, e := range evaluations {
		if e.StudentID == studentID {
			own = append(own, e)
		}
	}
	return RAProgress(r, own)
}
