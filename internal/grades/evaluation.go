package grades

import (
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/abhisek/boletin/internal/rubric"
)

// CriterionScore is the grade given to one rubric criterion.
// A null Score means "not yet graded", which is distinct from 0.
type CriterionScore struct {
	Score null.Float64 `json:"score" validate:"omitempty,gte=0,lte=10"`
	Notes string       `json:"notes,omitempty"`
}

// Evaluation is one practical-exam evaluation of a student.
// Scores is keyed by outcome ID, then criterion ID.
type Evaluation struct {
	ID         string                               `json:"id"`
	StudentID  string                               `json:"student_id" validate:"required"`
	Period     Period                               `json:"period" validate:"required,oneof=t1 t2 t3 rec"`
	Scores     map[string]map[string]CriterionScore `json:"scores" validate:"dive,dive"`
	FinalScore null.Float64                         `json:"final_score" validate:"omitempty,gte=0,lte=10"`
}

// ScoreSource selects where an evaluation's final score comes from.
type ScoreSource string

const (
	// StoredFirst trusts a stored FinalScore and derives only when it is
	// absent. A stored value can go stale if criteria are edited later.
	StoredFirst ScoreSource = "stored"

	// AlwaysDerive ignores stored values and recomputes from criteria.
	AlwaysDerive ScoreSource = "derived"
)

// ParseScoreSource parses a configured score source; empty means StoredFirst.
func ParseScoreSource(s string) (ScoreSource, error) {
	switch ScoreSource(s) {
	case "", StoredFirst:
		return StoredFirst, nil
	case AlwaysDerive:
		return AlwaysDerive, nil
	default:
		return "", fmt.Errorf("unknown final score source %q (want %q or %q)", s, StoredFirst, AlwaysDerive)
	}
}

// Scoring resolves evaluation final scores against a rubric.
type Scoring struct {
	Rubric *rubric.Rubric
	Source ScoreSource
}

// FinalScore returns the evaluation's composite score per s.Source.
func (s Scoring) FinalScore(e Evaluation) null.Float64 {
	if s.Source != AlwaysDerive && e.FinalScore.Valid {
		return e.FinalScore
	}
	return DerivedScore(s.Rubric, e)
}

// DerivedScore recomputes an evaluation's composite from its criteria:
// the weight-normalised mean of the outcome sub-scores of every outcome
// with at least one graded criterion. Null when no outcome is graded.
func DerivedScore(r *rubric.Rubric, e Evaluation) null.Float64 {
	weighted, weights := 0.0, 0.0
	for _, o := range r.Outcomes() {
		sub, ok := outcomeSubScore(o, e)
		if !ok {
			continue
		}
		weighted += o.Weight * sub
		weights += o.Weight
	}
	if weights == 0 {
		return null.Float64{}
	}
	return null.Float64From(weighted / weights)
}

// outcomeSubScore is the mean of the evaluation's graded criteria for o,
// visited in rubric order. Criteria not declared by the rubric are ignored.
// ok is false when no criterion of o is graded.
func outcomeSubScore(o rubric.Outcome, e Evaluation) (sub float64, ok bool) {
	scores, found := e.Scores[o.ID]
	if !found {
		return 0, false
	}
	var values []float64
	for _, c := range o.Criteria {
		if cs, found := scores[c.ID]; found {
			values = appendValid(values, cs.Score)
		}
	}
	m := meanOf(values)
	return m.Float64, m.Valid
}
