package grades

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/abhisek/boletin/internal/roster"
	"github.com/abhisek/boletin/internal/rubric"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// testRubric has outcome "a" (0.6; criteria a1, a2) and "b" (0.4; criterion b1).
func testRubric(t *testing.T) *rubric.Rubric {
	t.Helper()
	r, err := rubric.New([]rubric.Outcome{
		{ID: "a", Name: "Cocción", Weight: 0.6, Criteria: []rubric.Criterion{{ID: "a1"}, {ID: "a2"}}},
		{ID: "b", Name: "Higiene", Weight: 0.4, Criteria: []rubric.Criterion{{ID: "b1"}}},
	})
	require.NoError(t, err)
	return r
}

func graded(v float64) CriterionScore {
	return CriterionScore{Score: null.Float64From(v)}
}

var ungraded = CriterionScore{Notes: "pending"}

func num(v float64) null.Float64 {
	return null.Float64From(v)
}

// withFinal builds a t1 evaluation carrying only a stored final score.
func withFinal(studentID string, final float64) Evaluation {
	return Evaluation{
		ID:         fmt.Sprintf("%s-%v", studentID, final),
		StudentID:  studentID,
		Period:     PeriodT1,
		FinalScore: null.Float64From(final),
	}
}

func makeStudents(ids ...string) []roster.Student {
	out := make([]roster.Student, len(ids))
	for i, id := range ids {
		out[i] = roster.Student{ID: id, FirstName: id}
	}
	return out
}

func stored(t *testing.T) Scoring {
	return Scoring{Rubric: testRubric(t), Source: StoredFirst}
}

func highlightIDs(hs []HighlightedStudent) []string {
	ids := make([]string, len(hs))
	for i, h := range hs {
		ids[i] = h.Student.ID
	}
	return ids
}

func highlightAverages(hs []HighlightedStudent) []float64 {
	avgs := make([]float64, len(hs))
	for i, h := range hs {
		avgs[i] = h.Average
	}
	return avgs
}
