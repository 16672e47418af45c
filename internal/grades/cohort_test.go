package grades

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCohortSummary_EmptyRoster(t *testing.T) {
	got := CohortSummary(stored(t), nil, nil)
	assert.Equal(t, Summary{}, got)
	assert.False(t, got.OverallAverage.Valid)

	// Evaluations alone do not make a cohort.
	got = CohortSummary(stored(t), nil, []Evaluation{withFinal("s1", 7)})
	assert.Equal(t, Summary{}, got)
}

func TestCohortSummary_BestAttempt(t *testing.T) {
	students := makeStudents("A", "B")
	evals := []Evaluation{withFinal("A", 4), withFinal("A", 8), withFinal("B", 6)}

	got := CohortSummary(stored(t), students, evals)

	assert.Equal(t, 2, got.TotalStudents)
	assert.Equal(t, 2, got.PassingStudents)
	assert.Equal(t, 0, got.AtRiskStudents)
	require.True(t, got.OverallAverage.Valid)
	assert.InDelta(t, 6.0, got.OverallAverage.Float64, epsilon)
}

func TestCohortSummary_AtRiskAndUnevaluated(t *testing.T) {
	students := makeStudents("A", "B", "C", "D")
	evals := []Evaluation{
		withFinal("A", 4.99),
		withFinal("B", 5),
		withFinal("D", 0),
	}

	got := CohortSummary(stored(t), students, evals)

	assert.Equal(t, 4, got.TotalStudents)
	assert.Equal(t, 1, got.PassingStudents)
	assert.Equal(t, 2, got.AtRiskStudents, "A and D are at risk; C has no evaluations")
}

func TestCohortSummary_NoEvaluations(t *testing.T) {
	got := CohortSummary(stored(t), makeStudents("A", "B"), nil)
	assert.Equal(t, 2, got.TotalStudents)
	assert.False(t, got.OverallAverage.Valid)
	assert.Zero(t, got.PassingStudents)
	assert.Zero(t, got.AtRiskStudents)
}

func TestCohortSummary_IgnoresUnknownStudents(t *testing.T) {
	students := makeStudents("A")
	evals := []Evaluation{withFinal("A", 8), withFinal("ghost", 0)}

	got := CohortSummary(stored(t), students, evals)

	assert.InDelta(t, 8.0, got.OverallAverage.Float64, epsilon)
	assert.Equal(t, 1, got.PassingStudents)
	assert.Equal(t, 0, got.AtRiskStudents)
}

func TestCohortSummary_SkipsUnscoredEvaluations(t *testing.T) {
	students := makeStudents("A", "B")
	evals := []Evaluation{
		withFinal("A", 6),
		{StudentID: "B", Period: PeriodT1, Scores: map[string]map[string]CriterionScore{"a": {"a1": ungraded}}},
	}

	got := CohortSummary(stored(t), students, evals)

	assert.InDelta(t, 6.0, got.OverallAverage.Float64, epsilon)
	assert.Equal(t, 1, got.PassingStudents)
	assert.Equal(t, 0, got.AtRiskStudents)
}

func TestCohortSummary_DerivesMissingFinalScores(t *testing.T) {
	students := makeStudents("A")
	evals := []Evaluation{
		{StudentID: "A", Period: PeriodT2, Scores: map[string]map[string]CriterionScore{"b": {"b1": graded(3)}}},
	}

	got := CohortSummary(stored(t), students, evals)

	assert.InDelta(t, 3.0, got.OverallAverage.Float64, epsilon)
	assert.Equal(t, 1, got.AtRiskStudents)
}

func TestCohortSummary_DuplicateRosterEntriesCountOnce(t *testing.T) {
	students := makeStudents("A", "A")
	got := CohortSummary(stored(t), students, []Evaluation{withFinal("A", 9)})
	assert.Equal(t, 2, got.TotalStudents)
	assert.Equal(t, 1, got.PassingStudents)
}

func TestSummary_JSONKeepsNull(t *testing.T) {
	b, err := json.Marshal(Summary{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_students":0,"overall_average":null,"passing_students":0,"at_risk_students":0}`, string(b))
}

func TestStaleEvaluations(t *testing.T) {
	evals := []Evaluation{withFinal("A", 1), withFinal("ghost", 2), withFinal("B", 3)}
	stale := StaleEvaluations(makeStudents("A", "B"), evals)
	require.Len(t, stale, 1)
	assert.Equal(t, "ghost", stale[0].StudentID)
}

func TestPassing(t *testing.T) {
	assert.True(t, Passing(5))
	assert.True(t, Passing(10))
	assert.False(t, Passing(4.999))
}
