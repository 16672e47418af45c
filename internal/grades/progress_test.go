package grades

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/boletin/internal/rubric"
)

func TestRAProgress_OneEntryPerOutcomeInOrder(t *testing.T) {
	r := rubric.Default()
	inputs := map[string][]Evaluation{
		"no evaluations": nil,
		"unrelated scores": {
			{Scores: map[string]map[string]CriterionScore{"other": {"x": graded(5)}}},
		},
		"partial": {
			{Scores: map[string]map[string]CriterionScore{"ra3": {"ra3.a": graded(5)}}},
		},
	}

	want := r.Outcomes()
	for name, evals := range inputs {
		t.Run(name, func(t *testing.T) {
			got := RAProgress(r, evals)
			require.Len(t, got, len(want))
			for i, o := range want {
				assert.Equal(t, o.ID, got[i].ID)
				assert.Equal(t, o.Name, got[i].Name)
				assert.Equal(t, o.Weight, got[i].Weight)
			}
		})
	}
}

func TestRAProgress_TwoLevelMean(t *testing.T) {
	r := testRubric(t)
	evals := []Evaluation{
		{Scores: map[string]map[string]CriterionScore{"a": {"a1": graded(10), "a2": graded(8)}}},
		{Scores: map[string]map[string]CriterionScore{"a": {"a1": graded(4), "a2": ungraded}}},
	}

	got := RAProgress(r, evals)

	// Per-evaluation sub-scores are 9 and 4; a flattened mean would give 22/3.
	require.True(t, got[0].Average.Valid)
	assert.InDelta(t, 6.5, got[0].Average.Float64, epsilon)
}

func TestRAProgress_UngradedOutcomeIsNull(t *testing.T) {
	r := testRubric(t)
	evals := []Evaluation{
		{Scores: map[string]map[string]CriterionScore{"a": {"a1": graded(7)}, "b": {"b1": ungraded}}},
		{Scores: map[string]map[string]CriterionScore{"a": {"a2": graded(5)}}},
	}

	got := RAProgress(r, evals)

	assert.InDelta(t, 6.0, got[0].Average.Float64, epsilon)
	assert.False(t, got[1].Average.Valid, "outcome b has no graded criteria")
}

func TestRAProgress_EvaluationWithoutGradesDoesNotCountAsZero(t *testing.T) {
	r := testRubric(t)
	evals := []Evaluation{
		{Scores: map[string]map[string]CriterionScore{"b": {"b1": graded(8)}}},
		{Scores: map[string]map[string]CriterionScore{"b": {"b1": ungraded}}},
		{},
	}
	got := RAProgress(r, evals)
	assert.InDelta(t, 8.0, got[1].Average.Float64, epsilon)
}

func TestRAProgress_UnknownKeysAreNoData(t *testing.T) {
	r := testRubric(t)
	evals := []Evaluation{
		{Scores: map[string]map[string]CriterionScore{
			"a":     {"nope": graded(10)},
			"ghost": {"a1": graded(10)},
		}},
	}
	got := RAProgress(r, evals)
	assert.False(t, got[0].Average.Valid)
	assert.False(t, got[1].Average.Valid)
}

func TestStudentRAProgress(t *testing.T) {
	r := testRubric(t)
	evals := []Evaluation{
		{StudentID: "s1", Scores: map[string]map[string]CriterionScore{"a": {"a1": graded(9)}}},
		{StudentID: "s2", Scores: map[string]map[string]CriterionScore{"a": {"a1": graded(1)}}},
	}

	got := StudentRAProgress(r, "s1", evals)
	assert.InDelta(t, 9.0, got[0].Average.Float64, epsilon)

	none := StudentRAProgress(r, "s3", evals)
	require.Len(t, none, 2)
	assert.False(t, none[0].Average.Valid)
}
