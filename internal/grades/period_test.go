package grades

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestPeriodAverages_NoSourcesIsNull(t *testing.T) {
	got := PeriodAverages("s1", AcademicGrades{}, CalculatedGrades{})
	for _, p := range TrimesterPeriods() {
		v := got.Get(p)
		assert.False(t, v.Valid, "period %s should be null", p)
		assert.False(t, math.IsNaN(v.Float64))
	}
}

func TestPeriodAverages_AllNullSourcesIsNull(t *testing.T) {
	academic := AcademicGrades{
		"s1": {PeriodT1: {"exam": null.Float64{}, "notebook": null.Float64{}}},
	}
	calculated := CalculatedGrades{
		Service: ServiceAverages{"s1": {}},
		Exams:   ExamAverages{"s1": {}},
	}
	got := PeriodAverages("s1", academic, calculated)
	assert.False(t, got.T1.Valid)
}

func TestPeriodAverages_MeanOfPresentSources(t *testing.T) {
	academic := AcademicGrades{
		"s1": {
			PeriodT1: {"exam": num(8), "project": null.Float64{}, "notebook": num(6)},
			PeriodT2: {"a": null.Float64{}, "b": num(4)},
		},
	}
	calculated := CalculatedGrades{
		Service: ServiceAverages{"s1": {T1: num(5), T3: num(7.5)}},
		Exams:   ExamAverages{"s1": {T2: num(8)}},
	}

	got := PeriodAverages("s1", academic, calculated)

	// t1: (8 + 6 + 5) / 3; the null project grade is not counted.
	require.True(t, got.T1.Valid)
	assert.InDelta(t, 19.0/3, got.T1.Float64, epsilon)
	// t2: (4 + 8) / 2; the denominator is the present count, not the source count.
	require.True(t, got.T2.Valid)
	assert.InDelta(t, 6.0, got.T2.Float64, epsilon)
	// t3: service only.
	require.True(t, got.T3.Valid)
	assert.InDelta(t, 7.5, got.T3.Float64, epsilon)
}

func TestPeriodAverages_ZeroIsAValue(t *testing.T) {
	academic := AcademicGrades{"s1": {PeriodT1: {"exam": num(0)}}}
	got := PeriodAverages("s1", academic, CalculatedGrades{})
	require.True(t, got.T1.Valid)
	assert.Equal(t, 0.0, got.T1.Float64)
}

func TestPeriodAverages_IgnoresRecAndOtherStudents(t *testing.T) {
	academic := AcademicGrades{
		"s1": {PeriodRec: {"resit": num(10)}},
		"s2": {PeriodT1: {"exam": num(9)}},
	}
	got := PeriodAverages("s1", academic, CalculatedGrades{})
	assert.False(t, got.T1.Valid)
	assert.False(t, got.T2.Valid)
	assert.False(t, got.T3.Valid)
}

func TestPeriodAverages_WithinInputBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		instruments := map[string]null.Float64{}
		var present []float64
		for k := range rng.IntN(6) {
			key := string(rune('a' + k))
			if rng.IntN(4) == 0 {
				instruments[key] = null.Float64{}
				continue
			}
			v := rng.Float64() * 10
			instruments[key] = num(v)
			present = append(present, v)
		}
		service := num(rng.Float64() * 10)
		present = append(present, service.Float64)

		got := PeriodAverages("s", AcademicGrades{"s": {PeriodT2: instruments}},
			CalculatedGrades{Service: ServiceAverages{"s": {T2: service}}})

		require.True(t, got.T2.Valid)
		lo, hi := slices.Min(present), slices.Max(present)
		if got.T2.Float64 < lo-epsilon || got.T2.Float64 > hi+epsilon {
			t.Fatalf("average %f outside [%f, %f] for %v", got.T2.Float64, lo, hi, present)
		}
	}
}

func TestPeriodAverages_Idempotent(t *testing.T) {
	academic := AcademicGrades{"s1": {PeriodT1: {
		"a": num(0.1), "b": num(0.2), "c": num(0.3), "d": num(7.7), "e": num(3.3),
	}}}
	calculated := CalculatedGrades{Service: ServiceAverages{"s1": {T1: num(1.0 / 3)}}}

	first := PeriodAverages("s1", academic, calculated)
	for i := 0; i < 50; i++ {
		again := PeriodAverages("s1", academic, calculated)
		if math.Float64bits(again.T1.Float64) != math.Float64bits(first.T1.Float64) {
			t.Fatalf("run %d: %v != %v", i, again.T1.Float64, first.T1.Float64)
		}
	}
}

func TestCourseAverage(t *testing.T) {
	assert.False(t, CourseAverage(PeriodScores{}).Valid)

	got := CourseAverage(PeriodScores{T1: num(6), T3: num(9)})
	require.True(t, got.Valid)
	if !almostEqual(got.Float64, 7.5) {
		t.Errorf("CourseAverage = %f, want 7.5", got.Float64)
	}
}

func TestPeriodScores_JSONKeepsNull(t *testing.T) {
	b, err := json.Marshal(PeriodScores{T1: num(0), T2: null.Float64{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t1": 0, "t2": null, "t3": null}`, string(b))
}

func TestPeriod_Valid(t *testing.T) {
	for _, p := range AllPeriods() {
		assert.True(t, p.Valid(), "%s", p)
	}
	assert.False(t, Period("t4").Valid())
	assert.False(t, Period("").Valid())
	assert.True(t, PeriodT3.IsTrimester())
	assert.False(t, PeriodRec.IsTrimester())
	assert.Equal(t, null.Float64{}, PeriodScores{T1: num(1)}.Get(PeriodRec))
}
