package grades

import (
	"sort"

	"github.com/volatiletech/null/v8"
)

// Period is a grading period.
type Period string

const (
	PeriodT1 Period = "t1"
	PeriodT2 Period = "t2"
	PeriodT3 Period = "t3"

	// PeriodRec is the make-up sitting. It exists only for practical exams
	// and is never folded into trimester averages.
	PeriodRec Period = "rec"
)

// TrimesterPeriods returns the three trimesters in order.
func TrimesterPeriods() []Period {
	return []Period{PeriodT1, PeriodT2, PeriodT3}
}

// AllPeriods returns every period a practical exam may belong to.
func AllPeriods() []Period {
	return []Period{PeriodT1, PeriodT2, PeriodT3, PeriodRec}
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodT1, PeriodT2, PeriodT3, PeriodRec:
		return true
	default:
		return false
	}
}

// IsTrimester reports whether p is t1, t2 or t3.
func (p Period) IsTrimester() bool {
	return p.Valid() && p != PeriodRec
}

// PeriodScores holds one nullable value per trimester.
type PeriodScores struct {
	T1 null.Float64 `json:"t1" validate:"omitempty,gte=0,lte=10"`
	T2 null.Float64 `json:"t2" validate:"omitempty,gte=0,lte=10"`
	T3 null.Float64 `json:"t3" validate:"omitempty,gte=0,lte=10"`
}

// Get returns the value for a trimester; other periods yield null.
func (s PeriodScores) Get(p Period) null.Float64 {
	switch p {
	case PeriodT1:
		return s.T1
	case PeriodT2:
		return s.T2
	case PeriodT3:
		return s.T3
	default:
		return null.Float64{}
	}
}

// Set stores v for a trimester; other periods are ignored.
func (s *PeriodScores) Set(p Period, v null.Float64) {
	switch p {
	case PeriodT1:
		s.T1 = v
	case PeriodT2:
		s.T2 = v
	case PeriodT3:
		s.T3 = v
	}
}

// AcademicGrades maps student ID → period → instrument key → grade.
type AcademicGrades map[string]map[Period]map[string]null.Float64

// ServiceAverages maps student ID → per-trimester service-evaluation average,
// precomputed by the service-evaluation subsystem.
type ServiceAverages map[string]PeriodScores

// ExamAverages maps student ID → per-trimester practical-exam average.
type ExamAverages map[string]PeriodScores

// CalculatedGrades bundles the precomputed per-period averages that feed
// PeriodAverages alongside the manual instrument grades.
type CalculatedGrades struct {
	Service ServiceAverages
	Exams   ExamAverages
}

// PeriodAverages reduces one student's trimester inputs to one composite
// value per trimester: the unweighted mean of every present instrument grade,
// the service average and the practical-exam average of that trimester.
// A trimester with no present value is null.
func PeriodAverages(studentID string, academic AcademicGrades, calculated CalculatedGrades) PeriodScores {
	var out PeriodScores
	instruments := academic[studentID]
	service := calculated.Service[studentID]
	exams := calculated.Exams[studentID]

	for _, p := range TrimesterPeriods() {
		var values []float64
		values = appendInstruments(values, instruments[p])
		values = appendValid(values, service.Get(p))
		values = appendValid(values, exams.Get(p))
		out.Set(p, meanOf(values))
	}
	return out
}

// CourseAverage is the mean of the trimesters that have a value.
func CourseAverage(p PeriodScores) null.Float64 {
	var values []float64
	for _, period := range TrimesterPeriods() {
		values = appendValid(values, p.Get(period))
	}
	return meanOf(values)
}

// appendInstruments appends the present grades in key order so the
// floating-point sum is reproducible across calls.
func appendInstruments(values []float64, grades map[string]null.Float64) []float64 {
	keys := make([]string, 0, len(grades))
	for k := range grades {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		values = appendValid(values, grades[k])
	}
	return values
}

func appendValid(values []float64, v null.Float64) []float64 {
	if v.Valid {
		values = append(values, v.Float64)
	}
	return values
}

// meanOf returns the arithmetic mean of values, or null when empty.
func meanOf(values []float64) null.Float64 {
	if len(values) == 0 {
		return null.Float64{}
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return null.Float64From(sum / float64(len(values)))
}
