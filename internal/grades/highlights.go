package grades

import (
	"sort"

	"github.com/abhisek/boletin/internal/roster"
)

// HighlightCount is the length of the top and bottom lists.
const HighlightCount = 3

// HighlightedStudent is one ranked entry of a highlight list.
type HighlightedStudent struct {
	Student     roster.Student `json:"student"`
	Average     float64        `json:"average"`
	Evaluations int            `json:"evaluations"`
}

// HighlightSet holds the strongest and weakest performers.
type HighlightSet struct {
	Top    []HighlightedStudent `json:"top"`
	Bottom []HighlightedStudent `json:"bottom"`
}

// Highlights ranks students by the mean final score of their evaluations.
//
// Students whose mean is not above zero are dropped; this includes students
// with no evaluations (sentinel 0) and, indistinguishably, students whose
// genuine average is 0. Top holds the first HighlightCount of the
// descending ranking and Bottom the last HighlightCount, weakest first, so
// the lists overlap when few students remain. Ties keep roster order.
func Highlights(sc Scoring, students []roster.Student, evaluations []Evaluation) HighlightSet {
	sums := make(map[string]float64, len(students))
	counts := make(map[string]int, len(students))
	for _, e := range evaluations {
		score := sc.FinalScore(e)
		if !score.Valid {
			continue
		}
		sums[e.StudentID] += score.Float64
		counts[e.StudentID]++
	}

	ranked := make([]HighlightedStudent, 0, len(students))
	for _, s := range students {
		avg := 0.0
		if n := counts[s.ID]; n > 0 {
			avg = sums[s.ID] / float64(n)
		}
		if avg <= 0 {
			continue
		}
		ranked = append(ranked, HighlightedStudent{Student: s, Average: avg, Evaluations: counts[s.ID]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Average > ranked[j].Average
	})

	n := min(HighlightCount, len(ranked))
	top := make([]HighlightedStudent, n)
	copy(top, ranked[:n])

	bottom := make([]HighlightedStudent, 0, n)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
		bottom = append(bottom, ranked[i])
	}

	return HighlightSet{Top: top, Bottom: bottom}
}
