package grades

// PracticalExamAverages computes, per student and trimester, the mean final
// score of that trimester's practical exams. Make-up (rec) sittings and
// evaluations without a resolvable score are left out.
func PracticalExamAverages(sc Scoring, evaluations []Evaluation) ExamAverages {
	type key struct {
		student string
		period  Period
	}
	values := make(map[key][]float64)
	var order []string
	seen := make(map[string]bool)

	for _, e := range evaluations {
		if !e.Period.IsTrimester() {
			continue
		}
		score := sc.FinalScore(e)
		if !score.Valid {
			continue
		}
		k := key{e.StudentID, e.Period}
		values[k] = append(values[k], score.Float64)
		if !seen[e.StudentID] {
			seen[e.StudentID] = true
			order = append(order, e.StudentID)
		}
	}

	out := make(ExamAverages, len(order))
	for _, id := range order {
		var scores PeriodScores
		for _, p := range TrimesterPeriods() {
			scores.Set(p, meanOf(values[key{id, p}]))
		}
		out[id] = scores
	}
	return out
}
