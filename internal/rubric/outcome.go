package rubric

import "slices"

// Criterion is the smallest gradable unit of an outcome, scored 0-10.
type Criterion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Outcome is a weighted learning outcome (RA, resultado de aprendizaje)
// made of one or more evaluation criteria.
type Outcome struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Weight   float64     `json:"weight"`
	Criteria []Criterion `json:"criteria"`
}

// CriterionIDs returns the outcome's criterion IDs in declared order.
func (o Outcome) CriterionIDs() []string {
	ids := make([]string, len(o.Criteria))
	for i, c := range o.Criteria {
		ids[i] = c.ID
	}
	return ids
}

func (o Outcome) clone() Outcome {
	o.Criteria = slices.Clone(o.Criteria)
	return o
}

// Rubric is an immutable, validated, ordered set of outcomes.
// A *Rubric is safe to share between goroutines.
type Rubric struct {
	outcomes  []Outcome
	byID      map[string]int
	criterion map[string]map[string]bool
}

// New validates outcomes and builds a Rubric from a private copy of them.
func New(outcomes []Outcome) (*Rubric, error) {
	if err := validateOutcomes(outcomes); err != nil {
		return nil, err
	}
	return build(outcomes), nil
}

func build(outcomes []Outcome) *Rubric {
	r := &Rubric{
		outcomes:  make([]Outcome, len(outcomes)),
		byID:      make(map[string]int, len(outcomes)),
		criterion: make(map[string]map[string]bool, len(outcomes)),
	}
	for i, o := range outcomes {
		r.outcomes[i] = o.clone()
		r.byID[o.ID] = i
		set := make(map[string]bool, len(o.Criteria))
		for _, c := range o.Criteria {
			set[c.ID] = true
		}
		r.criterion[o.ID] = set
	}
	return r
}

// Outcomes returns a copy of every outcome in declared order.
func (r *Rubric) Outcomes() []Outcome {
	if r == nil {
		return nil
	}
	out := make([]Outcome, len(r.outcomes))
	for i, o := range r.outcomes {
		out[i] = o.clone()
	}
	return out
}

// Len returns the number of outcomes.
func (r *Rubric) Len() int {
	if r == nil {
		return 0
	}
	return len(r.outcomes)
}

// Outcome returns the outcome with the given ID.
func (r *Rubric) Outcome(id string) (Outcome, bool) {
	if r == nil {
		return Outcome{}, false
	}
	i, ok := r.byID[id]
	if !ok {
		return Outcome{}, false
	}
	return r.outcomes[i].clone(), true
}

// HasCriterion reports whether criterionID is declared under outcomeID.
func (r *Rubric) HasCriterion(outcomeID, criterionID string) bool {
	if r == nil {
		return false
	}
	return r.criterion[outcomeID][criterionID]
}

// TotalWeight returns the sum of all outcome weights.
func (r *Rubric) TotalWeight() float64 {
	if r == nil {
		return 0
	}
	total := 0.0
	for _, o := range r.outcomes {
		total += o.Weight
	}
	return total
}

// Validate re-runs the structural checks on the rubric.
func (r *Rubric) Validate() error {
	if r == nil {
		return validateOutcomes(nil)
	}
	return validateOutcomes(r.outcomes)
}
