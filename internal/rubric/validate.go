package rubric

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidRubric is wrapped by every rubric configuration error.
var ErrInvalidRubric = errors.New("invalid rubric")

// weightTolerance is the allowed drift of the outcome weight sum from 1.0.
const weightTolerance = 0.001

// validateOutcomes performs all structural checks on the given outcomes.
// Returns a combined error describing all problems found, or nil if valid.
func validateOutcomes(outcomes []Outcome) error {
	var errs []string

	if len(outcomes) == 0 {
		errs = append(errs, "no outcomes defined")
	}

	seen := make(map[string]bool, len(outcomes))
	total := 0.0
	for i, o := range outcomes {
		prefix := fmt.Sprintf("outcome %q", o.ID)
		if o.ID == "" {
			prefix = fmt.Sprintf("outcome #%d", i)
			errs = append(errs, fmt.Sprintf("%s: empty ID", prefix))
		} else if seen[o.ID] {
			errs = append(errs, fmt.Sprintf("duplicate outcome ID: %q", o.ID))
		}
		seen[o.ID] = true

		if math.IsNaN(o.Weight) || o.Weight <= 0 || o.Weight > 1 {
			errs = append(errs, fmt.Sprintf("%s: weight must be in (0, 1], got %f", prefix, o.Weight))
		} else {
			total += o.Weight
		}

		if len(o.Criteria) == 0 {
			errs = append(errs, fmt.Sprintf("%s has no criteria", prefix))
		}
		criteria := make(map[string]bool, len(o.Criteria))
		for j, c := range o.Criteria {
			switch {
			case c.ID == "":
				errs = append(errs, fmt.Sprintf("%s criterion #%d: empty ID", prefix, j))
			case criteria[c.ID]:
				errs = append(errs, fmt.Sprintf("%s: duplicate criterion ID %q", prefix, c.ID))
			}
			criteria[c.ID] = true
		}
	}

	if len(outcomes) > 0 && math.Abs(total-1.0) > weightTolerance {
		errs = append(errs, fmt.Sprintf("outcome weights sum to %.4f, must sum to 1.0", total))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidRubric, strings.Join(errs, "\n  "))
	}
	return nil
}
