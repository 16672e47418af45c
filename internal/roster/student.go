// Package roster holds the student records the grade engine reads.
// Records are imported by an external collaborator and never mutated here.
package roster

import "strings"

// Student is the identity record of one enrolled student.
type Student struct {
	ID             string `json:"id" validate:"required"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name"`
	SecondLastName string `json:"second_last_name,omitempty"`
	Group          string `json:"group,omitempty"`
	Subgroup       string `json:"subgroup,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string `json:"phone,omitempty"`
}

// DisplayName returns "LastName SecondLastName, FirstName", skipping empty parts.
func (s Student) DisplayName() string {
	surname := strings.TrimSpace(strings.Join([]string{s.LastName, s.SecondLastName}, " "))
	switch {
	case surname == "":
		return s.FirstName
	case s.FirstName == "":
		return surname
	default:
		return surname + ", " + s.FirstName
	}
}

// Roster is an ordered list of students. Order is the tie-break order
// for every ranking computed over it.
type Roster []Student

// IDs returns the student IDs in roster order.
func (r Roster) IDs() []string {
	ids := make([]string, len(r))
	for i, s := range r {
		ids[i] = s.ID
	}
	return ids
}

// Index maps each student ID to its first position in the roster.
func (r Roster) Index() map[string]int {
	idx := make(map[string]int, len(r))
	for i, s := range r {
		if _, ok := idx[s.ID]; !ok {
			idx[s.ID] = i
		}
	}
	return idx
}

// Find returns the student with the given ID.
func (r Roster) Find(id string) (Student, bool) {
	for _, s := range r {
		if s.ID == id {
			return s, true
		}
	}
	return Student{}, false
}

// ByGroup returns the students of a practice group, in roster order.
func (r Roster) ByGroup(group string) Roster {
	var out Roster
	for _, s := range r {
		if s.Group == group {
			out = append(out, s)
		}
	}
	return out
}

// Groups returns the distinct non-empty groups in order of first appearance.
func (r Roster) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, s := range r {
		if s.Group == "" || seen[s.Group] {
			continue
		}
		seen[s.Group] = true
		groups = append(groups, s.Group)
	}
	return groups
}
