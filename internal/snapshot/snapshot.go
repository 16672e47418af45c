// Package snapshot reads the import file that carries a full copy of the
// program's records: roster, academic grades, service averages and
// practical-exam evaluations.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/roster"
	"github.com/abhisek/boletin/internal/schemacheck"
)

// ErrInvalidSnapshot is wrapped by every Decode error caused by file content.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is one self-consistent copy of the records the engine reads.
type Snapshot struct {
	Students        roster.Roster          `json:"students" validate:"dive"`
	AcademicGrades  grades.AcademicGrades  `json:"academic_grades" validate:"dive,dive,dive,omitempty,gte=0,lte=10"`
	ServiceAverages grades.ServiceAverages `json:"service_averages" validate:"dive"`
	Evaluations     []grades.Evaluation    `json:"evaluations" validate:"dive"`
}

// Calculated returns the precomputed averages that feed period averages:
// the stored service averages plus practical-exam averages resolved
// through sc.
func (s *Snapshot) Calculated(sc grades.Scoring) grades.CalculatedGrades {
	return grades.CalculatedGrades{
		Service: s.ServiceAverages,
		Exams:   grades.PracticalExamAverages(sc, s.Evaluations),
	}
}

// StudentEvaluations returns the evaluations of one student, in file order.
func (s *Snapshot) StudentEvaluations(studentID string) []grades.Evaluation {
	var out []grades.Evaluation
	for _, e := range s.Evaluations {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out
}

// ForGroup returns a snapshot restricted to the students of one practice
// group and their records. An empty group returns s unchanged.
func (s *Snapshot) ForGroup(group string) *Snapshot {
	if group == "" {
		return s
	}
	students := s.Students.ByGroup(group)
	if students == nil {
		students = roster.Roster{}
	}
	out := &Snapshot{
		Students:        students,
		AcademicGrades:  grades.AcademicGrades{},
		ServiceAverages: grades.ServiceAverages{},
		Evaluations:     []grades.Evaluation{},
	}
	members := make(map[string]bool, len(students))
	for _, st := range students {
		members[st.ID] = true
		if g, ok := s.AcademicGrades[st.ID]; ok {
			out.AcademicGrades[st.ID] = g
		}
		if sa, ok := s.ServiceAverages[st.ID]; ok {
			out.ServiceAverages[st.ID] = sa
		}
	}
	for _, e := range s.Evaluations {
		if members[e.StudentID] {
			out.Evaluations = append(out.Evaluations, e)
		}
	}
	return out
}

// Decode reads a snapshot file. The document is checked against the file
// schema, decoded, and validated; evaluations without an ID are assigned one.
func Decode(r io.Reader) (*Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	if err := schemacheck.Validate(FileSchema, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidSnapshot, err)
	}
	snap.normalize()

	if errs := snap.validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w:\n  %s", ErrInvalidSnapshot, strings.Join(errs, "\n  "))
	}
	return &snap, nil
}

// normalize replaces absent collections with empty ones and fills in
// missing evaluation IDs.
func (s *Snapshot) normalize() {
	if s.Students == nil {
		s.Students = roster.Roster{}
	}
	if s.AcademicGrades == nil {
		s.AcademicGrades = grades.AcademicGrades{}
	}
	if s.ServiceAverages == nil {
		s.ServiceAverages = grades.ServiceAverages{}
	}
	if s.Evaluations == nil {
		s.Evaluations = []grades.Evaluation{}
	}
	for i := range s.Evaluations {
		if s.Evaluations[i].ID == "" {
			s.Evaluations[i].ID = uuid.NewString()
		}
	}
}

// validate returns every problem found: struct rule violations, then
// duplicate student and evaluation IDs.
func (s *Snapshot) validate() []string {
	errs := fieldErrors(validate.Struct(s))

	seen := make(map[string]bool, len(s.Students))
	for _, st := range s.Students {
		if st.ID == "" {
			continue
		}
		if seen[st.ID] {
			errs = append(errs, fmt.Sprintf("duplicate student ID: %q", st.ID))
		}
		seen[st.ID] = true
	}

	evalSeen := make(map[string]bool, len(s.Evaluations))
	for _, e := range s.Evaluations {
		if evalSeen[e.ID] {
			errs = append(errs, fmt.Sprintf("duplicate evaluation ID: %q", e.ID))
		}
		evalSeen[e.ID] = true
	}
	return errs
}
