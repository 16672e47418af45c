package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/volatiletech/null/v8"

	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/roster"
	"github.com/abhisek/boletin/internal/snapshot"
)

// Counts is the number of stored rows per record kind.
type Counts struct {
	Students        int
	AcademicGrades  int
	ServiceAverages int
	Evaluations     int
	CriterionScores int
}

// Snapshot loads every stored record. Roster and evaluation order are the
// order of the last Replace.
func (s *Store) Snapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	students, err := s.students(ctx)
	if err != nil {
		return nil, err
	}
	academic, err := s.academicGrades(ctx)
	if err != nil {
		return nil, err
	}
	service, err := s.serviceAverages(ctx)
	if err != nil {
		return nil, err
	}
	evaluations, err := s.evaluations(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot.Snapshot{
		Students:        students,
		AcademicGrades:  academic,
		ServiceAverages: service,
		Evaluations:     evaluations,
	}, nil
}

// Student returns one roster record.
func (s *Store) Student(ctx context.Context, id string) (roster.Student, error) {
	query, args := studentSelector().Where(entsql.EQ("id", id)).Query()
	st, err := scanStudent(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return roster.Student{}, fmt.Errorf("student %q: %w", id, ErrNotFound)
		}
		return roster.Student{}, fmt.Errorf("query student: %w", err)
	}
	return st, nil
}

// Counts returns the number of stored rows per record kind.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	targets := []struct {
		table string
		n     *int
	}{
		{studentsTable.Name, &c.Students},
		{academicGradesTable.Name, &c.AcademicGrades},
		{serviceAveragesTable.Name, &c.ServiceAverages},
		{examEvaluationsTable.Name, &c.Evaluations},
		{criterionScoresTable.Name, &c.CriterionScores},
	}
	for _, t := range targets {
		query, args := builder().Select(entsql.Count("*")).From(builder().Table(t.table)).Query()
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(t.n); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", t.table, err)
		}
	}
	return c, nil
}

func studentSelector() *entsql.Selector {
	return builder().Select(
		"id", "first_name", "last_name", "second_last_name",
		"practice_group", "subgroup", "email", "phone",
	).From(builder().Table(studentsTable.Name))
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (roster.Student, error) {
	var st roster.Student
	err := row.Scan(&st.ID, &st.FirstName, &st.LastName, &st.SecondLastName,
		&st.Group, &st.Subgroup, &st.Email, &st.Phone)
	return st, err
}

func (s *Store) query(ctx context.Context, sel *entsql.Selector) (*sql.Rows, error) {
	query, args := sel.Query()
	return s.db.QueryContext(ctx, query, args...)
}

func (s *Store) students(ctx context.Context) (roster.Roster, error) {
	rows, err := s.query(ctx, studentSelector().OrderBy("position"))
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	out := roster.Roster{}
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) academicGrades(ctx context.Context) (grades.AcademicGrades, error) {
	sel := builder().Select("student_id", "period", "instrument", "score").
		From(builder().Table(academicGradesTable.Name))
	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query academic grades: %w", err)
	}
	defer rows.Close()

	out := grades.AcademicGrades{}
	for rows.Next() {
		var (
			studentID, period, instrument string
			score                         null.Float64
		)
		if err := rows.Scan(&studentID, &period, &instrument, &score); err != nil {
			return nil, fmt.Errorf("scan academic grade: %w", err)
		}
		periods, ok := out[studentID]
		if !ok {
			periods = make(map[grades.Period]map[string]null.Float64)
			out[studentID] = periods
		}
		p := grades.Period(period)
		if periods[p] == nil {
			periods[p] = make(map[string]null.Float64)
		}
		periods[p][instrument] = score
	}
	return out, rows.Err()
}

func (s *Store) serviceAverages(ctx context.Context) (grades.ServiceAverages, error) {
	sel := builder().Select("student_id", "period", "average").
		From(builder().Table(serviceAveragesTable.Name))
	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query service averages: %w", err)
	}
	defer rows.Close()

	out := grades.ServiceAverages{}
	for rows.Next() {
		var (
			studentID, period string
			average           null.Float64
		)
		if err := rows.Scan(&studentID, &period, &average); err != nil {
			return nil, fmt.Errorf("scan service average: %w", err)
		}
		scores := out[studentID]
		scores.Set(grades.Period(period), average)
		out[studentID] = scores
	}
	return out, rows.Err()
}

func (s *Store) evaluations(ctx context.Context) ([]grades.Evaluation, error) {
	sel := builder().Select("id", "student_id", "period", "final_score").
		From(builder().Table(examEvaluationsTable.Name)).
		OrderBy("position")
	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	out := []grades.Evaluation{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			e      grades.Evaluation
			period string
		)
		if err := rows.Scan(&e.ID, &e.StudentID, &period, &e.FinalScore); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		e.Period = grades.Period(period)
		e.Scores = make(map[string]map[string]grades.CriterionScore)
		index[e.ID] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachCriterionScores(ctx, out, index); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) attachCriterionScores(ctx context.Context, evals []grades.Evaluation, index map[string]int) error {
	sel := builder().Select("evaluation_id", "outcome_id", "criterion_id", "score", "notes").
		From(builder().Table(criterionScoresTable.Name))
	rows, err := s.query(ctx, sel)
	if err != nil {
		return fmt.Errorf("query criterion scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			evalID, outcomeID, criterionID string
			cs                             grades.CriterionScore
		)
		if err := rows.Scan(&evalID, &outcomeID, &criterionID, &cs.Score, &cs.Notes); err != nil {
			return fmt.Errorf("scan criterion score: %w", err)
		}
		i, ok := index[evalID]
		if !ok {
			continue
		}
		scores := evals[i].Scores
		if scores[outcomeID] == nil {
			scores[outcomeID] = make(map[string]grades.CriterionScore)
		}
		scores[outcomeID][criterionID] = cs
	}
	return rows.Err()
}
