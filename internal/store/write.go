package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"entgo.io/ent/dialect/sql/schema"

	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/roster"
	"github.com/abhisek/boletin/internal/snapshot"
)

// insertBatch caps the rows per INSERT statement, keeping the bound
// parameter count well under SQLite's limit.
const insertBatch = 200

// Replace swaps every stored record for the contents of snap in a single
// transaction and logs the import. On error nothing changes.
func (s *Store) Replace(ctx context.Context, source string, snap *snapshot.Snapshot) (*Import, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if err := deleteAll(ctx, tx, recordTables); err != nil {
		return nil, err
	}
	if err := insertStudents(ctx, tx, snap.Students); err != nil {
		return nil, err
	}
	if err := insertAcademicGrades(ctx, tx, snap.AcademicGrades); err != nil {
		return nil, err
	}
	if err := insertServiceAverages(ctx, tx, snap.ServiceAverages); err != nil {
		return nil, err
	}
	if err := insertEvaluations(ctx, tx, snap.Evaluations); err != nil {
		return nil, err
	}

	imp := &Import{
		Source:      source,
		ImportedAt:  time.Now().UTC(),
		Students:    len(snap.Students),
		Evaluations: len(snap.Evaluations),
	}
	imports := &importRepo{db: tx}
	if err := imports.Save(ctx, imp); err != nil {
		return nil, err
	}
	if err := imports.Prune(ctx, keepImports); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace: %w", err)
	}
	return imp, nil
}

// Reset deletes every stored record and the import log.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if err := deleteAll(ctx, tx, append(slices.Clone(recordTables), importsTable)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}

func deleteAll(ctx context.Context, db conn, tables []*schema.Table) error {
	for _, t := range tables {
		query, args := builder().Delete(t.Name).Query()
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", t.Name, err)
		}
	}
	return nil
}

func insertStudents(ctx context.Context, db conn, students roster.Roster) error {
	rows := make([][]any, 0, len(students))
	for i, st := range students {
		rows = append(rows, []any{
			st.ID, i, st.FirstName, st.LastName, st.SecondLastName,
			st.Group, st.Subgroup, st.Email, st.Phone,
		})
	}
	return insertRows(ctx, db, studentsTable, studentsColumns, rows)
}

func insertAcademicGrades(ctx context.Context, db conn, academic grades.AcademicGrades) error {
	var rows [][]any
	for _, studentID := range sortedKeys(academic) {
		periods := academic[studentID]
		for _, p := range sortedKeys(periods) {
			instruments := periods[p]
			for _, key := range sortedKeys(instruments) {
				rows = append(rows, []any{studentID, string(p), key, instruments[key]})
			}
		}
	}
	return insertRows(ctx, db, academicGradesTable, academicGradesColumns, rows)
}

func insertServiceAverages(ctx context.Context, db conn, service grades.ServiceAverages) error {
	var rows [][]any
	for _, studentID := range sortedKeys(service) {
		scores := service[studentID]
		for _, p := range grades.TrimesterPeriods() {
			rows = append(rows, []any{studentID, string(p), scores.Get(p)})
		}
	}
	return insertRows(ctx, db, serviceAveragesTable, serviceAveragesColumns, rows)
}

func insertEvaluations(ctx context.Context, db conn, evaluations []grades.Evaluation) error {
	evalRows := make([][]any, 0, len(evaluations))
	var scoreRows [][]any
	for i, e := range evaluations {
		evalRows = append(evalRows, []any{e.ID, i, e.StudentID, string(e.Period), e.FinalScore})
		for _, outcomeID := range sortedKeys(e.Scores) {
			criteria := e.Scores[outcomeID]
			for _, criterionID := range sortedKeys(criteria) {
				cs := criteria[criterionID]
				scoreRows = append(scoreRows, []any{outcomeID, criterionID, cs.Score, cs.Notes, e.ID})
			}
		}
	}
	if err := insertRows(ctx, db, examEvaluationsTable, examEvaluationsColumns, evalRows); err != nil {
		return err
	}
	return insertRows(ctx, db, criterionScoresTable, criterionScoresColumns, scoreRows)
}

// insertRows writes rows into t in batches. Row values follow the order of
// cols with auto-increment keys left out.
func insertRows(ctx context.Context, db conn, t *schema.Table, cols []*schema.Column, rows [][]any) error {
	names := columnNames(cols)
	for start := 0; start < len(rows); start += insertBatch {
		end := min(start+insertBatch, len(rows))
		insert := builder().Insert(t.Name).Columns(names...)
		for _, row := range rows[start:end] {
			insert.Values(row...)
		}
		query, args := insert.Query()
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", t.Name, err)
		}
	}
	return nil
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
