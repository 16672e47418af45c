package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// keepImports is how many import log entries survive a Replace.
const keepImports = 20

// Import records one snapshot import.
type Import struct {
	ID          int
	Source      string
	ImportedAt  time.Time
	Students    int
	Evaluations int
}

// ImportRepo manages the import log.
type ImportRepo interface {
	// Save appends an entry and sets its ID.
	Save(ctx context.Context, imp *Import) error

	// Latest returns the most recent entry, or nil if none exist.
	Latest(ctx context.Context) (*Import, error)

	// Prune deletes all but the N most recent entries.
	Prune(ctx context.Context, keep int) error
}

// conn is satisfied by both *sql.DB and *sql.Tx.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// importRepo implements ImportRepo with SQL built by ent's dialect builder.
type importRepo struct {
	db conn
}

func (r *importRepo) Save(ctx context.Context, imp *Import) error {
	query, args := builder().Insert(importsTable.Name).
		Columns(columnNames(importsColumns)...).
		Values(imp.Source, imp.ImportedAt.UnixMilli(), imp.Students, imp.Evaluations).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save import: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save import: %w", err)
	}
	imp.ID = int(id)
	return nil
}

func (r *importRepo) Latest(ctx context.Context) (*Import, error) {
	query, args := builder().Select("id", "source", "imported_at", "students", "evaluations").
		From(builder().Table(importsTable.Name)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		imp    Import
		millis int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&imp.ID, &imp.Source, &millis, &imp.Students, &imp.Evaluations)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest import: %w", err)
	}
	imp.ImportedAt = time.UnixMilli(millis).UTC()
	return &imp, nil
}

func (r *importRepo) Prune(ctx context.Context, keep int) error {
	// Find the ID threshold: the newest entry beyond the ones kept.
	query, args := builder().Select("id").
		From(builder().Table(importsTable.Name)).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // fewer than keep entries exist
		}
		return fmt.Errorf("query imports for prune: %w", err)
	}

	query, args = builder().Delete(importsTable.Name).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune imports: %w", err)
	}
	return nil
}
