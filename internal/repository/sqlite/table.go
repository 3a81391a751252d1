package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
)

// table is the generic repository.Gateway implementation. Each record type
// describes its own table (user.go, post.go, comment.go); the queries below
// are shared.
type table[T model.Entity] struct {
	conn     *sqlx.DB
	resource string // singular name used in errors, e.g. "user"
	name     string // SQL table name, e.g. "users"
	columns  string // SELECT list in struct order
	insert   string // INSERT statement with ? placeholders
	args     func(T) []any
	assign   func(T, int64) T
}

// Create inserts rec and returns it with the id SQLite assigned.
// Parameterised queries only: values never get spliced into SQL text.
func (t *table[T]) Create(ctx context.Context, rec T) (T, error) {
	res, err := t.conn.ExecContext(ctx, t.insert, t.args(rec)...)
	if err != nil {
		return rec, t.translate(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("sqlite: reading %s id: %w", t.resource, err)
	}

	return t.assign(rec, id), nil
}

// GetByID maps sql.ErrNoRows to the absent result rather than an error.
func (t *table[T]) GetByID(ctx context.Context, id int64) (T, bool, error) {
	var rec T
	err := t.conn.GetContext(ctx, &rec,
		`SELECT `+t.columns+` FROM `+t.name+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, false, nil
	}
	if err != nil {
		return rec, false, fmt.Errorf("sqlite: getting %s %d: %w", t.resource, id, err)
	}
	return rec, true, nil
}

// GetAll returns rows ordered by id. AUTOINCREMENT ids only grow, so id order
// is insertion order.
func (t *table[T]) GetAll(ctx context.Context) ([]T, error) {
	recs := []T{}
	if err := t.conn.SelectContext(ctx, &recs,
		`SELECT `+t.columns+` FROM `+t.name+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("sqlite: listing %s: %w", t.name, err)
	}
	return recs, nil
}

// Delete removes the row; ON DELETE CASCADE removes dependents in the same
// statement. Zero rows affected is not an error.
func (t *table[T]) Delete(ctx context.Context, id int64) error {
	if _, err := t.conn.ExecContext(ctx,
		`DELETE FROM `+t.name+` WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting %s %d: %w", t.resource, id, err)
	}
	return nil
}

// translate turns constraint violations into apperror.ErrConflict. Anything
// else is wrapped and passed through as an opaque failure.
func (t *table[T]) translate(err error) error {
	var se *moderncsqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return apperror.Conflict(t.resource, uniqueViolation(se.Error()))
		case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return apperror.Conflict(t.resource, "referenced record does not exist")
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			// Primary code only (extended codes disabled): go by the message.
			if strings.Contains(se.Error(), "FOREIGN KEY") {
				return apperror.Conflict(t.resource, "referenced record does not exist")
			}
			return apperror.Conflict(t.resource, uniqueViolation(se.Error()))
		}
	}
	return fmt.Errorf("sqlite: creating %s: %w", t.resource, err)
}

// uniqueViolation extracts the column from SQLite's
// "UNIQUE constraint failed: users.username" message.
func uniqueViolation(msg string) string {
	const marker = "constraint failed: "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return "record already exists"
	}
	col := msg[i+len(marker):]
	if j := strings.IndexAny(col, " ,("); j >= 0 {
		col = col[:j]
	}
	if j := strings.IndexByte(col, '.'); j >= 0 {
		col = col[j+1:]
	}
	if col == "" {
		return "record already exists"
	}
	return col + " already exists"
}
