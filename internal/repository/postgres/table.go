package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
)

// SQLSTATE codes mapped to apperror.ErrConflict.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// table is the generic repository.Gateway for one record type. Rows are
// decoded with pgx.RowToStructByName, which matches columns to `db` tags.
type table[T model.Entity] struct {
	pool     *pgxpool.Pool
	resource string
	name     string
	columns  string
	insert   string // INSERT ... RETURNING id
	args     func(T) []any
	assign   func(T, int64) T
}

func (t *table[T]) Create(ctx context.Context, rec T) (T, error) {
	var id int64
	if err := t.pool.QueryRow(ctx, t.insert, t.args(rec)...).Scan(&id); err != nil {
		return rec, t.translate(err)
	}
	return t.assign(rec, id), nil
}

func (t *table[T]) GetByID(ctx context.Context, id int64) (T, bool, error) {
	var zero T
	rows, err := t.pool.Query(ctx,
		`SELECT `+t.columns+` FROM `+t.name+` WHERE id = $1`, id)
	if err != nil {
		return zero, false, fmt.Errorf("postgres: getting %s %d: %w", t.resource, id, err)
	}

	rec, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("postgres: scanning %s %d: %w", t.resource, id, err)
	}
	return rec, true, nil
}

// GetAll orders by id; identity columns only grow, so this is insertion order.
func (t *table[T]) GetAll(ctx context.Context) ([]T, error) {
	rows, err := t.pool.Query(ctx,
		`SELECT `+t.columns+` FROM `+t.name+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing %s: %w", t.name, err)
	}

	recs, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("postgres: scanning %s: %w", t.name, err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

func (t *table[T]) Delete(ctx context.Context, id int64) error {
	if _, err := t.pool.Exec(ctx,
		`DELETE FROM `+t.name+` WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres: deleting %s %d: %w", t.resource, id, err)
	}
	return nil
}

func (t *table[T]) translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return apperror.Conflict(t.resource, t.uniqueColumn(pgErr.ConstraintName)+" already exists")
		case foreignKeyViolation:
			return apperror.Conflict(t.resource, "referenced record does not exist")
		}
	}
	return fmt.Errorf("postgres: creating %s: %w", t.resource, err)
}

// uniqueColumn turns "users_username_key" into "username".
func (t *table[T]) uniqueColumn(constraint string) string {
	col := strings.TrimSuffix(strings.TrimPrefix(constraint, t.name+"_"), "_key")
	if col == "" || col == constraint {
		return "record"
	}
	return col
}
