// Package sqlite implements repository.Store on top of an embedded SQLite database.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite: no C compiler or CGo, and it cross-compiles
// like any other Go package. The driver registers itself with database/sql as
// "sqlite" when table.go imports it for its error codes.
//
// sqlx sits on top of database/sql and scans rows straight into the model
// structs using their `db` tags, so each gateway is a handful of SQL strings
// plus one generic table type (see table.go).
//
// REFERENTIAL INTEGRITY:
// posts.author_id, comments.post_id and comments.author_id are foreign keys
// declared ON DELETE CASCADE. SQLite only enforces them when
// PRAGMA foreign_keys is on, and the pragma is per connection, so it is part
// of the DSN (see dsn) rather than a one-off statement.
package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.Store = (*DB)(nil)

// DB wraps a sqlx connection pool and hands out the three table gateways.
type DB struct {
	conn *sqlx.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/blog.db"  → file-based database (persistent)
//   - ":memory:"      → in-memory database (tests; lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection: for ":memory:" every statement sees the same database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// dsn turns a file path into a URI that carries the pragmas. The driver runs
// every _pragma on each connection it opens, so a connection that
// database/sql replaces still enforces foreign keys.
func dsn(dbPath string) string {
	const pragmas = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if dbPath == ":memory:" {
		return "file::memory:" + pragmas
	}
	return "file:" + dbPath + pragmas
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Users() repository.Gateway[model.User]       { return db.users() }
func (db *DB) Posts() repository.Gateway[model.Post]       { return db.posts() }
func (db *DB) Comments() repository.Gateway[model.Comment] { return db.comments() }

// migrate creates the schema. Every statement is idempotent, so it runs on
// every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email    TEXT NOT NULL UNIQUE
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			title     TEXT NOT NULL,
			content   TEXT NOT NULL,
			author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);
	`)
	if err != nil {
		return fmt.Errorf("creating posts table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			content   TEXT NOT NULL,
			post_id   INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
		CREATE INDEX IF NOT EXISTS idx_comments_author_id ON comments(author_id);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	return nil
}
