// Package postgres implements repository.Store on PostgreSQL.
//
// Connections come from a pgx pool; the schema is versioned SQL under
// migrations/, embedded into the binary and applied with golang-migrate.
// Foreign keys are ON DELETE CASCADE, so deleting a user or post removes its
// dependents inside the same statement.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DefaultMaxConns caps the pool when the URL does not set pool_max_conns.
const DefaultMaxConns = 10

var _ repository.Store = (*DB)(nil)

// DB owns a pgx connection pool and hands out the three table gateways.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and verifies the connection.
// It does not touch the schema; call Migrate first.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parsing database url: %w", err)
	}
	if !strings.Contains(databaseURL, "pool_max_conns") {
		cfg.MaxConns = DefaultMaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connecting: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close releases every pooled connection.
func (db *DB) Close() error {
	db.pool.Close()
	return nil
}

func (db *DB) Users() repository.Gateway[model.User]       { return db.users() }
func (db *DB) Posts() repository.Gateway[model.Post]       { return db.posts() }
func (db *DB) Comments() repository.Gateway[model.Comment] { return db.comments() }

// Migrate applies every pending migration. An up-to-date schema is not an error.
func Migrate(databaseURL string, logger *slog.Logger) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("postgres: loading migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(databaseURL))
	if err != nil {
		return fmt.Errorf("postgres: creating migration instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migration state is up to date")
	case err != nil:
		return fmt.Errorf("postgres: running migrations: %w", err)
	default:
		logVersion(logger, m)
	}

	return nil
}

// versioner is the part of *migrate.Migrate that logVersion reads.
type versioner interface {
	Version() (version uint, dirty bool, err error)
}

// logVersion reports the schema version after a successful Up.
func logVersion(logger *slog.Logger, m versioner) {
	version, dirty, err := m.Version()
	if err != nil {
		logger.Warn("ran migrations but could not read the schema version",
			slog.String("error", err.Error()))
		return
	}
	logger.Info("ran migrations successfully",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
}

// migrateURL points golang-migrate at its pgx v5 driver, which registers the
// "pgx5" scheme. The rest of the URL is passed through untouched.
func migrateURL(databaseURL string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(databaseURL, scheme) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, scheme)
		}
	}
	return databaseURL
}
