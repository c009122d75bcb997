// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-fullstack-auth/internal/config"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/migrations"
)

// Dialect names the SQL flavour of the connected database.
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps the connection pool together with the dialect-specific query
// builder and error classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect Dialect, classificator ErrorClassificator, log *logger.Logger) *DB {
	placeholder := sq.PlaceholderFormat(sq.Question)
	if dialect == DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classificator,
		logger:             log,
	}
}

// NewConnect opens the database named by cfg.DSN. A "sqlite://" or "file:"
// prefix selects SQLite, anything else is opened as PostgreSQL.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if isSQLiteDSN(cfg.DSN) {
		return NewConnectSQLite(ctx, cfg, log)
	}
	return NewConnectPostgres(ctx, cfg, log)
}

func isSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, sqliteScheme) || strings.HasPrefix(dsn, "file:")
}

// Dialect returns the SQL flavour of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations of the connection's dialect.
// goose output goes through the connection's logger.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect), db.logger.StdLogger())
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return db.wrapError(fmt.Errorf("%w: %w", ErrBeginningTransaction, err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = db.wrapError(fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr))
		}
	}()

	return fn(ctx, tx)
}

// wrapError attaches ErrStoreUnavailable to connection-level and retryable
// failures, so that services can report them as a distinct category.
// Other errors are wrapped as unexpected.
func (db *DB) wrapError(err error) error {
	if err == nil {
		return nil
	}

	if db.isUnavailable(err) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}

func (db *DB) isUnavailable(err error) bool {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return true
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error

	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &connectErr),
		errors.As(err, &netErr),
		pgconn.SafeToRetry(err):
		return true
	}

	return false
}

// isUniqueViolation reports whether err is a unique constraint violation.
func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.IsUniqueViolation(err)
}
