package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
)

const pgUniqueViolation = "23505"

// HandleQueryError records query duration and maps "no rows" from either
// backend to notFoundErr. Other errors are counted and wrapped.
func HandleQueryError(err error, notFoundErr error, table, operation string, startTime time.Time) error {
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())

	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}
	metrics.DBQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func HandleExecError(err error, table, operation string, startTime time.Time) error {
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())

	if err == nil {
		return nil
	}
	metrics.DBQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// UniqueViolation reports whether err is a unique constraint failure and,
// when it can tell, which column caused it.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return columnFromConstraint(pgErr.ConstraintName), true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE && liteErr.Code() != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return "", false
		}
		return columnFromSQLiteMessage(liteErr.Error()), true
	}

	return "", false
}

// posters_email_key -> email
func columnFromConstraint(name string) string {
	name = strings.TrimSuffix(name, "_key")
	if idx := strings.LastIndex(name, "_"); idx != -1 {
		return name[idx+1:]
	}
	return name
}

// "... UNIQUE constraint failed: posters.email (2067)" -> email
func columnFromSQLiteMessage(msg string) string {
	const marker = "constraint failed: "
	idx := strings.LastIndex(msg, marker)
	if idx == -1 {
		return ""
	}
	rest := msg[idx+len(marker):]
	if end := strings.IndexAny(rest, " ,("); end != -1 {
		rest = rest[:end]
	}
	if dot := strings.LastIndex(rest, "."); dot != -1 {
		return rest[dot+1:]
	}
	return rest
}

func errorType(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return "pg_" + pgErr.Code
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return fmt.Sprintf("sqlite_%d", liteErr.Code())
	}
	return fmt.Sprintf("%T", err)
}

func MeasureQueryDuration(table, operation string, startTime time.Time) {
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())
}
