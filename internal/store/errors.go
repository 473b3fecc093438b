package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

// DuplicateKeyError is returned when a write violates a unique constraint.
// Field names the offending column.
type DuplicateKeyError struct {
	Table string
	Field string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %s.%s: %v", e.Table, e.Field, e.Err)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

func IsUniqueConstraintError(err error) bool {
	_, _, ok := uniqueViolation(err)
	return ok
}

// wrapUniqueViolation turns a driver unique-constraint error into a
// *DuplicateKeyError and returns any other error unchanged.
func wrapUniqueViolation(err error) error {
	if table, field, ok := uniqueViolation(err); ok {
		return &DuplicateKeyError{Table: table, Field: field, Err: err}
	}
	return err
}

func uniqueViolation(err error) (table, field string, ok bool) {
	if err == nil {
		return "", "", false
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		if sqErr.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE &&
			sqErr.Code() != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return "", "", false
		}
		// UNIQUE constraint failed: users.username
		msg := sqErr.Error()
		const marker = "constraint failed: "
		idx := strings.LastIndex(msg, marker)
		if idx < 0 {
			return "", "", true
		}
		columns := msg[idx+len(marker):]
		if end := strings.IndexAny(columns, ", ("); end >= 0 {
			columns = columns[:end]
		}
		table, field, _ = strings.Cut(columns, ".")
		return table, field, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		field = strings.TrimPrefix(pgErr.ConstraintName, pgErr.TableName+"_")
		field = strings.TrimSuffix(field, "_key")
		return pgErr.TableName, field, true
	}

	return "", "", false
}
