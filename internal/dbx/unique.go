package dbx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

// UniqueViolation reports whether err was raised by a unique constraint.
// The returned detail identifies the constraint: the constraint name for
// PostgreSQL (e.g. "users_email_key") or the "table.column" list for SQLite.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return pgErr.ConstraintName, true
		}
		return "", false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		msg := liteErr.Error()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "UNIQUE")) {
			if _, after, ok := strings.Cut(msg, "failed: "); ok {
				return after, true
			}
			return msg, true
		}
	}

	return "", false
}
