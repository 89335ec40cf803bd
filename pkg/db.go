package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html

const pgCodeUndefinedColumn = "42703"

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUndefinedColumnError reports a statement referencing a column the table does not have.
func IsUndefinedColumnError(err error) bool {
	return pgErrorCode(err) == pgCodeUndefinedColumn
}

// UndefinedColumnName returns the column named by an undefined_column error, if known.
func UndefinedColumnName(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgCodeUndefinedColumn {
		return ""
	}
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return extractQuoted(pgErr.Message)
}

// extractQuoted returns the first double quoted token of a postgres message,
// e.g. `column "image_urls" of relation "deals" does not exist`.
func extractQuoted(msg string) string {
	start := -1
	for i, c := range msg {
		if c != '"' {
			continue
		}
		if start < 0 {
			start = i + 1
			continue
		}
		return msg[start:i]
	}
	return ""
}
