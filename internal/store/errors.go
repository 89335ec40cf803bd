package store

import (
	"errors"
	"fmt"

	"github.com/pachgroup/pachsite/pkg"
)

// ErrNotConfigured is returned by repositories running without a database.
var ErrNotConfigured = errors.New("database not configured")

// UnsupportedFieldError reports a write that names a column the table does not have.
// Callers may retry the write without that field.
type UnsupportedFieldError struct {
	Table  string
	Column string
	Err    error
}

func (e *UnsupportedFieldError) Error() string {
	msg := fmt.Sprintf("table %s does not support column %s", e.Table, e.Column)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnsupportedFieldError) Unwrap() error {
	return e.Err
}

func IsUnsupportedField(err error) bool {
	var ufe *UnsupportedFieldError
	return errors.As(err, &ufe)
}

// MapError turns driver errors into store errors where a typed form exists.
func MapError(table string, err error) error {
	if err == nil {
		return nil
	}
	if pkg.IsUndefinedColumnError(err) {
		return &UnsupportedFieldError{
			Table:  table,
			Column: pkg.UndefinedColumnName(err),
			Err:    err,
		}
	}
	return err
}
