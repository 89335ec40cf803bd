package store

import (
	"context"
	"errors"
	"slices"

	log "github.com/sirupsen/logrus"
)

// WriteFunc performs a single write. withOptional tells whether optional
// columns may be included in the statement.
type WriteFunc[T any] func(ctx context.Context, withOptional bool) (T, error)

// WriteWithFallback runs write with the optional columns first when
// withOptional is set. If the store rejects one of optionalColumns with
// UnsupportedFieldError the write is repeated once without them; a rejected
// required column is returned as is.
// optionalStored reports whether the optional columns made it into the store.
func WriteWithFallback[T any](ctx context.Context, withOptional bool, write WriteFunc[T], optionalColumns ...string) (rec T, optionalStored bool, err error) {
	rec, err = write(ctx, withOptional)
	if err == nil {
		return rec, withOptional, nil
	}

	var unsupported *UnsupportedFieldError
	if !withOptional || !errors.As(err, &unsupported) || !slices.Contains(optionalColumns, unsupported.Column) {
		return rec, false, err
	}

	log.Warnf("store: table [%s] has no column [%s], retrying without optional fields", unsupported.Table, unsupported.Column)

	rec, err = write(ctx, false)
	if err != nil {
		return rec, false, err
	}
	return rec, false, nil
}
