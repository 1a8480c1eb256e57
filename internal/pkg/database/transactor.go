package database

import (
	"context"
	"errors"
)

// Transactor runs fn inside one store transaction. The transaction travels in
// the context handed to fn; returning an error from fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrStoreConflict is returned when the store aborts a transaction because of
// a lock or serialization conflict. Callers may retry.
var ErrStoreConflict = errors.New("store conflict, please retry")
