package postgresql

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
)

var (
	errUniqueViolation     = errors.New("unique constraint violated")
	errForeignKeyViolation = errors.New("referenced row does not exist")
	errCheckViolation      = errors.New("check constraint violated")
)

// translatePgError maps conflict-class Postgres errors to database.ErrStoreConflict
// and constraint errors to package sentinels. Other errors pass through.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, database.ErrStoreConflict) {
		return err
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgQueryCanceled:
		return fmt.Errorf("%w: %s", database.ErrStoreConflict, pgErr.Message)
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", errUniqueViolation, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", errForeignKeyViolation, pgErr.ConstraintName)
	case pgCheckViolation:
		return fmt.Errorf("%w: %s", errCheckViolation, pgErr.ConstraintName)
	}
	return err
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
