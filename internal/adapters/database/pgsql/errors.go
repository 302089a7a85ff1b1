package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
)

// isUniqueViolation reports whether the error is a postgres unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether the error is a postgres foreign key
// constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isTransient reports whether the error is a connection-class failure: the
// statement never ran to completion and the caller may retry. Covers the
// postgres connection exception (08), insufficient resources (53) and
// operator intervention (57) classes plus network and deadline errors.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "08", "53", "57":
			return true
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// storeErr tags transient failures as apperrors.ErrStoreUnavailable so
// callers can tell a retryable outage from a data error. Everything else
// passes through unchanged.
func storeErr(err error) error {
	if isTransient(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return err
}
