package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/koustreak/bootprofile/internal/errs"
)

// PostgreSQL SQLSTATE classes and codes
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgClassConnection     = "08"
	pgClassAuthorization  = "28"
	pgClassSyntaxOrAccess = "42"
	pgErrQueryCanceled    = "57014"
	pgErrInsufficientPriv = "42501"
	pgErrInvalidCatalog   = "3D000"
)

// mapError converts a pgx error into *errs.Error
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errs.Wrap(
			classifySQLState(pgErr.Code),
			fmt.Sprintf("%s: %s", msg, pgErr.Message),
			err,
		)
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

func classifySQLState(code string) errs.ErrKind {
	switch {
	case code == pgErrQueryCanceled:
		return errs.ErrKindTimeout
	case code == pgErrInsufficientPriv:
		return errs.ErrKindPermissionDenied
	case code == pgErrInvalidCatalog:
		return errs.ErrKindConnectionFailed
	case len(code) < 2:
		return errs.ErrKindQueryFailed
	}

	switch code[:2] {
	case pgClassConnection:
		return errs.ErrKindConnectionFailed
	case pgClassAuthorization:
		return errs.ErrKindPermissionDenied
	case pgClassSyntaxOrAccess:
		return errs.ErrKindQueryFailed
	default:
		return errs.ErrKindQueryFailed
	}
}
