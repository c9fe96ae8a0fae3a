package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// WrapError converts a driver error into a *domain.ServerError whose message
// describes the attempted operation. Validation errors, domain.ErrNotFound
// and errors that are already ServerErrors pass through unchanged.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	var se *domain.ServerError
	if errors.As(err, &se) || errors.Is(err, domain.ErrNotFound) {
		return err
	}

	op := fmt.Sprintf(format, args...)
	if reason := classify(err); reason != "" {
		op += " (" + reason + ")"
	}
	return domain.NewServerError(err, op)
}

// classify names the failure for the error message.
func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "deadline exceeded"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return "no rows"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "unique violation"
		case "23503":
			return "foreign key violation"
		case "23514":
			return "check violation"
		case "57014":
			return "statement timeout"
		default:
			return "sqlstate " + pgErr.Code
		}
	}
	return ""
}
