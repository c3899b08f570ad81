package repository

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
	"gorm.io/gorm"
)

// mapError classifies driver errors that callers can act on. Anything it
// does not recognise is returned unchanged so the service layer can wrap it
// as a persistence failure.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict(op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505": // unique_violation
			return conflict(op, err)
		case "23503": // foreign_key_violation
			return &apperror.AppError{Code: http.StatusUnprocessableEntity, Message: op + ": referenced record does not exist", Err: err}
		}
		return err
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate key") {
		return conflict(op, err)
	}
	return err
}

func conflict(op string, err error) error {
	return &apperror.AppError{Code: http.StatusConflict, Message: op + ": record already exists", Err: err}
}
