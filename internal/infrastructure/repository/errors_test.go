package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("create sale", nil))

	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", Message: "duplicate key"})
	err := mapError("create sale", unique)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))

	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, 422, apperror.GetAppError(mapError("create sale", fk)).Code)

	other := &pgconn.PgError{Code: "53300"}
	assert.Same(t, other, mapError("create sale", other))

	assert.ErrorIs(t, mapError("create sale", context.DeadlineExceeded), context.DeadlineExceeded)
	assert.False(t, apperror.IsAppError(mapError("create sale", errors.New("connection reset"))))
}
