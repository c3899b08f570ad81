package service

import (
	"context"

	"github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
	"github.com/sangkips/developerstore-sales/pkg/logger"
)

// inTransaction runs fn between BeginTransaction and Commit. Any failure
// after begin rolls the unit of work back before it is returned.
func inTransaction(ctx context.Context, uow repository.UnitOfWork, log *logger.Logger, op string, fn func() error) error {
	if err := uow.BeginTransaction(ctx); err != nil {
		return persistenceError("begin transaction", err)
	}

	if err := fn(); err != nil {
		if rbErr := uow.Rollback(ctx); rbErr != nil {
			log.Error("rollback failed", "op", op, "error", rbErr)
		}
		return persistenceError(op, err)
	}

	// Commit rolls back on its own when it fails
	if err := uow.Commit(ctx); err != nil {
		return persistenceError("commit "+op, err)
	}
	return nil
}

func persistenceError(op string, err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewPersistenceError(op, err)
}
