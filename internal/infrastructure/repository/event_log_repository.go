package repository

import (
	"context"
	"time"

	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
	"gorm.io/gorm"
)

type eventLogRepository struct {
	db *gorm.DB
}

// NewEventLogRepository creates an audit sink backed by the event_logs table.
// It writes through its own connection, never through a sale transaction.
func NewEventLogRepository(db *gorm.DB) domainRepo.AuditSink {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) Log(ctx context.Context, eventName string, timestamp time.Time, payload []byte) error {
	return r.db.WithContext(ctx).Create(&entity.EventLog{
		EventName: eventName,
		Timestamp: timestamp.UTC(),
		Data:      string(payload),
	}).Error
}
