package repository

import (
	"context"
	"time"
)

// AuditSink appends published sale events to the audit trail
type AuditSink interface {
	Log(ctx context.Context, eventName string, timestamp time.Time, payload []byte) error
}
