package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
)

// DefaultAuditTimeout bounds a single audit write
const DefaultAuditTimeout = 5 * time.Second

// AuditHandler records every event in the audit trail
type AuditHandler struct {
	sink    domainRepo.AuditSink
	timeout time.Duration
}

func NewAuditHandler(sink domainRepo.AuditSink, timeout time.Duration) *AuditHandler {
	if timeout <= 0 {
		timeout = DefaultAuditTimeout
	}
	return &AuditHandler{sink: sink, timeout: timeout}
}

func (h *AuditHandler) Name() string { return "audit" }

// Handle writes under its own deadline. The caller's cancellation is not
// inherited so a finished request cannot abort its audit record.
func (h *AuditHandler) Handle(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", e.Name(), err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
	defer cancel()

	if err := h.sink.Log(ctx, e.Name(), e.OccurredAt(), payload); err != nil {
		return fmt.Errorf("audit %s: %w", e.Name(), err)
	}
	return nil
}
