package event

import (
	"context"

	"github.com/sangkips/developerstore-sales/pkg/logger"
)

// Handler reacts to a published event
type Handler interface {
	Name() string
	Handle(ctx context.Context, e Event) error
}

// Publisher fans an event out to every registered handler
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type publisher struct {
	handlers []Handler
	log      *logger.Logger
}

// NewPublisher creates a publisher over a fixed handler list. Handlers run
// one after another in registration order.
func NewPublisher(log *logger.Logger, handlers ...Handler) Publisher {
	return &publisher{
		handlers: handlers,
		log:      log.With("component", "event_publisher"),
	}
}

// Publish never fails: a handler error or panic is logged and the
// remaining handlers still run.
func (p *publisher) Publish(ctx context.Context, e Event) {
	for _, h := range p.handlers {
		p.dispatch(ctx, h, e)
	}
}

func (p *publisher) dispatch(ctx context.Context, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("event handler panicked",
				"handler", h.Name(),
				"event", e.Name(),
				"sale_id", e.SaleKey(),
				"panic", r,
			)
		}
	}()

	if err := h.Handle(ctx, e); err != nil {
		p.log.Error("event handler failed",
			"handler", h.Name(),
			"event", e.Name(),
			"sale_id", e.SaleKey(),
			"error", err,
		)
	}
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
