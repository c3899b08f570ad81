package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func testSale() *entity.Sale {
	return &entity.Sale{
		ID:          uuid.New(),
		SaleNumber:  "SALE-0001",
		SaleDate:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		CustomerID:  uuid.New(),
		Branch:      "Downtown",
		TotalAmount: decimal.RequireFromString("210.00"),
		Items:       []entity.SaleItem{{ID: uuid.New()}},
	}
}

type recordingHandler struct {
	name  string
	err   error
	calls *[]string
}

func (h recordingHandler) Name() string { return h.name }

func (h recordingHandler) Handle(_ context.Context, _ Event) error {
	*h.calls = append(*h.calls, h.name)
	return h.err
}

func TestPublisher_RunsAllHandlersInOrder(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	var calls []string

	p := NewPublisher(logger.FromZap(zap.New(core)),
		recordingHandler{name: "first", calls: &calls},
		recordingHandler{name: "broken", err: errors.New("sink down"), calls: &calls},
		recordingHandler{name: "last", calls: &calls},
	)

	p.Publish(context.Background(), NewSaleCreated(testSale(), time.Now()))

	assert.Equal(t, []string{"first", "broken", "last"}, calls)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "event handler failed", entry.Message)
	assert.Equal(t, "broken", entry.ContextMap()["handler"])
	assert.Equal(t, SaleCreatedName, entry.ContextMap()["event"])
}

type panickingHandler struct{}

func (panickingHandler) Name() string { return "panicky" }

func (panickingHandler) Handle(context.Context, Event) error {
	panic("nil client")
}

func TestPublisher_RecoversHandlerPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	var calls []string

	p := NewPublisher(logger.FromZap(zap.New(core)),
		panickingHandler{},
		recordingHandler{name: "after", calls: &calls},
	)

	require.NotPanics(t, func() {
		p.Publish(context.Background(), NewSaleCancelled(testSale(), time.Now()))
	})

	assert.Equal(t, []string{"after"}, calls)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "event handler panicked", entry.Message)
	assert.Equal(t, "panicky", entry.ContextMap()["handler"])
	assert.Equal(t, "nil client", entry.ContextMap()["panic"])
}

type fakeSink struct {
	err       error
	name      string
	timestamp time.Time
	payload   []byte
	ctxErr    error
	deadline  bool
}

func (s *fakeSink) Log(ctx context.Context, name string, ts time.Time, payload []byte) error {
	s.name, s.timestamp, s.payload = name, ts, payload
	s.ctxErr = ctx.Err()
	_, s.deadline = ctx.Deadline()
	return s.err
}

func TestAuditHandler_WritesJSONPayload(t *testing.T) {
	sink := &fakeSink{}
	h := NewAuditHandler(sink, time.Second)

	sale := testSale()
	now := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	require.NoError(t, h.Handle(context.Background(), NewSaleCancelled(sale, now)))

	assert.Equal(t, SaleCancelledName, sink.name)
	assert.True(t, sink.timestamp.Equal(now))
	assert.True(t, sink.deadline)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(sink.payload, &payload))
	assert.Equal(t, sale.ID.String(), payload["sale_id"])
	assert.Equal(t, "SALE-0001", payload["sale_number"])
	assert.Equal(t, "210", payload["total_amount"])
	assert.Contains(t, payload, "cancelled_at")
	assert.Contains(t, payload, "sale_date")
}

func TestAuditHandler_DetachedFromCallerCancellation(t *testing.T) {
	sink := &fakeSink{}
	h := NewAuditHandler(sink, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.Handle(ctx, NewSaleModified(testSale(), time.Now())))
	assert.NoError(t, sink.ctxErr)
}

func TestAuditHandler_SinkError(t *testing.T) {
	h := NewAuditHandler(&fakeSink{err: errors.New("mongo unavailable")}, 0)

	err := h.Handle(context.Background(), NewSaleCreated(testSale(), time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo unavailable")
	assert.Equal(t, DefaultAuditTimeout, h.timeout)
}

func TestItemCancelled_Payload(t *testing.T) {
	sale := testSale()
	item := entity.SaleItem{
		ID:          uuid.New(),
		ProductID:   uuid.New(),
		Quantity:    5,
		UnitPrice:   decimal.NewFromInt(10),
		TotalAmount: decimal.NewFromInt(45),
	}

	e := NewItemCancelled(sale, item, time.Now())
	assert.Equal(t, ItemCancelledName, e.Name())
	assert.Equal(t, sale.ID, e.SaleKey())
	assert.Equal(t, 5, e.Quantity)
	assert.True(t, e.TotalAmount.Equal(decimal.NewFromInt(45)))
	assert.True(t, e.SaleTotal.Equal(sale.TotalAmount))
}

func TestMetricsHandler_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewMetricsHandler(reg)
	ctx := context.Background()

	sale := testSale()
	require.NoError(t, h.Handle(ctx, NewSaleCreated(sale, time.Now())))
	require.NoError(t, h.Handle(ctx, NewSaleCreated(sale, time.Now())))
	require.NoError(t, h.Handle(ctx, NewSaleCancelled(sale, time.Now())))

	assert.Equal(t, float64(2), testutil.ToFloat64(h.events.WithLabelValues(SaleCreatedName)))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.events.WithLabelValues(SaleCancelledName)))
	assert.Equal(t, float64(0), testutil.ToFloat64(h.events.WithLabelValues(ItemCancelledName)))
}

type fakeRedis struct {
	channel string
	message interface{}
	err     error
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel, f.message = channel, message
	return redis.NewIntResult(1, f.err)
}

func TestRedisHandler_PublishesEnvelope(t *testing.T) {
	rdb := &fakeRedis{}
	h := NewRedisHandler(rdb, "sales.events")

	sale := testSale()
	require.NoError(t, h.Handle(context.Background(), NewSaleCreated(sale, time.Now())))
	assert.Equal(t, "sales.events", rdb.channel)

	raw, ok := rdb.message.([]byte)
	require.True(t, ok)
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, SaleCreatedName, env["event"])
	assert.Equal(t, sale.ID.String(), env["sale_id"])

	rdb.err = errors.New("connection refused")
	assert.Error(t, h.Handle(context.Background(), NewSaleCreated(sale, time.Now())))
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaHandler_KeysBySale(t *testing.T) {
	w := &fakeWriter{}
	h := NewKafkaHandler(w)
	sale := testSale()

	require.NoError(t, h.Handle(context.Background(), NewSaleModified(sale, time.Now())))
	require.NoError(t, h.Handle(context.Background(), NewSaleCancelled(sale, time.Now())))

	require.Len(t, w.msgs, 2)
	for _, m := range w.msgs {
		assert.Equal(t, sale.ID.String(), string(m.Key))
	}
	assert.Equal(t, SaleCancelledName, string(w.msgs[1].Headers[0].Value))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	p.Publish(context.Background(), NewSaleCreated(testSale(), time.Now()))
}

func TestPublisher_WithTestLogger(t *testing.T) {
	var calls []string
	p := NewPublisher(logger.FromZap(zaptest.NewLogger(t)), recordingHandler{name: "only", calls: &calls})
	p.Publish(context.Background(), NewItemCancelled(testSale(), entity.SaleItem{}, time.Now()))
	assert.Equal(t, []string{"only"}, calls)
}
