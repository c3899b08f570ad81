package event

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher is the slice of the redis client the broadcaster needs
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisHandler broadcasts events on a pub/sub channel for live dashboards
type RedisHandler struct {
	rdb     RedisPublisher
	channel string
}

func NewRedisHandler(rdb RedisPublisher, channel string) *RedisHandler {
	return &RedisHandler{rdb: rdb, channel: channel}
}

func (h *RedisHandler) Name() string { return "redis" }

func (h *RedisHandler) Handle(ctx context.Context, e Event) error {
	raw, err := json.Marshal(NewEnvelope(e))
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, h.channel, raw).Err()
}
