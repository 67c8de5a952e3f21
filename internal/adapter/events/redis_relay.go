package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

const DefaultChannel = "seats:changes"

// RedisRelay carries seat events between service instances. Publish sends to
// a Redis channel; Run forwards everything received on it into the local Hub,
// including this instance's own events.
type RedisRelay struct {
	client  redis.UniversalClient
	channel string
	hub     *Hub
	logger  *slog.Logger
}

func NewRedisRelay(client redis.UniversalClient, channel string, hub *Hub, logger *slog.Logger) *RedisRelay {
	if channel == "" {
		channel = DefaultChannel
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &RedisRelay{client: client, channel: channel, hub: hub, logger: logger}
}

// Publish falls back to local delivery when Redis is unreachable, so
// observers connected to this instance still see the change.
func (r *RedisRelay) Publish(ctx context.Context, event domain.SeatEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal seat event: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		_ = r.hub.Publish(ctx, event)
		return fmt.Errorf("redis publish %s: %w", r.channel, err)
	}

	return nil
}

// Run forwards relayed events into the hub until ctx is done, which is a
// clean stop and returns nil.
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	r.logger.Info("relaying seat events", slog.String("channel", r.channel))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			r.deliver(ctx, msg.Payload)
		}
	}
}

func (r *RedisRelay) deliver(ctx context.Context, payload string) {
	var event domain.SeatEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		r.logger.Warn("discarding malformed seat event", slog.Any("error", err))
		return
	}

	_ = r.hub.Publish(ctx, event)
}
