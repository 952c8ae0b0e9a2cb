package client

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/skinrally/backend/internal/domain/notification/event"
	"github.com/skinrally/backend/pkg/xcontext"
)

// Notifier delivers user-facing notifications. Delivery is best-effort; the
// caller must not make correctness depend on it.
type Notifier interface {
	Emit(ctx context.Context, ev *event.EventRequest) error
}

type redisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *redisNotifier {
	return &redisNotifier{client: client}
}

func (n *redisNotifier) Emit(ctx context.Context, ev *event.EventRequest) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	channel := xcontext.Configs(ctx).Redis.NotificationChannel
	return n.client.Publish(ctx, channel, b).Err()
}
