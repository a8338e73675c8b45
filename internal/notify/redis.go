package notify

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/drill/internal/logger"
)

// RedisChannel forwards notifications over a Redis pub/sub channel.
type RedisChannel struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

var _ Forwarder = (*RedisChannel)(nil)

func NewRedisChannel(rdb *goredis.Client, channel string, log *logger.Logger) (*RedisChannel, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if channel == "" {
		return nil, fmt.Errorf("missing notify channel")
	}
	return &RedisChannel{
		log:     logger.OrNop(log).With("service", "NotifyChannel", "channel", channel),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (c *RedisChannel) Publish(ctx context.Context, ev ItemRated) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("notify channel not initialized")
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.rdb.Publish(ctx, c.channel, raw).Err()
}

// Listen subscribes to the channel and calls onEvent for every decoded
// notification until ctx is cancelled. It returns once the subscription
// is confirmed.
func (c *RedisChannel) Listen(ctx context.Context, onEvent Handler) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("notify channel not initialized")
	}
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := c.rdb.Subscribe(ctx, c.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var ev ItemRated
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					c.log.Warn("bad notification payload", "error", err)
					continue
				}
				onEvent(ev)
			}
		}
	}()

	return nil
}
