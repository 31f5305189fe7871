package rivulet

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// PubSub is a Redis-backed message source. Observe turns one of its
// channels into an Observable of message payloads; Publish is the
// matching write side
type PubSub struct {
	client *redis.Client
}

// NewPubSub connects to Redis with the given configuration. The
// connection is verified with a bounded ping before use
func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, RedisConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return &PubSub{client: client}, nil
}

// Close releases the underlying Redis client
func (p *PubSub) Close() error {
	return p.client.Close()
}

// Publish sends payload to channel
func (p *PubSub) Publish(ctx context.Context, channel, payload string) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// Observe creates an Observable of the payloads published to channel.
// Each subscription opens its own Redis subscription and pumps messages
// on its own goroutine; it never completes on its own. Cancel closes the
// Redis subscription and stops the pump
func (p *PubSub) Observe(ctx context.Context, channel string) Observable[string] {
	return New(func(obs Observer[string]) Cancel {
		ps := p.client.Subscribe(ctx, channel)
		go func() {
			for msg := range ps.Channel() {
				obs.Next(msg.Payload)
			}
		}()
		var once sync.Once
		return func() {
			once.Do(func() { _ = ps.Close() })
		}
	})
}
