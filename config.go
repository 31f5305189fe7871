package rivulet

import "time"

type (
	// PubSubConfig configures the Redis connection behind a PubSub
	PubSubConfig struct {
		Addr     string
		Password string
		DB       int
	}
)

const (
	DefaultRedisEndpoint = "localhost:6379"
	DefaultRedisDB       = 0

	RedisConnectTimeout = 5 * time.Second
)

func DefaultPubSubConfig() PubSubConfig {
	return PubSubConfig{
		Addr:     DefaultRedisEndpoint,
		Password: "",
		DB:       DefaultRedisDB,
	}
}
