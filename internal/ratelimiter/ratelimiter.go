package ratelimiter

import (
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewRateLimit wraps a limiter into a net/http middleware with the given key
// extraction strategy.
func NewRateLimit(store limiter.Store, rate limiter.Rate, keyGetter stdlib.KeyGetter) *stdlib.Middleware {
	l := limiter.New(store, rate)

	return stdlib.NewMiddleware(l, stdlib.WithKeyGetter(keyGetter))
}

// NewRedisStore builds a redis-backed limiter store shared across instances.
func NewRedisStore(client *redis.Client, prefix string) (limiter.Store, error) {
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: prefix,
	})
}

// NewMemoryStore builds a process-local limiter store, used when redis is
// not configured and in tests.
func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}
