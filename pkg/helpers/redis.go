package helpers

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the shared Redis client. Only the rate limiter
// talks to Redis; profile data is never cached here.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
