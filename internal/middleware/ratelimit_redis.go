package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter counts requests per IP in Redis so the limit holds across
// instances. Fails open: a Redis hiccup must not take the chat endpoint down.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (rl *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ratelimit:" + r.RemoteAddr

		count, err := rl.client.Incr(r.Context(), key).Result()
		if err != nil {
			log.Printf("Rate limiter Redis error, allowing request: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.client.Expire(r.Context(), key, rl.window)
		}

		if count > int64(rl.limit) {
			writeError(w, http.StatusTooManyRequests, "Too many requests", "Please wait a moment before sending another message", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
