package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pageza/pantrymatch/backend/internal/metrics"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// WindowCounter counts hits on key within a fixed window
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
}

// NewRedisCounter counts windows in redis
func NewRedisCounter(client *redis.Client) WindowCounter {
	return redisCounter{client: client}
}

func (r redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimiter limits requests per user with a shared fixed window. While the
// shared counter is unreachable it falls back to a per-process token bucket.
type RateLimiter struct {
	counter WindowCounter
	config  RateLimitConfig
	log     *zap.Logger

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

// NewRateLimiter creates a new rate limiter instance. counter may be nil, in
// which case only the local fallback is used.
func NewRateLimiter(counter WindowCounter, config RateLimitConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		config:  config,
		log:     log,
		local:   make(map[string]*rate.Limiter),
	}
}

// NewGenerationRateLimiter limits LLM calls to 10 per user per hour
func NewGenerationRateLimiter(counter WindowCounter, log *zap.Logger) *RateLimiter {
	return NewRateLimiter(counter, RateLimitConfig{
		Window:    time.Hour,
		Limit:     10,
		KeyPrefix: "rate_limit:generation",
	}, log)
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if id := UserID(c); id != nil {
			key = id.String()
		}

		allowed, remaining, resetTime := rl.IsAllowed(c.Request.Context(), key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			metrics.RateLimited.WithLabelValues(rl.config.KeyPrefix).Inc()
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
				Error: fmt.Sprintf("rate limit of %d requests per %v exceeded", rl.config.Limit, rl.config.Window),
				Code:  types.CodeTooManyRequests,
			})
			return
		}

		c.Next()
	}
}

// IsAllowed checks if a request from the given key is allowed.
// Returns: allowed, remaining requests, reset time
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time) {
	now := time.Now()
	windowStart := now.Truncate(rl.config.Window)
	resetTime := windowStart.Add(rl.config.Window)

	if rl.counter != nil {
		redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())
		count, err := rl.counter.Incr(ctx, redisKey, rl.config.Window)
		if err == nil {
			remaining := rl.config.Limit - int(count)
			if remaining < 0 {
				remaining = 0
			}
			return int(count) <= rl.config.Limit, remaining, resetTime
		}
		rl.log.Warn("rate limit counter unavailable, using local limiter", zap.Error(err))
	}

	lim := rl.localLimiter(key)
	allowed := lim.AllowN(now, 1)
	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, resetTime
}

func (rl *RateLimiter) localLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lim, ok := rl.local[key]
	if !ok {
		every := rl.config.Window / time.Duration(rl.config.Limit)
		lim = rate.NewLimiter(rate.Every(every), rl.config.Limit)
		rl.local[key] = lim
	}
	return lim
}
