package service

import (
	"context"
	"sync"
	"time"

	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const throttleKeyPrefix = "login_throttle:"

// LoginThrottle caps login attempts per client. Redis keeps the window shared
// across replicas; without it each process keeps its own token buckets.
type LoginThrottle struct {
	redis  *shared.RedisClient
	logger zerolog.Logger
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	limiters  map[string]*localLimiter
	lastSweep time.Time
}

type localLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLoginThrottle(cfg *koanf.Koanf, redis *shared.RedisClient, logger zerolog.Logger) *LoginThrottle {
	return NewLoginThrottleWithLimit(cfg.Int("auth.login-rate-per-minute"), time.Minute, redis, logger)
}

func NewLoginThrottleWithLimit(limit int, window time.Duration, redis *shared.RedisClient, logger zerolog.Logger) *LoginThrottle {
	return &LoginThrottle{
		redis:    redis,
		logger:   logger,
		limit:    limit,
		window:   window,
		now:      time.Now,
		limiters: make(map[string]*localLimiter),
	}
}

// Allow reports whether key may attempt one more login; limit <= 0 disables throttling
func (t *LoginThrottle) Allow(ctx context.Context, key string) bool {
	if t.limit <= 0 {
		return true
	}

	if t.redis.Enabled() {
		allowed, err := t.redis.AllowWindow(ctx, throttleKeyPrefix+key, t.limit, t.window)
		if err == nil {
			return allowed
		}
		t.logger.Warn().Err(err).Msg("Login throttle falling back to local limiter")
	}

	return t.allowLocal(key)
}

// allowLocal keeps one token bucket per key. A bucket idle for a whole window is full
// again, so it is dropped instead of kept forever.
func (t *LoginThrottle) allowLocal(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if now.Sub(t.lastSweep) >= t.window {
		for k, l := range t.limiters {
			if now.Sub(l.lastSeen) >= t.window {
				delete(t.limiters, k)
			}
		}
		t.lastSweep = now
	}

	l, ok := t.limiters[key]
	if !ok {
		l = &localLimiter{limiter: rate.NewLimiter(rate.Every(t.window/time.Duration(t.limit)), t.limit)}
		t.limiters[key] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}
