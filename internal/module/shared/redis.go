package shared

import (
	"context"
	"errors"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrCacheMiss is returned by GetBytes when the key does not exist
var ErrCacheMiss = errors.New("cache miss")

type RedisClient struct {
	Client           *redis.Client
	enabled          bool
	url              string
	options          *redis.Options
	retryCount       int
	keepliveInterval time.Duration
	logger           zerolog.Logger
	quit             chan struct{}
}

// fixed-window counter, same shape as the app token limiter script
const windowCounterScript = `
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local interval = tonumber(ARGV[2])
	local current = redis.call("GET", key)
	if current and tonumber(current) >= limit then
		return 0
	else
		local n = redis.call("INCR", key)
		if n == 1 then
			redis.call("EXPIRE", key, interval)
		end
		return 1
	end
`

func NewRedisClient(cfg *koanf.Koanf, logger zerolog.Logger) *RedisClient {
	r := &RedisClient{
		enabled:          cfg.Bool("redis.enable"),
		logger:           logger,
		url:              cfg.String("redis.url"),
		retryCount:       cfg.Int("redis.retry-count"),
		keepliveInterval: cfg.Duration("redis.keeplive-interval"),
		quit:             make(chan struct{}),
	}
	if !r.enabled {
		return r
	}

	opts, err := redis.ParseURL(r.url)
	if err != nil {
		logger.Panic().Err(err).Msg("Invalid redis.url")
	}
	r.options = opts

	return r
}

func (r *RedisClient) Enabled() bool {
	return r != nil && r.enabled
}

func (r *RedisClient) keeplive() {
	if r.keepliveInterval <= 0 {
		return
	}
	ticker := time.NewTicker(r.keepliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case <-ticker.C:
		}

		// go-redis redials on its own; this only reports a dead server
		for i := 1; i <= r.retryCount; i++ {
			err := r.Client.Ping(context.Background()).Err()
			if err == nil {
				break
			}
			if i == r.retryCount {
				r.logger.Error().Err(err).Msgf("Redis still unreachable after %d attempts", i)
				break
			}

			r.logger.Warn().Err(err).Msgf("Failed to ping Redis (%d/%d)", i, r.retryCount)
			time.Sleep(time.Second)
		}
	}
}

func (r *RedisClient) Connect(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	r.Client = redis.NewClient(r.options)
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return err
	}
	go r.keeplive()
	return nil
}

func (r *RedisClient) Close() error {
	if !r.Enabled() || r.Client == nil {
		return nil
	}
	close(r.quit)
	return r.Client.Close()
}

func (r *RedisClient) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisClient) GetBytes(ctx context.Context, key string) ([]byte, error) {
	val, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return val, err
}

func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	return r.Client.Del(ctx, keys...).Err()
}

// AllowWindow reports whether key may take one more hit within the window
func (r *RedisClient) AllowWindow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	allowed, err := r.Client.Eval(ctx, windowCounterScript, []string{key}, limit, int64(window.Seconds())).Int()
	if err != nil {
		return false, err
	}
	return allowed == 1, nil
}
