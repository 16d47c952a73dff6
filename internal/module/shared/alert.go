package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fasthttp/router"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	alertCountPrefix  = "error_count:"
	alertTimeout      = 10 * time.Second
	alertMessageLimit = 300
)

// Alerter counts server errors per key and notifies once a threshold is reached
type Alerter interface {
	Report(ctx context.Context, key, message string)
}

type SlackPayload struct {
	Channel   string `json:"channel,omitempty"`
	Username  string `json:"username,omitempty"`
	Text      string `json:"text"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

type nopAlerter struct{}

func (nopAlerter) Report(context.Context, string, string) {}

type alertCounter struct {
	count      int
	started    time.Time
	mutedUntil time.Time
}

type slackAlerter struct {
	webhookURL string
	channel    string
	username   string
	threshold  int
	window     time.Duration
	cooldown   time.Duration

	client HTTPClient
	redis  *RedisClient
	logger zerolog.Logger
	now    func() time.Time

	mu     sync.Mutex
	counts map[string]*alertCounter
}

// NewAlerter posts to alert.slack.webhook-url. It does nothing when alerting is off.
func NewAlerter(cfg *koanf.Koanf, redis *RedisClient, logger zerolog.Logger) Alerter {
	url := cfg.String("alert.slack.webhook-url")
	if !cfg.Bool("alert.enable") || url == "" {
		return nopAlerter{}
	}
	return NewSlackAlerter(cfg, url, &http.Client{Timeout: alertTimeout}, redis, logger, time.Now)
}

func NewSlackAlerter(cfg *koanf.Koanf, url string, client HTTPClient, redis *RedisClient, logger zerolog.Logger, now func() time.Time) Alerter {
	threshold := cfg.Int("alert.threshold")
	if threshold < 1 {
		threshold = 1
	}
	return &slackAlerter{
		webhookURL: url,
		channel:    cfg.String("alert.slack.channel"),
		username:   cfg.String("alert.slack.username"),
		threshold:  threshold,
		window:     cfg.Duration("alert.window"),
		cooldown:   cfg.Duration("alert.cooldown"),
		client:     client,
		redis:      redis,
		logger:     logger,
		now:        now,
		counts:     make(map[string]*alertCounter),
	}
}

func (a *slackAlerter) Report(ctx context.Context, key, message string) {
	fire := false
	if a.redis.Enabled() {
		var err error
		if fire, err = a.countShared(ctx, key); err != nil {
			a.logger.Warn().Err(err).Msg("Alert counter falling back to local state")
			fire = a.countLocal(key)
		}
	} else {
		fire = a.countLocal(key)
	}
	if !fire {
		return
	}

	// the webhook must not hold up the response that tripped the threshold
	go a.deliver(key, fmt.Sprintf("Error threshold reached for %s: %s", key, message))
}

func (a *slackAlerter) deliver(key, text string) {
	if err := a.send(text); err != nil {
		a.logger.Error().Err(err).Str("key", key).Msg("Failed to send Slack alert")
		return
	}
	a.logger.Info().Str("key", key).Msg("Slack notification sent successfully")
}

// countShared keeps the counter in Redis so replicas share one budget.
// The alerted marker is taken with SETNX, so only one replica sends.
func (a *slackAlerter) countShared(ctx context.Context, key string) (bool, error) {
	countKey := alertCountPrefix + key
	alertedKey := countKey + ":alerted"

	muted, err := a.redis.Client.Exists(ctx, alertedKey).Result()
	if err != nil {
		return false, err
	}
	if muted > 0 {
		return false, nil
	}

	count, err := a.redis.Client.Incr(ctx, countKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		a.redis.Client.Expire(ctx, countKey, a.window)
	}
	if count < int64(a.threshold) {
		return false, nil
	}

	won, err := a.redis.Client.SetNX(ctx, alertedKey, "1", a.cooldown).Result()
	if err != nil {
		return false, err
	}
	a.redis.Client.Del(ctx, countKey)
	return won, nil
}

func (a *slackAlerter) countLocal(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	c, ok := a.counts[key]
	if !ok {
		c = &alertCounter{}
		a.counts[key] = c
	}
	if now.Before(c.mutedUntil) {
		return false
	}
	if c.count == 0 || now.Sub(c.started) > a.window {
		c.count = 0
		c.started = now
	}

	c.count++
	if c.count < a.threshold {
		return false
	}
	c.count = 0
	c.mutedUntil = now.Add(a.cooldown)
	return true
}

func (a *slackAlerter) send(text string) error {
	payload, err := json.Marshal(SlackPayload{
		Channel:  a.channel,
		Username: a.username,
		Text:     text,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook responded with status code %d", res.StatusCode)
	}
	return nil
}

// AlertOnServerError reports every 5xx response, keyed by method and matched route
func AlertOnServerError(alerter Alerter) func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			next(ctx)

			if ctx.Response.StatusCode() < fasthttp.StatusInternalServerError {
				return
			}
			route, _ := ctx.UserValue(router.MatchedRoutePathParam).(string)
			if route == "" {
				route = string(ctx.Path())
			}
			message := string(ctx.Response.Body())
			if len(message) > alertMessageLimit {
				message = message[:alertMessageLimit]
			}
			alerter.Report(ctx, string(ctx.Method())+" "+route, message)
		}
	}
}
