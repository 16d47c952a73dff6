package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoginThrottleEvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	throttle := NewLoginThrottleWithLimit(2, time.Minute, nil, zerolog.Nop())
	throttle.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		throttle.Allow(ctx, fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	assert.Len(t, throttle.limiters, 1000)

	now = now.Add(30 * time.Second)
	throttle.Allow(ctx, "10.9.9.9")
	throttle.Allow(ctx, "10.9.9.9")

	now = now.Add(45 * time.Second)
	throttle.Allow(ctx, "10.9.9.9")
	assert.Len(t, throttle.limiters, 1)
	assert.Contains(t, throttle.limiters, "10.9.9.9")
}

func TestLoginThrottleEvictedClientStartsFull(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	throttle := NewLoginThrottleWithLimit(2, time.Minute, nil, zerolog.Nop())
	throttle.now = func() time.Time { return now }
	ctx := context.Background()

	assert.True(t, throttle.Allow(ctx, "10.0.0.1"))
	assert.True(t, throttle.Allow(ctx, "10.0.0.1"))
	assert.False(t, throttle.Allow(ctx, "10.0.0.1"))

	now = now.Add(2 * time.Minute)
	assert.True(t, throttle.Allow(ctx, "10.0.0.1"))
	assert.True(t, throttle.Allow(ctx, "10.0.0.1"))
	assert.False(t, throttle.Allow(ctx, "10.0.0.1"))
}
