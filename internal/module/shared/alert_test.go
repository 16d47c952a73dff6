package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type webhook struct {
	mu       sync.Mutex
	payloads []SlackPayload
	status   int
}

func (w *webhook) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	var p SlackPayload
	_ = json.NewDecoder(r.Body).Decode(&p)
	w.mu.Lock()
	w.payloads = append(w.payloads, p)
	w.mu.Unlock()
	rw.WriteHeader(w.status)
}

func (w *webhook) received() []SlackPayload {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]SlackPayload(nil), w.payloads...)
}

func newTestAlerter(t *testing.T, hook *webhook, now func() time.Time) Alerter {
	t.Helper()
	server := httptest.NewServer(hook)
	t.Cleanup(server.Close)

	cfg := SetupCfg(map[string]interface{}{
		"alert.enable":        true,
		"alert.threshold":     3,
		"alert.slack.channel": "#marketplace-alerts",
	})
	return NewSlackAlerter(cfg, server.URL, server.Client(), NewRedisClient(cfg, zerolog.Nop()), zerolog.Nop(), now)
}

func TestNewAlerterDisabled(t *testing.T) {
	a := NewAlerter(SetupCfg(nil), nil, zerolog.Nop())
	assert.IsType(t, nopAlerter{}, a)

	a = NewAlerter(SetupCfg(map[string]interface{}{"alert.enable": true}), nil, zerolog.Nop())
	assert.IsType(t, nopAlerter{}, a)
}

func TestAlerterThresholdAndCooldown(t *testing.T) {
	hook := &webhook{status: http.StatusOK}
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	a := newTestAlerter(t, hook, func() time.Time { return now })

	ctx := context.Background()
	a.Report(ctx, "GET /api/tasks", "boom")
	a.Report(ctx, "GET /api/tasks", "boom")
	assert.Empty(t, hook.received())

	a.Report(ctx, "GET /api/tasks", "boom")
	require.Eventually(t, func() bool { return len(hook.received()) == 1 }, 5*time.Second, 10*time.Millisecond)
	received := hook.received()
	assert.Equal(t, "#marketplace-alerts", received[0].Channel)
	assert.Equal(t, "marketplace-admin", received[0].Username)
	assert.Contains(t, received[0].Text, "GET /api/tasks")

	// muted for the cooldown
	for i := 0; i < 5; i++ {
		a.Report(ctx, "GET /api/tasks", "boom")
	}
	assert.Len(t, hook.received(), 1)

	now = now.Add(25 * time.Hour)
	for i := 0; i < 3; i++ {
		a.Report(ctx, "GET /api/tasks", "boom")
	}
	assert.Eventually(t, func() bool { return len(hook.received()) == 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestAlerterWindowResets(t *testing.T) {
	hook := &webhook{status: http.StatusOK}
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	a := newTestAlerter(t, hook, func() time.Time { return now })

	ctx := context.Background()
	a.Report(ctx, "DELETE /api/data/{id}", "x")
	a.Report(ctx, "DELETE /api/data/{id}", "x")
	now = now.Add(11 * time.Minute)
	a.Report(ctx, "DELETE /api/data/{id}", "x")

	assert.Empty(t, hook.received())
}

func TestAlerterWebhookFailureIsSwallowed(t *testing.T) {
	hook := &webhook{status: http.StatusInternalServerError}
	a := newTestAlerter(t, hook, time.Now)

	for i := 0; i < 3; i++ {
		a.Report(context.Background(), "POST /api/users", "x")
	}
	assert.Eventually(t, func() bool { return len(hook.received()) == 1 }, 5*time.Second, 10*time.Millisecond)
}

type slowWebhook struct {
	webhook
	release chan struct{}
}

func (w *slowWebhook) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	<-w.release
	w.webhook.ServeHTTP(rw, r)
}

func TestAlerterDoesNotWaitForWebhook(t *testing.T) {
	hook := &slowWebhook{webhook: webhook{status: http.StatusOK}, release: make(chan struct{})}
	server := httptest.NewServer(hook)
	defer server.Close()
	defer close(hook.release)

	cfg := SetupCfg(map[string]interface{}{"alert.enable": true, "alert.threshold": 1})
	a := NewSlackAlerter(cfg, server.URL, server.Client(), nil, zerolog.Nop(), time.Now)

	returned := make(chan struct{})
	go func() {
		a.Report(context.Background(), "GET /api/data", "boom")
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Report blocked on the webhook")
	}
	assert.Empty(t, hook.received())
}

type keyRecorder struct {
	keys     []string
	messages []string
}

func (r *keyRecorder) Report(_ context.Context, key, message string) {
	r.keys = append(r.keys, key)
	r.messages = append(r.messages, message)
}

func TestAlertOnServerError(t *testing.T) {
	rec := &keyRecorder{}
	wrap := AlertOnServerError(rec)

	ok := wrap(func(ctx *fasthttp.RequestCtx) { ctx.SetStatusCode(fasthttp.StatusNotFound) })
	ok(NewRequestCtx(fasthttp.MethodGet, "/api/nope", nil, nil))
	assert.Empty(t, rec.keys)

	failing := wrap(func(ctx *fasthttp.RequestCtx) {
		Respond(ctx, fasthttp.StatusInternalServerError, Map{"message": "Error fetching users"})
	})
	failing(NewRequestCtx(fasthttp.MethodGet, "/api/users", nil, nil))

	require.Len(t, rec.keys, 1)
	assert.Equal(t, "GET /api/users", rec.keys[0])
	assert.Contains(t, rec.messages[0], "Error fetching users")
}
