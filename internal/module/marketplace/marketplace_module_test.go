package marketplace_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/genesis-marketplace/marketplace-admin/internal/application"
	"github.com/genesis-marketplace/marketplace-admin/internal/database"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/controller"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/repository"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/service"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"gorm.io/driver/postgres"
)

type recordingAuditor struct {
	events []shared.AuditEvent
}

func (a *recordingAuditor) Record(ctx context.Context, e shared.AuditEvent) {
	if e.Actor == "" {
		e.Actor = shared.ActorFrom(ctx)
	}
	a.events = append(a.events, e)
}

type harness struct {
	handler fasthttp.RequestHandler
	mock    sqlmock.Sqlmock
	auditor *recordingAuditor
}

func newHarness(t *testing.T, overrides map[string]interface{}) *harness {
	t.Helper()
	cfg := shared.SetupCfg(overrides)

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := database.NewDatabase(cfg, zerolog.Nop())
	require.NoError(t, db.Open(context.Background(), postgres.New(postgres.Config{Conn: sqlDB})))

	auditor := &recordingAuditor{}
	ctrl := controller.NewController(
		service.NewTaskService(cfg, repository.NewTaskRepository(db), auditor),
		service.NewUserService(cfg, repository.NewUserRepository(db), auditor),
		service.NewTelegramUserService(cfg, repository.NewTelegramUserRepository(db), auditor),
		service.NewInviteLogService(repository.NewInviteLogRepository(db)),
		service.NewTradingDataService(cfg, repository.NewTradingDataRepository(db), auditor),
		service.NewVolumeService(cfg, repository.NewVolumeRepository(db), auditor),
		zerolog.Nop(),
	)

	app := application.NewApplication(cfg)
	r := marketplace.NewMarketplaceRouter(app, ctrl)
	r.RegisterHealthRoutes()
	r.RegisterMarketplaceRoutes()

	return &harness{handler: app.Router.Handler, mock: mock, auditor: auditor}
}

func (h *harness) do(method, uri string, body string) *fasthttp.RequestCtx {
	var payload []byte
	if body != "" {
		payload = []byte(body)
	}
	ctx := shared.NewRequestCtx(method, uri, payload, nil)
	ctx.SetUserValue(shared.ActorKey, "operator")
	h.handler(ctx)
	return ctx
}

func TestHealth(t *testing.T) {
	h := newHarness(t, nil)
	ctx := h.do(fasthttp.MethodGet, "/api/health", "")

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var body map[string]string
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCreateTask(t *testing.T) {
	h := newHarness(t, nil)
	h.mock.ExpectQuery(`INSERT INTO "telegram_tasks"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	ctx := h.do(fasthttp.MethodPost, "/api/tasks",
		`{"task_id":"T-1","title":"Join","content":"Join the channel","point":"150","start_time":"1714521600"}`)

	assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"message":"Task created","id":12}`, string(ctx.Response.Body()))
	require.Len(t, h.auditor.events, 1)
	assert.Equal(t, "operator", h.auditor.events[0].Actor)
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestCreateTaskValidation(t *testing.T) {
	h := newHarness(t, nil)

	ctx := h.do(fasthttp.MethodPost, "/api/tasks", `{"task_id":"T-1"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"message":"Task ID, title, and content are required","fields":["title","content"]}`, string(ctx.Response.Body()))

	ctx = h.do(fasthttp.MethodPost, "/api/tasks", `{not json`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = h.do(fasthttp.MethodPost, "/api/tasks", `{"task_id":"T-1","title":"a","content":"b","point":"lots"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestSearchTasks(t *testing.T) {
	h := newHarness(t, nil)
	h.mock.ExpectQuery(`SELECT \* FROM "telegram_tasks" WHERE task_id ILIKE \$1 ORDER BY id`).
		WithArgs("%T-1%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "title", "content"}).AddRow(12, "T-1", "Join", "Join the channel"))

	ctx := h.do(fasthttp.MethodGet, "/api/tasks?search=T-1&criteria=Task+ID", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var tasks []map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "T-1", tasks[0]["task_id"])
	assert.Equal(t, float64(12), tasks[0]["id"])
}

func TestSearchNonNumericIDReturnsEmptyArray(t *testing.T) {
	h := newHarness(t, nil)

	ctx := h.do(fasthttp.MethodGet, "/api/tasks?search=abc&criteria=ID", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "[]", string(ctx.Response.Body()))
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestListDatabaseError(t *testing.T) {
	h := newHarness(t, nil)
	h.mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errors.New("too many connections"))

	ctx := h.do(fasthttp.MethodGet, "/api/users", "")
	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"message":"Error fetching users","error":"too many connections"}`, string(ctx.Response.Body()))
}

func TestDeleteTaskTwiceSucceeds(t *testing.T) {
	h := newHarness(t, nil)
	h.mock.ExpectExec(`DELETE FROM "telegram_tasks" WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	h.mock.ExpectExec(`DELETE FROM "telegram_tasks" WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))

	for i := 0; i < 2; i++ {
		ctx := h.do(fasthttp.MethodDelete, "/api/tasks/12", "")
		assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
		assert.JSONEq(t, `{"message":"Task deleted"}`, string(ctx.Response.Body()))
	}
	assert.Len(t, h.auditor.events, 1)
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestStrictNotFound(t *testing.T) {
	h := newHarness(t, map[string]interface{}{"api.strict-not-found": true})
	h.mock.ExpectExec(`DELETE FROM "data" WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))
	h.mock.ExpectExec(`UPDATE "volume" SET .* WHERE id = `).WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := h.do(fasthttp.MethodDelete, "/api/data/99", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())

	ctx = h.do(fasthttp.MethodPut, "/api/volume/99", `{"date":"2024-05-01","total_btc_volume_usd":"10"}`)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestInvalidPathID(t *testing.T) {
	h := newHarness(t, nil)

	ctx := h.do(fasthttp.MethodDelete, "/api/tasks/abc", "")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"message":"Invalid id"}`, string(ctx.Response.Body()))

	ctx = h.do(fasthttp.MethodPut, "/api/data/-4", `{"trading_pair":"BTC/USDT"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestUpdateTradingData(t *testing.T) {
	h := newHarness(t, nil)
	h.mock.ExpectExec(`UPDATE "data" SET .*"trading_pair"=.* WHERE id = `).WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := h.do(fasthttp.MethodPut, "/api/data/5",
		`{"trading_pair":"BTC/USDT","amount1":"0.5","usd_worth":"31000.25","timestamp":"2024-05-01T10:00"}`)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"message":"Record updated successfully"}`, string(ctx.Response.Body()))
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestCreateVolumeRespondsWithIDOnly(t *testing.T) {
	h := newHarness(t, nil)
	h.mock.ExpectQuery(`INSERT INTO "volume"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	ctx := h.do(fasthttp.MethodPost, "/api/volume", `{"date":"2024-05-01","total_btc_volume_usd":"1234.5"}`)
	assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"id":3}`, string(ctx.Response.Body()))

	ctx = h.do(fasthttp.MethodPost, "/api/volume", `{"total_btc_volume_usd":"1"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestCreateTelegramUser(t *testing.T) {
	h := newHarness(t, nil)
	h.mock.ExpectQuery(`INSERT INTO "telegram_users" \("telegram_id_bot_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	ctx := h.do(fasthttp.MethodPost, "/api/telegram-users", `{"telegram_id":"5551234","bot_id":"genesis_bot","username":"bob"}`)
	assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"message":"Telegram user created","id":8}`, string(ctx.Response.Body()))
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestInviteLogs(t *testing.T) {
	h := newHarness(t, nil)
	h.mock.ExpectQuery(`SELECT \* FROM "telegram_invite_logs" WHERE code = \$1`).
		WithArgs("ABC123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}))

	ctx := h.do(fasthttp.MethodGet, "/api/telegram-invite-logs?code=ABC123", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "[]", string(ctx.Response.Body()))
	assert.NoError(t, h.mock.ExpectationsWereMet())
}
