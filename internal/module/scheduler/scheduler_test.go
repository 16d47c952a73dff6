package scheduler_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/genesis-marketplace/marketplace-admin/internal/database"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/scheduler"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
)

const dbUp = `
# HELP marketplace_admin_db_up 1 if the last database ping succeeded.
# TYPE marketplace_admin_db_up gauge
marketplace_admin_db_up %s
`

func newScheduler(t *testing.T, interval string) (*scheduler.Scheduler, sqlmock.Sqlmock, *shared.Metrics) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := shared.SetupCfg(map[string]interface{}{"scheduler.pool-stats-interval": interval})
	db := database.NewDatabase(cfg, zerolog.Nop())
	mock.ExpectPing()
	require.NoError(t, db.Open(context.Background(), postgres.New(postgres.Config{Conn: sqlDB})))

	metrics := shared.NewMetrics()
	return scheduler.NewScheduler(cfg, db, metrics, zerolog.Nop()), mock, metrics
}

func TestCollectPoolStatsReportsUp(t *testing.T) {
	s, mock, metrics := newScheduler(t, "1h")
	mock.ExpectPing()

	s.CollectPoolStats()

	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(strings.Replace(dbUp, "%s", "1", 1)), "marketplace_admin_db_up"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectPoolStatsReportsDown(t *testing.T) {
	s, mock, metrics := newScheduler(t, "1h")
	mock.ExpectPing().WillReturnError(assert.AnError)

	s.CollectPoolStats()

	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(strings.Replace(dbUp, "%s", "0", 1)), "marketplace_admin_db_up"))
}

func TestPoolMonitorStops(t *testing.T) {
	s, mock, _ := newScheduler(t, "1h")
	mock.ExpectPing()

	go s.StartPoolMonitor()

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("pool monitor did not stop")
	}
}

func TestCollectPoolStatsWithoutConnection(t *testing.T) {
	metrics := shared.NewMetrics()
	cfg := shared.SetupCfg(nil)
	s := scheduler.NewScheduler(cfg, database.NewDatabase(cfg, zerolog.Nop()), metrics, zerolog.Nop())

	assert.NotPanics(t, s.CollectPoolStats)
}
