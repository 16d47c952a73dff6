package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/genesis-marketplace/marketplace-admin/internal/database"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
)

func TestOpenPingsOnce(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mock.ExpectPing()
	db := database.NewDatabase(shared.SetupCfg(nil), zerolog.Nop())
	require.NoError(t, db.Open(context.Background(), postgres.New(postgres.Config{Conn: sqlDB})))

	assert.NotNil(t, db.DB)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenFailsWhenPingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(assert.AnError)
	db := database.NewDatabase(shared.SetupCfg(nil), zerolog.Nop())

	assert.ErrorIs(t, db.Open(context.Background(), postgres.New(postgres.Config{Conn: sqlDB})), assert.AnError)
	assert.Nil(t, db.DB)
}

func TestPingWithoutConnection(t *testing.T) {
	db := database.NewDatabase(shared.SetupCfg(nil), zerolog.Nop())
	assert.Error(t, db.Ping(context.Background()))
}

func TestDSNPrefersExplicitValue(t *testing.T) {
	db := database.NewDatabase(shared.SetupCfg(map[string]interface{}{
		"db.postgres.dsn": "postgres://u:p@db:5432/marketplace",
	}), zerolog.Nop())
	assert.Equal(t, "postgres://u:p@db:5432/marketplace", db.DSN())
}
