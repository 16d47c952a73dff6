package database

import (
	"context"
	"errors"
	"time"

	"github.com/genesis-marketplace/marketplace-admin/internal/database/schema"
	"github.com/genesis-marketplace/marketplace-admin/utils/config"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errNotConnected = errors.New("database is not connected")

// setup database with gorm
type Database struct {
	DB  *gorm.DB
	Log zerolog.Logger
	Cfg *koanf.Koanf
}

func NewDatabase(cfg *koanf.Koanf, log zerolog.Logger) *Database {
	db := &Database{
		Cfg: cfg,
		Log: log,
	}

	return db
}

// DSN prefers db.postgres.dsn and falls back to the individual parts
func (_db *Database) DSN() string {
	if dsn := _db.Cfg.String("db.postgres.dsn"); dsn != "" {
		return dsn
	}
	return config.BuildPostgresDSN(config.Postgres{
		Host:     _db.Cfg.String("db.postgres.host"),
		Port:     _db.Cfg.String("db.postgres.port"),
		User:     _db.Cfg.String("db.postgres.user"),
		Password: _db.Cfg.String("db.postgres.password"),
		Name:     _db.Cfg.String("db.postgres.name"),
		SSLMode:  _db.Cfg.String("db.postgres.sslmode"),
	})
}

// connect database
func (_db *Database) ConnectDatabase(ctx context.Context) error {
	if _db.DB != nil {
		_db.Log.Info().Msg("The database is already connected!")
		return nil
	}

	return _db.Open(ctx, postgres.Open(_db.DSN()))
}

// Open connects through an arbitrary dialector, sizes the pool and pings once
func (_db *Database) Open(ctx context.Context, dialector gorm.Dialector) error {
	conn, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		// pinged below with a deadline
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_db.Log.Error().Err(err).Msg("An unknown error occurred when to connect the database!")
		return err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(_db.Cfg.Int("db.pool.max-open-conns"))
	sqlDB.SetMaxIdleConns(_db.Cfg.Int("db.pool.max-idle-conns"))
	sqlDB.SetConnMaxLifetime(_db.Cfg.Duration("db.pool.conn-max-lifetime"))

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_db.Log.Error().Err(err).Msg("An unknown error occurred when to ping the database!")
		sqlDB.Close()
		return err
	}

	_db.Log.Info().Msg("Connected the database succesfully!")
	_db.DB = conn
	return nil
}

// Ping checks one pooled connection
func (_db *Database) Ping(ctx context.Context) error {
	if _db.DB == nil {
		return errNotConnected
	}
	sqlDB, err := _db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// shutdown database
func (_db *Database) ShutdownDatabase() {
	if _db.DB == nil {
		return
	}
	sqlDB, err := _db.DB.DB()
	if err != nil {
		_db.Log.Error().Err(err).Msg("An unknown error occurred when to shutdown the database!")
		return
	}
	if err := sqlDB.Close(); err != nil {
		_db.Log.Error().Err(err).Msg("An unknown error occurred when to shutdown the database!")
		return
	}
	_db.Log.Info().Msg("Shutdown the database succesfully!")
}

// list of models for migration
func Models() []interface{} {
	return []interface{}{
		schema.Task{},
		schema.User{},
		schema.TelegramUser{},
		schema.InviteLog{},
		schema.TradingData{},
		schema.Volume{},
	}
}

// migrate models
func (_db *Database) MigrateModels() error {
	if err := _db.DB.AutoMigrate(
		Models()...,
	); err != nil {
		_db.Log.Error().Err(err).Msg("An unknown error occurred when to migrate the database!")
		return err
	}
	_db.Log.Info().Msg("Migrated the database succesfully!")
	return nil
}
