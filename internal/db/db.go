package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

const slowQueryThreshold = 200 * time.Millisecond

// Open makes a single connection attempt, applies the pool settings and
// verifies the store answers a ping.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	driver, err := DriverFor(cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(driver.Open(cfg.DSN()), &gorm.Config{
		Logger:         newGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver.Name(), err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := driver.Configure(database); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("configure %s: %w", driver.Name(), err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", driver.Name(), err)
	}

	return database, nil
}

// ConnectWithRetry keeps calling Open until it succeeds, the attempts in cfg
// run out or ctx is done.
func ConnectWithRetry(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var err error

	for attempt := 1; attempt <= cfg.DBConnectAttempts; attempt++ {
		var database *gorm.DB
		database, err = Open(ctx, cfg)
		if err == nil {
			logger.Info("database connected",
				zap.String("driver", cfg.DBDriver),
				zap.Int("attempt", attempt),
			)
			return database, nil
		}

		logger.Warn("db not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.DBConnectAttempts),
			zap.Error(err),
		)

		if attempt == cfg.DBConnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBConnectRetryWait):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DBConnectAttempts, err)
}

// Migrate creates or alters the catalog tables.
func Migrate(database *gorm.DB) error {
	models := model.AllModels()
	if err := database.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	logger.Info("database migrations completed", zap.Int("models", len(models)))
	return nil
}

func Ping(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormLogger() gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(logger.L()),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
