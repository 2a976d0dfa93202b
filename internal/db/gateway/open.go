// Package gateway owns the connection pool to the relational store and exposes
// row level primitives. It holds no business rules and never commits on its own.
package gateway

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pluserman/pluserman/internal/config"
	"github.com/pluserman/pluserman/internal/db/dsn"
	"github.com/pluserman/pluserman/internal/db/models"
	"github.com/pluserman/pluserman/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 500 * time.Millisecond

// dialector selects the gorm driver for the configured engine.
func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case "", config.EngineSQLite:
		return sqlite.Open(dsn.Create(cfg)), nil
	case config.EngineMySQL:
		return gormmysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg)), nil
	default:
		return nil, errors.Wrapf(config.ErrUnsupportedEngine, "engine %q", cfg.DB.GormEngine)
	}
}

func newLogger(cfg *config.Config) gormlogger.Interface {
	level := gormlogger.Warn
	if cfg.DB.LogQueries {
		level = gormlogger.Info
	}

	return gormlogger.New(
		stdlogger.New().WithLevel(zerolog.DebugLevel).WithComponent("gorm"),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Open connects to the configured store, verifies foreign key enforcement
// and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         newLogger(cfg),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if cfg.DB.GormEngine == "" || cfg.DB.GormEngine == config.EngineSQLite {
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return nil, errors.Wrap(dbErr, "failed to get sql handle")
		}

		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)

		var enabled int
		if err = db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error; err != nil {
			return nil, errors.Wrap(err, "failed to read foreign_keys pragma")
		}

		if enabled != 1 {
			return nil, ErrForeignKeysDisabled
		}
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	log.Debug().
		Str("engine", db.Dialector.Name()).
		Msg("database ready")

	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql handle")
	}

	return errors.Wrap(sqlDB.Close(), "failed to close database")
}
