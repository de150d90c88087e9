package database

import (
	"fmt"

	"curalink-backend/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection opens the database selected by cfg.DBDriver.
// Postgres is the production store; sqlite is for local development.
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if cfg.Debug {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	switch cfg.DBDriver {
	case "postgres", "":
		return gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DatabaseURL), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
