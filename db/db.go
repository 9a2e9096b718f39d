package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/meinhoongagan/servicehub/config"
	"github.com/meinhoongagan/servicehub/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the store selected by DB_TYPE and sizes its connection pool.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	gdb, err := Open(dialector, gormlogger.Warn)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBType, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	maxConns := cfg.DBMaxConns
	if cfg.DBType == "sqlite" {
		maxConns = 1
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(maxConns)
		sqlDB.SetMaxIdleConns(maxConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logger.Log.WithField("driver", cfg.DBType).Info("database connection established")
	return gdb, nil
}

// Open wraps gorm.Open with the settings every store shares. References
// between collections are plain ids, so no foreign-key constraints are created.
func Open(dialector gorm.Dialector, level gormlogger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(level),
	})
}

func dialectorFor(dbType, dsn string) (gorm.Dialector, error) {
	switch dbType {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
