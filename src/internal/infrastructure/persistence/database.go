package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/config"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQueryThreshold 超過此時間的 SQL 以 Warn 記錄
const slowQueryThreshold = 500 * time.Millisecond

// Open 依設定開啟資料庫
//
// SQLite（預設）：
// - 資料庫檔案所在目錄不存在時自動建立
// - 單一連線（單一寫入者），套用 busy_timeout 與 journal_mode
//
// PostgreSQL / MySQL：DSN 原樣交給驅動。
func Open(cfg config.DatabaseConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log, cfg.Debug),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		if err := configureSQLite(db, cfg); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"driver": cfg.Driver,
	}).Info("database opened")
	return db, nil
}

// Close 關閉底層連線池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := ensureSQLiteDir(cfg.DSN); err != nil {
			return nil, err
		}
		return sqlite.Open(cfg.DSN), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: unsupported database driver %q", config.ErrInvalidConfig, cfg.Driver)
	}
}

// ensureSQLiteDir 建立資料庫檔案的父目錄（:memory: 與 file: URI 不處理）
func ensureSQLiteDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}

func configureSQLite(db *gorm.DB, cfg config.DatabaseConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()),
		"PRAGMA foreign_keys = ON",
	}
	if cfg.JournalMode != "" {
		pragmas = append(pragmas, "PRAGMA journal_mode = "+cfg.JournalMode)
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return nil
}

// newGormLogger 將 GORM 日誌導向 logrus
//
// 非 debug 模式只記錄錯誤與慢查詢。
func newGormLogger(log logrus.FieldLogger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
