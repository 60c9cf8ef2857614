package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ===========================
// 行程設定（非基金設定）
// ===========================
//
// 基金設定（股價、倍數等）存在 settings 資料表；
// 這裡只有資料庫連線、HTTP、日誌、備份等啟動參數。

// EnvPrefix 環境變數前綴，例如 QARZ_DATABASE_DRIVER
const EnvPrefix = "QARZ"

// Config 應用程式設定
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Backup   BackupConfig   `mapstructure:"backup"`
}

// DatabaseConfig 資料庫設定
type DatabaseConfig struct {
	Driver      string        `mapstructure:"driver"` // sqlite | postgres | mysql
	DSN         string        `mapstructure:"dsn"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
	JournalMode string        `mapstructure:"journal_mode"`
	Debug       bool          `mapstructure:"debug"`
}

// HTTPConfig HTTP 介面設定
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig 日誌設定
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
	File   string `mapstructure:"file"`
}

// BackupConfig 自動備份設定
type BackupConfig struct {
	Dir      string `mapstructure:"dir"`
	Schedule string `mapstructure:"schedule"` // cron 表達式或 @daily 之類的描述
	MaxFiles int    `mapstructure:"max_files"`
}

// 支援的資料庫驅動
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// ErrInvalidConfig 設定值無效
var ErrInvalidConfig = errors.New("invalid configuration")

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "data/finance_v2.db")
	v.SetDefault("database.busy_timeout", "30s")
	v.SetDefault("database.journal_mode", "WAL")
	v.SetDefault("database.debug", false)
	v.SetDefault("http.addr", "127.0.0.1:8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("backup.dir", "backups")
	v.SetDefault("backup.schedule", "@daily")
	v.SetDefault("backup.max_files", 30)
}

// Load 載入設定
//
// 優先順序（高 → 低）：
// 1. 環境變數 QARZ_*（.env 檔案若存在會先載入到環境）
// 2. configFile（空字串時在工作目錄尋找 config.yaml，找不到不視為錯誤）
// 3. 預設值
func Load(configFile string) (*Config, error) {
	// .env 不存在時忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 檢查設定是否可用
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("%w: unsupported database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("%w: database.dsn is required", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unsupported log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Backup.MaxFiles < 0 {
		return fmt.Errorf("%w: backup.max_files must not be negative", ErrInvalidConfig)
	}
	return nil
}
