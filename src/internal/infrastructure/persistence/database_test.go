package persistence

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/config"
	settingpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/setting"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestOpen_SQLiteCreatesDirectoryAndMigrates(t *testing.T) {
	// Arrange
	dsn := filepath.Join(t.TempDir(), "nested", "finance.db")
	cfg := config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		DSN:         dsn,
		BusyTimeout: 5 * time.Second,
		JournalMode: "WAL",
	}

	// Act
	db, err := Open(cfg, silentLogger())
	require.NoError(t, err)
	defer func() { _ = Close(db) }()
	require.NoError(t, Migrate(db))

	// Assert
	_, statErr := os.Stat(dsn)
	assert.NoError(t, statErr)

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, db.Raw("PRAGMA busy_timeout").Scan(&timeout).Error)
	assert.Equal(t, 5000, timeout)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle", DSN: "x"}, silentLogger())

	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestMigrate_IsIdempotentAndSeedsDefaults(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	settings := settingpersistence.NewSettingsRepository(db)
	require.NoError(t, settings.Set(nil, fund.KeySharePrice, "3000000", ""))

	// Act: 再次遷移
	require.NoError(t, Migrate(db))

	// Assert
	all, err := settings.All(nil)
	require.NoError(t, err)
	assert.Equal(t, "3000000", all[fund.KeySharePrice], "既有設定不被預設值覆寫")
	assert.Equal(t, "2", all[fund.KeyLoanFactor])
	assert.Equal(t, "1", all[fund.KeyBackupEnabled])

	for _, model := range Models() {
		assert.True(t, db.Migrator().HasTable(model))
	}
}
