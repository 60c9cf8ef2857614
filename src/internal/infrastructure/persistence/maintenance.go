package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ===========================
// 備份與完整性檢查（僅 SQLite）
// ===========================

const (
	backupPrefix     = "finance_backup_"
	backupSuffix     = ".db"
	backupTimeLayout = "20060102_150405.000"
)

// ErrMaintenanceUnsupported 目前的資料庫驅動不支援此維護操作
var ErrMaintenanceUnsupported = errors.New("maintenance operation requires sqlite")

// IntegrityReport PRAGMA integrity_check 的結果
type IntegrityReport struct {
	OK       bool
	Messages []string
}

// Maintenance 資料庫維護
type Maintenance struct {
	db       *gorm.DB
	sqlite   bool
	dir      string
	maxFiles int
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewMaintenance 創建維護服務
//
// maxFiles <= 0 時不刪除舊備份。
func NewMaintenance(db *gorm.DB, driver string, dir string, maxFiles int, log logrus.FieldLogger) *Maintenance {
	return &Maintenance{
		db:       db,
		sqlite:   driver == config.DriverSQLite,
		dir:      dir,
		maxFiles: maxFiles,
		log:      log,
		now:      time.Now,
	}
}

// Backup 以 VACUUM INTO 寫出一致的資料庫副本，返回備份檔路徑
//
// 成功後只保留最新的 maxFiles 份備份。
func (m *Maintenance) Backup() (string, error) {
	if !m.sqlite {
		return "", ErrMaintenanceUnsupported
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	path := filepath.Join(m.dir, backupPrefix+m.now().Format(backupTimeLayout)+backupSuffix)
	if err := m.db.Exec("VACUUM INTO ?", path).Error; err != nil {
		return "", fmt.Errorf("vacuum into %s: %w", path, err)
	}

	removed, err := m.prune()
	if err != nil {
		m.log.WithError(err).Warn("prune old backups failed")
	}

	m.log.WithFields(logrus.Fields{
		"path":    path,
		"removed": removed,
	}).Info("database backup created")
	return path, nil
}

// ListBackups 由舊到新列出備份檔名
func (m *Maintenance) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		names = append(names, name)
	}
	// 檔名內含時間戳記，字串排序即時間排序
	sort.Strings(names)
	return names, nil
}

func (m *Maintenance) prune() (int, error) {
	if m.maxFiles <= 0 {
		return 0, nil
	}
	names, err := m.ListBackups()
	if err != nil {
		return 0, err
	}

	removed := 0
	for len(names)-removed > m.maxFiles {
		if err := os.Remove(filepath.Join(m.dir, names[removed])); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// CheckIntegrity 執行 PRAGMA integrity_check
func (m *Maintenance) CheckIntegrity() (IntegrityReport, error) {
	if !m.sqlite {
		return IntegrityReport{}, ErrMaintenanceUnsupported
	}

	rows, err := m.db.Raw("PRAGMA integrity_check").Rows()
	if err != nil {
		return IntegrityReport{}, fmt.Errorf("integrity check: %w", err)
	}
	defer rows.Close()

	report := IntegrityReport{}
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return IntegrityReport{}, err
		}
		report.Messages = append(report.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return IntegrityReport{}, err
	}

	report.OK = len(report.Messages) == 1 && report.Messages[0] == "ok"
	if !report.OK {
		m.log.WithField("messages", report.Messages).Warn("database integrity check failed")
	}
	return report, nil
}
