package scheduler

import (
	"context"
	"fmt"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Backuper 執行一次資料庫備份
type Backuper interface {
	Backup() (string, error)
}

// BackupScheduler 依 cron 排程自動備份
//
// 每次觸發時重新讀取 backup_enabled 設定；關閉後排程仍在，只是不執行備份。
type BackupScheduler struct {
	cron     *cron.Cron
	backup   Backuper
	settings fund.SettingsRepository
	log      logrus.FieldLogger
}

// NewBackupScheduler 建立排程
//
// schedule 接受標準 5 欄 cron 表達式或 @daily、@every 1h 之類的描述。
func NewBackupScheduler(schedule string, backup Backuper, settings fund.SettingsRepository, log logrus.FieldLogger) (*BackupScheduler, error) {
	s := &BackupScheduler{
		cron:     cron.New(),
		backup:   backup,
		settings: settings,
		log:      log,
	}
	if _, err := s.cron.AddFunc(schedule, func() { _, _ = s.RunOnce() }); err != nil {
		return nil, fmt.Errorf("schedule backup %q: %w", schedule, err)
	}
	return s, nil
}

// Start 啟動排程（非阻塞）
func (s *BackupScheduler) Start() {
	s.cron.Start()
	s.log.Info("backup scheduler started")
}

// Stop 停止排程；返回的 context 在執行中的備份結束後完成
func (s *BackupScheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce 若 backup_enabled 開啟則立即備份一次
//
// 返回是否實際執行了備份。
func (s *BackupScheduler) RunOnce() (bool, error) {
	raw, err := s.settings.Get(nil, fund.KeyBackupEnabled, "1")
	if err != nil {
		s.log.WithError(err).Warn("read backup setting failed")
		return false, err
	}
	if !fund.ParseSettings(map[string]string{fund.KeyBackupEnabled: raw}).BackupEnabled() {
		s.log.Debug("automatic backup disabled")
		return false, nil
	}

	path, err := s.backup.Backup()
	if err != nil {
		s.log.WithError(err).Error("automatic backup failed")
		return false, err
	}
	s.log.WithField("path", path).Info("automatic backup finished")
	return true, nil
}
