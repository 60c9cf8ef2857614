// qarzd 啟動 Qarz-al-Hasana 基金帳務服務
//
// 啟動順序：設定 → 日誌 → 資料庫遷移 → Use Case → 備份排程 → HTTP。
// 收到 SIGINT/SIGTERM 時依相反順序關閉，並在關閉資料庫前做最後一次備份。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/qarz_fund/src/internal/bootstrap"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/config"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/events"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/logging"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/scheduler"
	"github.com/jackyeh168/qarz_fund/src/internal/interfaces/http/handlers"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configFile := flag.String("config", "", "設定檔路徑（預設讀取工作目錄的 config.yaml）")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "qarzd: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// === 資料庫 ===
	db, err := persistence.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := persistence.Close(db); err != nil {
			log.WithError(err).Warn("close database failed")
		}
	}()
	if err := persistence.Migrate(db); err != nil {
		return err
	}

	// === Use Case ===
	repos := bootstrap.NewRepositories(db)
	maintenance := persistence.NewMaintenance(db, cfg.Database.Driver, cfg.Backup.Dir, cfg.Backup.MaxFiles, log)
	useCases := bootstrap.NewUseCases(repos, maintenance, events.NewLogPublisher(log), log)

	// === 備份排程（僅 SQLite）===
	var backups *scheduler.BackupScheduler
	if cfg.Database.Driver == config.DriverSQLite {
		backups, err = scheduler.NewBackupScheduler(cfg.Backup.Schedule, maintenance, repos.Settings, log)
		if err != nil {
			return err
		}
		backups.Start()
	}

	// === HTTP ===
	if !cfg.Database.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	server := handlers.NewServer(cfg.HTTP.Addr, handlers.NewRouter(useCases, log), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			log.WithError(err).Error("http server stopped")
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.WithError(shutdownErr).Warn("http server shutdown incomplete")
	}

	if backups != nil {
		select {
		case <-backups.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn("scheduled backup still running at shutdown")
		}
		// 關閉前的最後一次備份
		if _, backupErr := backups.RunOnce(); backupErr != nil {
			log.WithError(backupErr).Warn("backup on shutdown failed")
		}
	}

	return err
}
