// Package accounting 股價、股數、可貸額度、報表與年度帳本的 Use Case
//
// 讀取類計算（股價、股數、可貸額度）不返回倉儲錯誤：
// 失敗時記錄 Warn 並返回零值，介面顯示 0 而不是中斷。
package accounting

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/sirupsen/logrus"
)

// loadSettings 讀取一次設定快照，供顯示用
//
// 同一個操作內所有計算使用同一份快照；讀取失敗時使用預設值。
func loadSettings(repo fund.SettingsRepository, log logrus.FieldLogger) fund.Settings {
	s, ok := readSettings(repo, log)
	if !ok {
		return fund.ParseSettings(nil)
	}
	return s
}

// readSettings 讀取設定快照；失敗時 ok 為 false
//
// 股數與額度在讀取失敗時必須為 0，不能以預設股價計算。
func readSettings(repo fund.SettingsRepository, log logrus.FieldLogger) (fund.Settings, bool) {
	raw, err := repo.All(nil)
	if err != nil {
		log.WithError(err).Warn("load settings failed")
		return fund.Settings{}, false
	}
	return fund.ParseSettings(raw), true
}

// ===========================
// GetSettings
// ===========================

// SettingsDTO 股價設定（Output DTO）
type SettingsDTO struct {
	SharePrice        string
	MonthlyIncrease   string
	LoanFactor        string
	StartDate         string // 西曆 YYYY/MM/DD，未設定時為空
	FundBalance       string
	BackupEnabled     bool
	CurrentSharePrice int64
}

// GetSettingsUseCase 查詢設定
type GetSettingsUseCase struct {
	settingsRepo fund.SettingsRepository
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewGetSettingsUseCase 創建 Use Case 實例
func NewGetSettingsUseCase(settingsRepo fund.SettingsRepository, log logrus.FieldLogger) *GetSettingsUseCase {
	return &GetSettingsUseCase{settingsRepo: settingsRepo, log: log, now: time.Now}
}

// Execute 返回解析後的設定（格式錯誤的值已替換為預設值）
func (uc *GetSettingsUseCase) Execute() SettingsDTO {
	s := loadSettings(uc.settingsRepo, uc.log)
	return toSettingsDTO(s, uc.now())
}

func toSettingsDTO(s fund.Settings, now time.Time) SettingsDTO {
	dto := SettingsDTO{
		SharePrice:        s.SharePrice().String(),
		MonthlyIncrease:   s.MonthlyIncrease().String(),
		LoanFactor:        s.LoanFactor().String(),
		FundBalance:       s.FundBalance().String(),
		BackupEnabled:     s.BackupEnabled(),
		CurrentSharePrice: fund.CurrentSharePrice(s, now),
	}
	if start, ok := s.StartDate(); ok {
		dto.StartDate = start.Format(fund.StartDateLayout)
	}
	return dto
}

// ===========================
// UpdateSettings
// ===========================

// UpdateSettingsCommand 更新股價設定指令
//
// 空欄位使用預設值；StartDate 空白時為今天。
// BackupEnabled 為 nil 時不變更。
type UpdateSettingsCommand struct {
	SharePrice      string
	MonthlyIncrease string
	LoanFactor      string
	StartDate       string
	BackupEnabled   *bool
}

// UpdateSettingsUseCase 更新股價設定
type UpdateSettingsUseCase interface {
	Execute(cmd UpdateSettingsCommand) (*SettingsDTO, error)
}

// UpdateSettingsUseCaseImpl 更新股價設定實作
type UpdateSettingsUseCaseImpl struct {
	settingsRepo fund.SettingsRepository
	txManager    shared.TransactionManager
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewUpdateSettingsUseCase 創建 Use Case 實例
func NewUpdateSettingsUseCase(
	settingsRepo fund.SettingsRepository,
	txManager shared.TransactionManager,
	log logrus.FieldLogger,
) UpdateSettingsUseCase {
	return &UpdateSettingsUseCaseImpl{
		settingsRepo: settingsRepo,
		txManager:    txManager,
		log:          log,
		now:          time.Now,
	}
}

// Execute 驗證並寫入所有設定（同一事務）
//
// 錯誤處理：
// - 股價 <= 0、漲幅 < 0、倍數 <= 0、起算日格式錯誤 → fund.ErrInvalidSettings
func (uc *UpdateSettingsUseCaseImpl) Execute(cmd UpdateSettingsCommand) (*SettingsDTO, error) {
	now := uc.now()
	rows, err := fund.ValidateSettingsUpdate(fund.SettingsUpdate{
		SharePrice:      cmd.SharePrice,
		MonthlyIncrease: cmd.MonthlyIncrease,
		LoanFactor:      cmd.LoanFactor,
		StartDate:       cmd.StartDate,
	}, now)
	if err != nil {
		return nil, err
	}

	if cmd.BackupEnabled != nil {
		value := "0"
		if *cmd.BackupEnabled {
			value = "1"
		}
		rows = append(rows, fund.Setting{Key: fund.KeyBackupEnabled, Value: value})
	}

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		for _, row := range rows {
			if err := uc.settingsRepo.Set(ctx, row.Key, row.Value, row.Description); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.WithField("settings", len(rows)).Info("fund settings updated")

	dto := toSettingsDTO(loadSettings(uc.settingsRepo, uc.log), now)
	return &dto, nil
}
