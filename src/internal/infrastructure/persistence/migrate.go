package persistence

import (
	"fmt"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	fundpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/fund"
	ledgerpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/ledger"
	loanpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/loan"
	memberpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/member"
	notepersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/note"
	settingpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/setting"
	"gorm.io/gorm"
)

// Models 所有資料表模型（遷移順序）
func Models() []interface{} {
	return []interface{}{
		&memberpersistence.MemberGORM{},
		&ledgerpersistence.TransactionGORM{},
		&loanpersistence.LoanGORM{},
		&settingpersistence.SettingGORM{},
		&notepersistence.NoteGORM{},
		&fundpersistence.BankBalanceGORM{},
	}
}

// Migrate 建立或更新資料表結構，並寫入預設設定
//
// 可重複執行：既有資料表只補欄位與索引，既有設定值不被覆寫。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	settings := settingpersistence.NewSettingsRepository(db)
	if err := settings.EnsureDefaults(nil, fund.DefaultSettings()); err != nil {
		return fmt.Errorf("seed default settings: %w", err)
	}
	return nil
}
