package fund

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// SettingsRepository 設定鍵值倉儲
//
// Get 找不到鍵時返回 (defaultValue, nil)，不視為錯誤。
type SettingsRepository interface {
	// Get 讀取單一設定
	Get(ctx shared.TransactionContext, key, defaultValue string) (string, error)

	// Set 寫入或覆寫設定（含說明）
	Set(ctx shared.TransactionContext, key, value, description string) error

	// All 讀取所有設定
	All(ctx shared.TransactionContext) (map[string]string, error)

	// EnsureDefaults 寫入尚不存在的預設設定
	EnsureDefaults(ctx shared.TransactionContext, defaults []Setting) error
}

// BankBalanceRepository 銀行餘額倉儲
type BankBalanceRepository interface {
	// ReplaceAll 刪除所有既有餘額並寫入新清單
	ReplaceAll(ctx shared.TransactionContext, balances []BankBalance) error

	// List 依寫入順序列出
	List(ctx shared.TransactionContext) ([]BankBalance, error)
}
