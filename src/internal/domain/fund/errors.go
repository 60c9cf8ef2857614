package fund

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

const (
	ErrCodeInvalidSettings    shared.ErrorCode = "FUND_INVALID_SETTINGS"
	ErrCodeInvalidBankBalance shared.ErrorCode = "FUND_INVALID_BANK_BALANCE"
	ErrCodeSettingNotFound    shared.ErrorCode = "FUND_SETTING_NOT_FOUND"
)

var (
	// ErrInvalidSettings 設定值不符合規則（更新路徑才會返回）
	//
	// 讀取路徑一律回退到預設值，不返回此錯誤。
	ErrInvalidSettings = shared.NewDomainError(ErrCodeInvalidSettings, "設定值無效")

	// ErrInvalidBankBalance 銀行名稱為空或金額無法解析
	ErrInvalidBankBalance = shared.NewDomainError(ErrCodeInvalidBankBalance, "銀行名稱與金額不能為空，且金額必須是數字")

	// ErrSettingNotFound 設定鍵不存在
	ErrSettingNotFound = shared.NewDomainError(ErrCodeSettingNotFound, "設定不存在")
)
