package ledger

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeNegativeAmount         shared.ErrorCode = "LEDGER_NEGATIVE_AMOUNT"
	ErrCodeInvalidAmount          shared.ErrorCode = "LEDGER_INVALID_AMOUNT"
	ErrCodeInvalidDate            shared.ErrorCode = "LEDGER_INVALID_DATE"
	ErrCodeInvalidYear            shared.ErrorCode = "LEDGER_INVALID_YEAR"
	ErrCodeInvalidMonth           shared.ErrorCode = "LEDGER_INVALID_MONTH"
	ErrCodeInvalidTransactionType shared.ErrorCode = "LEDGER_INVALID_TRANSACTION_TYPE"
	ErrCodeInvalidTransactionID   shared.ErrorCode = "LEDGER_INVALID_TRANSACTION_ID"
)

var (
	// ErrNegativeAmount 金額不能為負數
	ErrNegativeAmount = shared.NewDomainError(ErrCodeNegativeAmount, "金額不能為負數")

	// ErrInvalidAmount 金額無法解析
	ErrInvalidAmount = shared.NewDomainError(ErrCodeInvalidAmount, "金額格式無效")

	// ErrInvalidDate 日期必須是補零的 YYYY/MM/DD
	ErrInvalidDate = shared.NewDomainError(ErrCodeInvalidDate, "日期格式必須是 YYYY/MM/DD")

	// ErrInvalidYear 年份必須是 4 位數字
	ErrInvalidYear = shared.NewDomainError(ErrCodeInvalidYear, "年份必須是 4 位數字")

	// ErrInvalidMonth 月份必須介於 1..12
	ErrInvalidMonth = shared.NewDomainError(ErrCodeInvalidMonth, "月份必須介於 1 到 12")

	// ErrInvalidTransactionType 只接受三種交易類型
	ErrInvalidTransactionType = shared.NewDomainError(ErrCodeInvalidTransactionType, "交易類型無效")

	// ErrInvalidTransactionID 交易 ID 無效
	ErrInvalidTransactionID = shared.NewDomainError(ErrCodeInvalidTransactionID, "交易 ID 格式無效")
)
