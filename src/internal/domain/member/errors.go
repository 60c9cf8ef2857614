package member

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// Member Domain 錯誤定義
// ===========================

// Member Domain 錯誤代碼常量
const (
	ErrCodeInvalidPhoneNumberFormat shared.ErrorCode = "INVALID_PHONE_NUMBER_FORMAT"
	ErrCodeInvalidMembershipCode    shared.ErrorCode = "INVALID_MEMBERSHIP_CODE"
	ErrCodeMembershipCodeTaken      shared.ErrorCode = "MEMBERSHIP_CODE_TAKEN"
	ErrCodeMemberNotFound           shared.ErrorCode = "MEMBER_NOT_FOUND"
	ErrCodeInvalidMemberID          shared.ErrorCode = "INVALID_MEMBER_ID"
	ErrCodeInvalidName              shared.ErrorCode = "INVALID_MEMBER_NAME"
	ErrCodeInvalidJoinDate          shared.ErrorCode = "INVALID_JOIN_DATE"
	ErrCodeInvalidStatus            shared.ErrorCode = "INVALID_MEMBER_STATUS"
	ErrCodeCodeGenerationExhausted  shared.ErrorCode = "MEMBERSHIP_CODE_GENERATION_EXHAUSTED"
)

// ===========================
// Member Domain 錯誤實例
// ===========================

var (
	// ErrInvalidPhoneNumberFormat 手機號碼格式無效
	//
	// 觸發條件：
	// - 不符合伊朗手機號碼格式（09xxxxxxxxx / +989xxxxxxxxx / 9xxxxxxxxx）
	ErrInvalidPhoneNumberFormat = shared.NewDomainError(
		ErrCodeInvalidPhoneNumberFormat,
		"手機號碼格式無效（必須是 09 開頭的 11 位數字，或 +98 開頭）",
	)

	// ErrInvalidMembershipCode 會員代碼無效（空字串）
	ErrInvalidMembershipCode = shared.NewDomainError(ErrCodeInvalidMembershipCode, "會員代碼不能為空")

	// ErrMembershipCodeTaken 會員代碼已被使用
	//
	// 呼叫端必須檢查並重新產生代碼；操作未執行。
	ErrMembershipCodeTaken = shared.NewDomainError(ErrCodeMembershipCodeTaken, "此會員代碼已被登記")

	// ErrMemberNotFound 會員不存在
	ErrMemberNotFound = shared.NewDomainError(ErrCodeMemberNotFound, "會員不存在")

	// ErrInvalidMemberID 會員 ID 無效
	ErrInvalidMemberID = shared.NewDomainError(ErrCodeInvalidMemberID, "會員 ID 格式無效")

	// ErrInvalidName 姓名為空
	ErrInvalidName = shared.NewDomainError(ErrCodeInvalidName, "請輸入會員姓名")

	// ErrInvalidJoinDate 入會日期格式必須是 YYYY/MM/DD
	ErrInvalidJoinDate = shared.NewDomainError(ErrCodeInvalidJoinDate, "入會日期格式必須是 YYYY/MM/DD")

	// ErrInvalidStatus 狀態只能是 active / inactive
	ErrInvalidStatus = shared.NewDomainError(ErrCodeInvalidStatus, "會員狀態無效")

	// ErrCodeGenerationExhausted 自動產生代碼重試次數用盡
	ErrCodeGenerationExhausted = shared.NewDomainError(ErrCodeCodeGenerationExhausted, "無法產生未使用的會員代碼")
)
