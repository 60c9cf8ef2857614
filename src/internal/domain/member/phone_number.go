package member

import (
	"regexp"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// PhoneNumber Value Object
// ===========================

// PhoneNumber 手機號碼值對象
//
// 業務規則：
// 1. 伊朗手機號碼：可選前綴 +98 或 0，接著 9 與 9 位數字
// 2. 波斯數字輸入會先正規化為 ASCII
// 3. 零值表示「未提供」（電話為選填欄位）
//
// 使用範例：
//
//	phoneNumber, err := NewPhoneNumber("09123456789")
type PhoneNumber struct {
	value string
}

// iranMobilePattern 伊朗手機號碼正則表達式
var iranMobilePattern = regexp.MustCompile(`^(\+98|0)?9\d{9}$`)

// NewPhoneNumber 創建手機號碼值對象（Checked Constructor）
//
// 錯誤範例：
// - "0912345678" (10位) → ErrInvalidPhoneNumberFormat
// - "08123456789" (不是 09 開頭) → ErrInvalidPhoneNumberFormat
// - "" → ErrInvalidPhoneNumberFormat（選填請用 ParseOptionalPhoneNumber）
func NewPhoneNumber(value string) (PhoneNumber, error) {
	normalized := shared.NormalizeDigits(value)
	if !iranMobilePattern.MatchString(normalized) {
		return PhoneNumber{}, ErrInvalidPhoneNumberFormat.WithContext(
			"phone", value,
		)
	}
	return PhoneNumber{value: normalized}, nil
}

// ParseOptionalPhoneNumber 解析選填的手機號碼
//
// 空字串返回零值；非空時與 NewPhoneNumber 規則相同。
func ParseOptionalPhoneNumber(value string) (PhoneNumber, error) {
	if shared.NormalizeDigits(value) == "" {
		return PhoneNumber{}, nil
	}
	return NewPhoneNumber(value)
}

// String 返回手機號碼字串表示
func (p PhoneNumber) String() string {
	return p.value
}

// Equals 比較兩個手機號碼是否相等
func (p PhoneNumber) Equals(other PhoneNumber) bool {
	return p.value == other.value
}

// IsZero 檢查是否為零值（未提供）
func (p PhoneNumber) IsZero() bool {
	return p.value == ""
}
