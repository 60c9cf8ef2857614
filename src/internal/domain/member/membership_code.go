package member

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// MembershipCode Value Object
// ===========================

const (
	// MembershipCodePrefix 自動產生代碼的前綴
	MembershipCodePrefix = "M"

	// DefaultLastCode 尚無會員時視為最後代碼
	DefaultLastCode = "M000"

	// FallbackCode 無法解析上一個代碼時使用
	FallbackCode = "M001"
)

// MembershipCode 會員代碼值對象
//
// 業務規則：
// 1. 不可為空（前後空白會被去除）
// 2. 全域唯一由資料庫 UNIQUE 約束保證，VO 本身不檢查
// 3. 呼叫端可自行指定任意代碼；自動產生時格式為 M + 至少 3 位數字
type MembershipCode struct {
	value string
}

// NewMembershipCode 創建會員代碼（Checked Constructor）
func NewMembershipCode(value string) (MembershipCode, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return MembershipCode{}, ErrInvalidMembershipCode
	}
	return MembershipCode{value: trimmed}, nil
}

// String 返回代碼字串
func (c MembershipCode) String() string {
	return c.value
}

// Equals 比較兩個代碼是否相等
func (c MembershipCode) Equals(other MembershipCode) bool {
	return c.value == other.value
}

// IsZero 檢查是否為零值
func (c MembershipCode) IsZero() bool {
	return c.value == ""
}

// ===========================
// 代碼產生（純函數）
// ===========================

// NextMembershipCode 依上一個代碼產生下一個代碼
//
// 規則：
// - 去掉第一個字元後的部分（允許波斯數字）解析為非負整數 n
// - 返回 "M" + 補零到 3 位的 n+1（超過 999 不截斷）
// - last 為空字串 → "M001"
// - 無法解析 → FallbackCode
//
// 範例：
//
//	NextMembershipCode("M005") // "M006"
//	NextMembershipCode("M000") // "M001"
//	NextMembershipCode("M999") // "M1000"
//	NextMembershipCode("abc")  // "M001"
//
// 產生的代碼僅供參考，不保證唯一；註冊流程需自行重新檢查。
func NextMembershipCode(last string) string {
	if last == "" {
		return formatMembershipCode(1)
	}

	_, size := utf8.DecodeRuneInString(last)
	suffix := shared.NormalizeDigits(last[size:])
	n, err := strconv.ParseUint(suffix, 10, 63)
	if err != nil {
		return FallbackCode
	}
	return formatMembershipCode(n + 1)
}

func formatMembershipCode(n uint64) string {
	return fmt.Sprintf("%s%03d", MembershipCodePrefix, n)
}
