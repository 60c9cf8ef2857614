package ledger

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// Amount 金額值對象
// ===========================

// Amount 交易金額值對象
//
// 建構約束：金額必須 >= 0（交易類型決定方向，金額本身沒有正負）
type Amount struct {
	value decimal.Decimal
}

// NewAmount 建構函數（checked 版本）
func NewAmount(value decimal.Decimal) (Amount, error) {
	if value.IsNegative() {
		return Amount{}, ErrNegativeAmount.WithContext("amount", value.String())
	}
	return Amount{value: value}, nil
}

// ParseAmount 解析使用者輸入的金額字串
//
// 允許千分位符號與波斯數字；空字串視為 0。
func ParseAmount(raw string) (Amount, error) {
	normalized := shared.NormalizeDigits(raw)
	if normalized == "" {
		return Amount{}, nil
	}
	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return Amount{}, ErrInvalidAmount.WithContext("input", raw)
	}
	return NewAmount(value)
}

// MustAmount 測試與常數用的建構函數，金額為負時 panic
func MustAmount(value int64) Amount {
	a, err := NewAmount(decimal.NewFromInt(value))
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal 返回金額
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// IsZero 是否為零
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Add 相加（兩個非負數相加仍為非負數）
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// Equals 比較金額
func (a Amount) Equals(other Amount) bool {
	return a.value.Equal(other.value)
}

// String 返回金額字串
func (a Amount) String() string {
	return a.value.String()
}

// ===========================
// TransactionType 交易類型
// ===========================

// TransactionType 交易類型
//
// 恰好三種；計算函數假設不存在其他值。
type TransactionType string

const (
	TypeMembershipDeposit  TransactionType = "membership_deposit"
	TypeLoanDisbursement   TransactionType = "loan_disbursement"
	TypeInstallmentPayment TransactionType = "installment_payment"
)

// AllTransactionTypes 所有交易類型
var AllTransactionTypes = []TransactionType{
	TypeMembershipDeposit,
	TypeLoanDisbursement,
	TypeInstallmentPayment,
}

// ParseTransactionType 解析交易類型
func ParseTransactionType(value string) (TransactionType, error) {
	for _, t := range AllTransactionTypes {
		if string(t) == value {
			return t, nil
		}
	}
	return "", ErrInvalidTransactionType.WithContext("type", value)
}

// String 返回類型字串
func (t TransactionType) String() string {
	return string(t)
}

// ===========================
// Date 帳本日期值對象
// ===========================

// Date 帳本日期（顯示曆法的 YYYY/MM/DD 字串）
//
// 日期以字串前綴比對：「YYYY/」選出整年，「YYYY/MM」選出整月。
// 因此格式必須嚴格補零，不轉換為 time.Time。
type Date struct {
	value string
}

// NewDate 建構函數（checked 版本）
func NewDate(value string) (Date, error) {
	if !shared.IsCalendarDate(value) {
		return Date{}, ErrInvalidDate.WithContext("date", value)
	}
	return Date{value: value}, nil
}

// String 返回日期字串
func (d Date) String() string {
	return d.value
}

// Year 返回年份部分
func (d Date) Year() Year {
	return Year{value: d.value[:4]}
}

// HasPrefix 日期是否落在指定前綴內
func (d Date) HasPrefix(prefix string) bool {
	return len(d.value) >= len(prefix) && d.value[:len(prefix)] == prefix
}

// ===========================
// Year 年份值對象
// ===========================

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// Year 4 位數年份
type Year struct {
	value string
}

// NewYear 建構函數（checked 版本），接受波斯數字
func NewYear(value string) (Year, error) {
	normalized := shared.NormalizeDigits(value)
	if !yearPattern.MatchString(normalized) {
		return Year{}, ErrInvalidYear.WithContext("year", value)
	}
	return Year{value: normalized}, nil
}

// String 返回年份字串
func (y Year) String() string {
	return y.value
}

// Int 返回年份數值
func (y Year) Int() int {
	n, _ := strconv.Atoi(y.value)
	return n
}

// IsZero 是否為零值
func (y Year) IsZero() bool {
	return y.value == ""
}

// Prefix 整年的日期前綴 "YYYY/"
func (y Year) Prefix() string {
	return y.value + "/"
}

// MonthPrefix 單月的日期前綴 "YYYY/MM"
func (y Year) MonthPrefix(month int) string {
	return fmt.Sprintf("%s/%02d", y.value, month)
}

// MonthDate 月彙總使用的日期 "YYYY/MM/01"
func (y Year) MonthDate(month int) Date {
	return Date{value: y.MonthPrefix(month) + "/01"}
}
