package fund

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// 設定鍵
// ===========================

const (
	KeySharePrice          = "share_price"
	KeyMonthlyIncrease     = "monthly_increase"
	KeyLoanFactor          = "loan_factor"
	KeySharePriceStartDate = "share_price_start_date"
	KeyFundBalance         = "fund_balance"
	KeyBackupEnabled       = "backup_enabled"
)

// StartDateLayout share_price_start_date 的格式（西曆）
const StartDateLayout = "2006/01/02"

// 預設值
var (
	DefaultSharePrice      = decimal.NewFromInt(2000000)
	DefaultMonthlyIncrease = decimal.Zero
	DefaultLoanFactor      = decimal.NewFromInt(2)
)

// BalanceSnapshotKey 會員年度餘額快照的設定鍵
func BalanceSnapshotKey(memberID, year string) string {
	return fmt.Sprintf("balance_%s_%s", memberID, year)
}

// LastYearKey 會員最後檢視年份的設定鍵
func LastYearKey(memberID string) string {
	return fmt.Sprintf("last_year_member_%s", memberID)
}

// Setting 單一設定列
type Setting struct {
	Key         string
	Value       string
	Description string
}

// DefaultSettings 首次開啟資料庫時寫入的設定
func DefaultSettings() []Setting {
	return []Setting{
		{KeySharePrice, "2000000", "قیمت پایه سهام"},
		{KeyMonthlyIncrease, "0", "افزایش ماهانه سهام"},
		{KeyLoanFactor, "2", "ضریب وام"},
		{KeySharePriceStartDate, "", "تاریخ شروع قیمت سهام"},
		{KeyFundBalance, "0", "موجودی صندوق"},
		{KeyBackupEnabled, "1", "پشتیبان‌گیری خودکار"},
	}
}

// ===========================
// Settings 不可變設定快照
// ===========================

// Settings 基金設定快照
//
// 每個操作開始時載入一次，整個操作期間不變；
// 不同會員的計算因此使用相同的價格假設。
//
// 所有欄位在 ParseSettings 時已套用預設值，計算函數不再自行回退。
type Settings struct {
	sharePrice      decimal.Decimal
	monthlyIncrease decimal.Decimal
	loanFactor      decimal.Decimal
	startDate       time.Time
	hasStartDate    bool
	fundBalance     decimal.Decimal
	backupEnabled   bool
}

// ParseSettings 從原始字串設定建立快照
//
// 規則（格式錯誤或缺少 → 預設值，不返回錯誤）：
// - share_price: 向下取整，必須 >= 0，否則 2,000,000（0 表示不計股數）
// - monthly_increase: 必須 >= 0，否則 0
// - loan_factor: 必須 > 0，否則 2
// - share_price_start_date: 西曆 YYYY/MM/DD，否則視為未設定
// - fund_balance: 任意數字，否則 0
// - backup_enabled: "0" 以外皆視為啟用
func ParseSettings(raw map[string]string) Settings {
	s := Settings{
		sharePrice:      DefaultSharePrice,
		monthlyIncrease: DefaultMonthlyIncrease,
		loanFactor:      DefaultLoanFactor,
		fundBalance:     decimal.Zero,
		backupEnabled:   true,
	}

	if v, ok := parseDecimal(raw[KeySharePrice]); ok && !v.Floor().IsNegative() {
		s.sharePrice = v.Floor()
	}
	if v, ok := parseDecimal(raw[KeyMonthlyIncrease]); ok && !v.IsNegative() {
		s.monthlyIncrease = v
	}
	if v, ok := parseDecimal(raw[KeyLoanFactor]); ok && v.IsPositive() {
		s.loanFactor = v
	}
	if start, ok := ParseStartDate(raw[KeySharePriceStartDate]); ok {
		s.startDate = start
		s.hasStartDate = true
	}
	if v, ok := parseDecimal(raw[KeyFundBalance]); ok {
		s.fundBalance = v
	}
	if strings.TrimSpace(raw[KeyBackupEnabled]) == "0" {
		s.backupEnabled = false
	}
	return s
}

// ParseStartDate 嚴格解析 YYYY/MM/DD 西曆日期
func ParseStartDate(value string) (time.Time, bool) {
	value = shared.NormalizeDigits(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(StartDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseDecimal(value string) (decimal.Decimal, bool) {
	normalized := shared.NormalizeDigits(value)
	if normalized == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// SharePrice 基準股價（整數）
func (s Settings) SharePrice() decimal.Decimal { return s.sharePrice }

// MonthlyIncrease 每月漲幅
func (s Settings) MonthlyIncrease() decimal.Decimal { return s.monthlyIncrease }

// LoanFactor 可貸倍數
func (s Settings) LoanFactor() decimal.Decimal { return s.loanFactor }

// StartDate 漲價起算日；未設定時 ok 為 false
func (s Settings) StartDate() (time.Time, bool) { return s.startDate, s.hasStartDate }

// FundBalance 銀行存款合計
func (s Settings) FundBalance() decimal.Decimal { return s.fundBalance }

// BackupEnabled 是否啟用自動備份
func (s Settings) BackupEnabled() bool { return s.backupEnabled }

// ===========================
// 設定更新（驗證路徑）
// ===========================

// SettingsUpdate 股價設定更新輸入（使用者原始字串）
type SettingsUpdate struct {
	SharePrice      string
	MonthlyIncrease string
	LoanFactor      string
	StartDate       string
}

// ValidateSettingsUpdate 驗證股價設定並返回要寫入的設定列
//
// 規則：
// - 空欄位使用預設值（股價 2,000,000、漲幅 0、倍數 2）
// - 股價 > 0、漲幅 >= 0、倍數 > 0
// - 起算日必須是西曆 YYYY/MM/DD；空白時使用 today
//
// 違反規則 → ErrInvalidSettings（附帶 field）。
func ValidateSettingsUpdate(in SettingsUpdate, today time.Time) ([]Setting, error) {
	price, err := requireDecimal(in.SharePrice, DefaultSharePrice, KeySharePrice)
	if err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, ErrInvalidSettings.WithContext("field", KeySharePrice, "reason", "must be positive")
	}

	increase, err := requireDecimal(in.MonthlyIncrease, DefaultMonthlyIncrease, KeyMonthlyIncrease)
	if err != nil {
		return nil, err
	}
	if increase.IsNegative() {
		return nil, ErrInvalidSettings.WithContext("field", KeyMonthlyIncrease, "reason", "must not be negative")
	}

	factor, err := requireDecimal(in.LoanFactor, DefaultLoanFactor, KeyLoanFactor)
	if err != nil {
		return nil, err
	}
	if !factor.IsPositive() {
		return nil, ErrInvalidSettings.WithContext("field", KeyLoanFactor, "reason", "must be positive")
	}

	startDate := strings.TrimSpace(in.StartDate)
	if startDate == "" {
		startDate = today.Format(StartDateLayout)
	} else {
		parsed, ok := ParseStartDate(startDate)
		if !ok {
			return nil, ErrInvalidSettings.WithContext("field", KeySharePriceStartDate, "value", in.StartDate)
		}
		startDate = parsed.Format(StartDateLayout)
	}

	return []Setting{
		{KeySharePrice, price.String(), "قیمت پایه سهام"},
		{KeyMonthlyIncrease, increase.String(), "افزایش ماهانه سهام"},
		{KeyLoanFactor, factor.String(), "ضریب وام"},
		{KeySharePriceStartDate, startDate, "تاریخ شروع قیمت سهام"},
	}, nil
}

func requireDecimal(value string, fallback decimal.Decimal, field string) (decimal.Decimal, error) {
	if shared.NormalizeDigits(value) == "" {
		return fallback, nil
	}
	d, ok := parseDecimal(value)
	if !ok {
		return decimal.Zero, ErrInvalidSettings.WithContext("field", field, "value", value)
	}
	return d, nil
}
