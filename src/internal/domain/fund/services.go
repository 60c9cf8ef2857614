package fund

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// ===========================
// 股價 / 股數 / 可貸額度 領域服務
// ===========================
//
// 皆為無狀態純函數：所有資料由參數傳入，不讀取倉儲。

// CurrentSharePrice 計算目前股價
//
// 規則：
// - 未設定起算日 → 基準股價
// - monthsPassed = (今年 − 起算年) × 12 + (本月 − 起算月)，忽略日
// - price = floor(基準 + 漲幅 × monthsPassed)，且不低於基準
//
// 起算日在未來時 monthsPassed 為負，結果被夾回基準股價。
func CurrentSharePrice(s Settings, now time.Time) int64 {
	base := s.SharePrice()
	start, ok := s.StartDate()
	if !ok {
		return base.IntPart()
	}

	monthsPassed := MonthsBetween(start, now)
	price := base.Add(s.MonthlyIncrease().Mul(decimal.NewFromInt(int64(monthsPassed)))).Floor()
	if price.LessThan(base) {
		price = base
	}
	return price.IntPart()
}

// MonthsBetween 兩日期間經過的月數（只看年與月欄位）
func MonthsBetween(start, now time.Time) int {
	return (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
}

// Shares 會員股數與投資總額
type Shares struct {
	Count         int64
	TotalInvested decimal.Decimal
}

// CalculateShares 計算股數
//
// shareCount = floor(totalInvested / price)；未滿一股的部分只算投資不算股數。
// price <= 0 時返回 (0, 0)。
func CalculateShares(totalInvested decimal.Decimal, price int64) Shares {
	if price <= 0 {
		return Shares{TotalInvested: decimal.Zero}
	}
	invested := totalInvested.Floor()
	if invested.IsNegative() {
		invested = decimal.Zero
	}
	count := invested.Div(decimal.NewFromInt(price)).Floor().IntPart()
	return Shares{Count: count, TotalInvested: invested}
}

// CalculateLoanCapacity 計算可貸額度
//
// max(0, floor(股數 × 股價 × 倍數 − active 貸款本金))
func CalculateLoanCapacity(shareCount int64, price int64, factor decimal.Decimal, activePrincipal decimal.Decimal) int64 {
	maxLoan := decimal.NewFromInt(shareCount).
		Mul(decimal.NewFromInt(price)).
		Mul(factor)
	capacity := maxLoan.Sub(activePrincipal).Floor()
	if capacity.IsNegative() {
		return 0
	}
	return capacity.IntPart()
}

// ===========================
// 報表彙總
// ===========================

// MemberSummary 單一會員彙總
type MemberSummary struct {
	Asset     decimal.Decimal // 會費合計
	LoanDrawn decimal.Decimal // 撥款合計
	Paid      decimal.Decimal // 還款合計
}

// NewMemberSummary 由帳本合計建立
func NewMemberSummary(t ledger.Totals) MemberSummary {
	return MemberSummary{Asset: t.Membership, LoanDrawn: t.Loan, Paid: t.Installment}
}

// Debt 未償債務 max(0, 撥款 − 還款)
func (m MemberSummary) Debt() decimal.Decimal {
	return decimal.Max(decimal.Zero, m.LoanDrawn.Sub(m.Paid))
}

// FundReport 基金總表
//
// TotalDebt = TotalLoans − TotalPaid（不逐人截零，溢繳會抵減）。
// BalanceDiff = TotalDebt − TotalAsset − FundBalance，僅供對帳參考，非零不是錯誤。
type FundReport struct {
	TotalAsset  decimal.Decimal
	TotalLoans  decimal.Decimal
	TotalPaid   decimal.Decimal
	TotalDebt   decimal.Decimal
	FundBalance decimal.Decimal
	BalanceDiff decimal.Decimal
}

// BuildFundReport 彙總所有會員並計算對帳差額
func BuildFundReport(members []MemberSummary, fundBalance decimal.Decimal) FundReport {
	r := FundReport{
		TotalAsset:  decimal.Zero,
		TotalLoans:  decimal.Zero,
		TotalPaid:   decimal.Zero,
		FundBalance: fundBalance,
	}
	for _, m := range members {
		r.TotalAsset = r.TotalAsset.Add(m.Asset)
		r.TotalLoans = r.TotalLoans.Add(m.LoanDrawn)
		r.TotalPaid = r.TotalPaid.Add(m.Paid)
	}
	r.TotalDebt = r.TotalLoans.Sub(r.TotalPaid)
	r.BalanceDiff = r.TotalDebt.Sub(r.TotalAsset).Sub(fundBalance)
	return r
}
