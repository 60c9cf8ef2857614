package ledger

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/shopspring/decimal"
)

// YearGridDescription 年度表格存檔產生的交易說明
const YearGridDescription = "year ledger entry"

// MonthsPerYear 年度表格列數
const MonthsPerYear = 12

// ===========================
// Totals 三種交易的合計
// ===========================

// Totals 依交易類型分別加總
type Totals struct {
	Membership  decimal.Decimal // 會費（membership_deposit）
	Loan        decimal.Decimal // 撥款（loan_disbursement）
	Installment decimal.Decimal // 還款（installment_payment）
}

// Add 依類型累加
func (t Totals) Add(txType TransactionType, amount decimal.Decimal) Totals {
	switch txType {
	case TypeMembershipDeposit:
		t.Membership = t.Membership.Add(amount)
	case TypeLoanDisbursement:
		t.Loan = t.Loan.Add(amount)
	case TypeInstallmentPayment:
		t.Installment = t.Installment.Add(amount)
	}
	return t
}

// Plus 兩組合計相加
func (t Totals) Plus(other Totals) Totals {
	return Totals{
		Membership:  t.Membership.Add(other.Membership),
		Loan:        t.Loan.Add(other.Loan),
		Installment: t.Installment.Add(other.Installment),
	}
}

// Get 取得指定類型的合計
func (t Totals) Get(txType TransactionType) decimal.Decimal {
	switch txType {
	case TypeMembershipDeposit:
		return t.Membership
	case TypeLoanDisbursement:
		return t.Loan
	case TypeInstallmentPayment:
		return t.Installment
	}
	return decimal.Zero
}

// Balance 撥款 − 還款（可為負，代表溢繳）
func (t Totals) Balance() decimal.Decimal {
	return t.Loan.Sub(t.Installment)
}

// Outstanding 未償債務 max(0, 撥款 − 還款)
func (t Totals) Outstanding() decimal.Decimal {
	return decimal.Max(decimal.Zero, t.Balance())
}

// Settled 是否已全部還清（曾有撥款且撥款等於還款）
func (t Totals) Settled() bool {
	return t.Loan.IsPositive() && t.Loan.Equal(t.Installment)
}

// ===========================
// YearGrid 年度 12 個月表格
// ===========================

// YearGrid 某會員某年度的 12 列表格，第 i 列為第 i+1 月
type YearGrid struct {
	Months [MonthsPerYear]Totals
}

// Validate 所有儲存格必須非負
func (g YearGrid) Validate() error {
	for i, row := range g.Months {
		for _, txType := range AllTransactionTypes {
			if row.Get(txType).IsNegative() {
				return ErrNegativeAmount.WithContext(
					"month", i+1,
					"type", string(txType),
					"amount", row.Get(txType).String(),
				)
			}
		}
	}
	return nil
}

// Total 全年合計
func (g YearGrid) Total() Totals {
	var total Totals
	for _, row := range g.Months {
		total = total.Plus(row)
	}
	return total
}

// LastInstallmentMonth 最後一個有還款的月份（1..12），沒有時返回 0
func (g YearGrid) LastInstallmentMonth() int {
	for i := MonthsPerYear - 1; i >= 0; i-- {
		if g.Months[i].Installment.IsPositive() {
			return i + 1
		}
	}
	return 0
}

// Transactions 將表格展開為交易
//
// 每個非零儲存格一筆交易，日期為 "YYYY/MM/01"。
// 使用者原本輸入的日（day-of-month）不保留。
func (g YearGrid) Transactions(memberID member.MemberID, year Year) ([]*Transaction, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	txs := make([]*Transaction, 0)
	for i, row := range g.Months {
		date := year.MonthDate(i + 1)
		for _, txType := range []TransactionType{TypeInstallmentPayment, TypeLoanDisbursement, TypeMembershipDeposit} {
			value := row.Get(txType)
			if value.IsZero() {
				continue
			}
			amount, err := NewAmount(value)
			if err != nil {
				return nil, err
			}
			tx, err := NewTransaction(memberID, date, amount, txType, YearGridDescription)
			if err != nil {
				return nil, err
			}
			txs = append(txs, tx)
		}
	}
	return txs, nil
}
