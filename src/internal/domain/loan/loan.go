package loan

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// LoanID
// ===========================

// LoanMarker 貸款 ID 標記類型
type LoanMarker struct{}

// LoanID 貸款 ID 值對象
type LoanID = shared.EntityID[LoanMarker]

// NewLoanID 生成新的貸款 ID
func NewLoanID() LoanID {
	return shared.NewEntityID[LoanMarker]()
}

// LoanIDFromString 從字串解析貸款 ID
func LoanIDFromString(value string) (LoanID, error) {
	return shared.EntityIDFromString[LoanMarker](value, ErrInvalidLoanID)
}

// ===========================
// Status
// ===========================

// Status 貸款狀態
type Status string

const (
	StatusActive  Status = "active"
	StatusSettled Status = "settled"
)

// ParseStatus 解析貸款狀態
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusActive, StatusSettled:
		return Status(value), nil
	}
	return "", ErrInvalidStatus.WithContext("status", value)
}

// ===========================
// Loan Aggregate Root
// ===========================

// Loan 貸款聚合根
//
// 與帳本的關係：
// - 可貸額度計算只讀取 status = active 的 Loan 本金
// - 報表與餘額由帳本交易（loan_disbursement / installment_payment）重新推導
// - 兩者允許不一致；差異反映在基金報表的 balanceDiff，不自動對帳
//
// 不變量：
// 1. 本金 > 0
// 2. 期數 > 0
// 3. 利潤固定為 0（無利息計算）
// 4. 只有 active 可以結清；結清後不可回到 active
type Loan struct {
	loanID         LoanID
	memberID       member.MemberID
	principal      ledger.Amount
	startDate      ledger.Date
	endDate        string
	installments   int
	monthlyPayment ledger.Amount
	status         Status

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewLoan 建立新貸款
//
// monthlyPayment 為零值時預設為 ceil(本金 / 期數)。
func NewLoan(
	memberID member.MemberID,
	principal ledger.Amount,
	startDate ledger.Date,
	installments int,
	monthlyPayment ledger.Amount,
) (*Loan, error) {
	if memberID.IsEmpty() {
		return nil, member.ErrInvalidMemberID
	}
	if !principal.Decimal().IsPositive() {
		return nil, ErrInvalidPrincipal.WithContext("principal", principal.String())
	}
	if installments <= 0 {
		return nil, ErrInvalidInstallments.WithContext("installments", installments)
	}
	if startDate.String() == "" {
		return nil, ledger.ErrInvalidDate
	}
	if monthlyPayment.IsZero() {
		monthlyPayment = DefaultMonthlyPayment(principal, installments)
	}

	now := time.Now()
	l := &Loan{
		loanID:         NewLoanID(),
		memberID:       memberID,
		principal:      principal,
		startDate:      startDate,
		installments:   installments,
		monthlyPayment: monthlyPayment,
		status:         StatusActive,
		createdAt:      now,
		updatedAt:      now,
	}
	l.addEvent(NewLoanGrantedEvent(l))
	return l, nil
}

// ReconstructLoan 重建貸款（用於從資料庫載入）
func ReconstructLoan(
	loanID LoanID,
	memberID member.MemberID,
	principal ledger.Amount,
	startDate ledger.Date,
	endDate string,
	installments int,
	monthlyPayment ledger.Amount,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) *Loan {
	return &Loan{
		loanID:         loanID,
		memberID:       memberID,
		principal:      principal,
		startDate:      startDate,
		endDate:        endDate,
		installments:   installments,
		monthlyPayment: monthlyPayment,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// DefaultMonthlyPayment ceil(本金 / 期數)
func DefaultMonthlyPayment(principal ledger.Amount, installments int) ledger.Amount {
	if installments <= 0 {
		return principal
	}
	payment := principal.Decimal().Div(decimal.NewFromInt(int64(installments))).Ceil()
	amount, _ := ledger.NewAmount(payment)
	return amount
}

// Profit 利潤（固定為 0）
func (l *Loan) Profit() decimal.Decimal {
	return decimal.Zero
}

// Settle 結清貸款
func (l *Loan) Settle(endDate ledger.Date) error {
	if l.status == StatusSettled {
		return ErrAlreadySettled.WithContext("loan_id", l.loanID.String())
	}
	l.status = StatusSettled
	l.endDate = endDate.String()
	l.updatedAt = time.Now()
	l.addEvent(NewLoanSettledEvent(l))
	return nil
}

// DisbursementTransaction 對應的帳本撥款交易
func (l *Loan) DisbursementTransaction(description string) (*ledger.Transaction, error) {
	return ledger.NewTransaction(l.memberID, l.startDate, l.principal, ledger.TypeLoanDisbursement, description)
}

// ===========================
// 事件管理
// ===========================

func (l *Loan) addEvent(event shared.DomainEvent) {
	l.events = append(l.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
func (l *Loan) PullEvents() []shared.DomainEvent {
	events := l.events
	l.events = nil
	return events
}

// ===========================
// Getters
// ===========================

// LoanID 返回貸款 ID
func (l *Loan) LoanID() LoanID { return l.loanID }

// MemberID 返回借款會員
func (l *Loan) MemberID() member.MemberID { return l.memberID }

// Principal 返回本金
func (l *Loan) Principal() ledger.Amount { return l.principal }

// StartDate 返回撥款日期
func (l *Loan) StartDate() ledger.Date { return l.startDate }

// EndDate 返回結清日期（未結清為空字串）
func (l *Loan) EndDate() string { return l.endDate }

// Installments 返回期數
func (l *Loan) Installments() int { return l.installments }

// MonthlyPayment 返回每期金額
func (l *Loan) MonthlyPayment() ledger.Amount { return l.monthlyPayment }

// Status 返回狀態
func (l *Loan) Status() Status { return l.status }

// IsActive 是否仍在還款中
func (l *Loan) IsActive() bool { return l.status == StatusActive }

// CreatedAt 返回建立時間
func (l *Loan) CreatedAt() time.Time { return l.createdAt }

// UpdatedAt 返回更新時間
func (l *Loan) UpdatedAt() time.Time { return l.updatedAt }
