package loan

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"github.com/shopspring/decimal"
)

// LoanGORM 貸款資料表模型
//
// profit 欄位不存在：利潤固定為 0，由 Domain 計算。
type LoanGORM struct {
	LoanID         string          `gorm:"column:loan_id;type:varchar(36);primaryKey"`
	MemberID       string          `gorm:"column:member_id;type:varchar(36);not null;index"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null"`
	StartDate      string          `gorm:"column:start_date;type:varchar(10);not null"`
	EndDate        *string         `gorm:"column:end_date;type:varchar(10)"`
	Installments   int             `gorm:"column:installments;not null"`
	MonthlyPayment decimal.Decimal `gorm:"column:monthly_payment;type:decimal(20,2);not null"`
	Status         string          `gorm:"column:status;type:varchar(16);not null;index"`
	CreatedAt      time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (LoanGORM) TableName() string {
	return dbutil.TableLoans
}

func (m *LoanGORM) toDomain() (*loan.Loan, error) {
	id, err := loan.LoanIDFromString(m.LoanID)
	if err != nil {
		return nil, err
	}
	memberID, err := member.MemberIDFromString(m.MemberID)
	if err != nil {
		return nil, err
	}
	principal, err := ledger.NewAmount(m.Amount)
	if err != nil {
		return nil, err
	}
	payment, err := ledger.NewAmount(m.MonthlyPayment)
	if err != nil {
		return nil, err
	}
	startDate, err := ledger.NewDate(m.StartDate)
	if err != nil {
		return nil, err
	}
	status, err := loan.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}

	endDate := ""
	if m.EndDate != nil {
		endDate = *m.EndDate
	}

	return loan.ReconstructLoan(
		id,
		memberID,
		principal,
		startDate,
		endDate,
		m.Installments,
		payment,
		status,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toGORM(l *loan.Loan) *LoanGORM {
	var endDate *string
	if l.EndDate() != "" {
		value := l.EndDate()
		endDate = &value
	}
	return &LoanGORM{
		LoanID:         l.LoanID().String(),
		MemberID:       l.MemberID().String(),
		Amount:         l.Principal().Decimal(),
		StartDate:      l.StartDate().String(),
		EndDate:        endDate,
		Installments:   l.Installments(),
		MonthlyPayment: l.MonthlyPayment().Decimal(),
		Status:         string(l.Status()),
		CreatedAt:      l.CreatedAt(),
		UpdatedAt:      l.UpdatedAt(),
	}
}
