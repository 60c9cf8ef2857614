package loan

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/shopspring/decimal"
)

// LoanDTO 貸款資料傳輸對象
type LoanDTO struct {
	LoanID         string
	MemberID       string
	Principal      decimal.Decimal
	StartDate      string
	EndDate        string
	Installments   int
	MonthlyPayment decimal.Decimal
	Profit         decimal.Decimal
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func toLoanDTO(l *loan.Loan) LoanDTO {
	return LoanDTO{
		LoanID:         l.LoanID().String(),
		MemberID:       l.MemberID().String(),
		Principal:      l.Principal().Decimal(),
		StartDate:      l.StartDate().String(),
		EndDate:        l.EndDate(),
		Installments:   l.Installments(),
		MonthlyPayment: l.MonthlyPayment().Decimal(),
		Profit:         l.Profit(),
		Status:         string(l.Status()),
		CreatedAt:      l.CreatedAt(),
		UpdatedAt:      l.UpdatedAt(),
	}
}
