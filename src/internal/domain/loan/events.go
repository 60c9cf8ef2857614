package loan

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// LoanGrantedEvent 貸款核發事件
type LoanGrantedEvent struct {
	shared.BaseEvent
	memberID  string
	principal string
}

// NewLoanGrantedEvent 創建貸款核發事件
func NewLoanGrantedEvent(l *Loan) *LoanGrantedEvent {
	return &LoanGrantedEvent{
		BaseEvent: shared.NewBaseEvent(l.LoanID().String()),
		memberID:  l.MemberID().String(),
		principal: l.Principal().String(),
	}
}

// EventType 實現 DomainEvent 介面
func (e *LoanGrantedEvent) EventType() string { return "loan.granted" }

// MemberID 借款會員
func (e *LoanGrantedEvent) MemberID() string { return e.memberID }

// Principal 本金
func (e *LoanGrantedEvent) Principal() string { return e.principal }

// LoanSettledEvent 貸款結清事件
type LoanSettledEvent struct {
	shared.BaseEvent
	memberID string
	endDate  string
}

// NewLoanSettledEvent 創建貸款結清事件
func NewLoanSettledEvent(l *Loan) *LoanSettledEvent {
	return &LoanSettledEvent{
		BaseEvent: shared.NewBaseEvent(l.LoanID().String()),
		memberID:  l.MemberID().String(),
		endDate:   l.EndDate(),
	}
}

// EventType 實現 DomainEvent 介面
func (e *LoanSettledEvent) EventType() string { return "loan.settled" }

// MemberID 借款會員
func (e *LoanSettledEvent) MemberID() string { return e.memberID }

// EndDate 結清日期
func (e *LoanSettledEvent) EndDate() string { return e.endDate }
