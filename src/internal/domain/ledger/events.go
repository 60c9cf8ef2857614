package ledger

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// YearReplacedEvent 年度帳本被整批覆寫
type YearReplacedEvent struct {
	shared.BaseEvent
	year     string
	removed  int64
	inserted int
	balance  decimal.Decimal
}

// NewYearReplacedEvent 創建年度覆寫事件
func NewYearReplacedEvent(memberID member.MemberID, year Year, removed int64, inserted int, balance decimal.Decimal) *YearReplacedEvent {
	return &YearReplacedEvent{
		BaseEvent: shared.NewBaseEvent(memberID.String()),
		year:      year.String(),
		removed:   removed,
		inserted:  inserted,
		balance:   balance,
	}
}

// EventType 實現 DomainEvent 介面
func (e *YearReplacedEvent) EventType() string {
	return "ledger.year_replaced"
}

// Year 被覆寫的年份
func (e *YearReplacedEvent) Year() string { return e.year }

// Removed 刪除的交易筆數
func (e *YearReplacedEvent) Removed() int64 { return e.removed }

// Inserted 新增的交易筆數
func (e *YearReplacedEvent) Inserted() int { return e.inserted }

// Balance 存檔後的全期餘額（撥款 − 還款）
func (e *YearReplacedEvent) Balance() decimal.Decimal { return e.balance }

// TransactionRecordedEvent 單筆交易記錄
type TransactionRecordedEvent struct {
	shared.BaseEvent
	txType TransactionType
	amount Amount
	date   string
}

// NewTransactionRecordedEvent 創建交易記錄事件
func NewTransactionRecordedEvent(tx *Transaction) *TransactionRecordedEvent {
	return &TransactionRecordedEvent{
		BaseEvent: shared.NewBaseEvent(tx.MemberID().String()),
		txType:    tx.Type(),
		amount:    tx.Amount(),
		date:      tx.Date().String(),
	}
}

// EventType 實現 DomainEvent 介面
func (e *TransactionRecordedEvent) EventType() string {
	return "ledger.transaction_recorded"
}

// TransactionType 交易類型
func (e *TransactionRecordedEvent) TransactionType() TransactionType { return e.txType }

// Amount 金額
func (e *TransactionRecordedEvent) Amount() Amount { return e.amount }

// Date 日期
func (e *TransactionRecordedEvent) Date() string { return e.date }
