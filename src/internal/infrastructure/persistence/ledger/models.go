package ledger

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"github.com/shopspring/decimal"
)

// TransactionGORM 帳本交易資料表模型
//
// 索引 (member_id, date) 支援「會員 + 日期前綴」的刪除與加總。
type TransactionGORM struct {
	TransactionID string          `gorm:"column:transaction_id;type:varchar(36);primaryKey"`
	MemberID      string          `gorm:"column:member_id;type:varchar(36);not null;index:idx_transactions_member_date,priority:1"`
	Date          string          `gorm:"column:date;type:varchar(10);not null;index:idx_transactions_member_date,priority:2"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null"`
	Type          string          `gorm:"column:type;type:varchar(32);not null"`
	Description   string          `gorm:"column:description;type:varchar(255)"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null"`
}

// TableName 指定資料表名稱
func (TransactionGORM) TableName() string {
	return dbutil.TableTransactions
}

func (m *TransactionGORM) toDomain() (*ledger.Transaction, error) {
	id, err := ledger.TransactionIDFromString(m.TransactionID)
	if err != nil {
		return nil, err
	}
	memberID, err := member.MemberIDFromString(m.MemberID)
	if err != nil {
		return nil, err
	}
	date, err := ledger.NewDate(m.Date)
	if err != nil {
		return nil, err
	}
	amount, err := ledger.NewAmount(m.Amount)
	if err != nil {
		return nil, err
	}
	txType, err := ledger.ParseTransactionType(m.Type)
	if err != nil {
		return nil, err
	}
	return ledger.ReconstructTransaction(id, memberID, date, amount, txType, m.Description, m.CreatedAt), nil
}

func toGORM(tx *ledger.Transaction) *TransactionGORM {
	return &TransactionGORM{
		TransactionID: tx.TransactionID().String(),
		MemberID:      tx.MemberID().String(),
		Date:          tx.Date().String(),
		Amount:        tx.Amount().Decimal(),
		Type:          tx.Type().String(),
		Description:   tx.Description(),
		CreatedAt:     tx.CreatedAt(),
	}
}

// typeTotal GROUP BY type 的查詢結果列
type typeTotal struct {
	MemberID string
	Date     string
	Type     string
	Total    decimal.Decimal
}
