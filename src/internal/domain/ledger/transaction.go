package ledger

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// TransactionID
// ===========================

// TransactionMarker 交易 ID 標記類型
type TransactionMarker struct{}

// TransactionID 交易 ID 值對象
type TransactionID = shared.EntityID[TransactionMarker]

// NewTransactionID 生成新的交易 ID
func NewTransactionID() TransactionID {
	return shared.NewEntityID[TransactionMarker]()
}

// TransactionIDFromString 從字串解析交易 ID
func TransactionIDFromString(value string) (TransactionID, error) {
	return shared.EntityIDFromString[TransactionMarker](value, ErrInvalidTransactionID)
}

// ===========================
// Transaction Entity
// ===========================

// Transaction 帳本交易（記錄後不可修改）
//
// 不變量：
// 1. 金額 >= 0（Amount 值對象保證）
// 2. 類型為三種之一（TransactionType 保證）
// 3. 日期為補零的 YYYY/MM/DD（Date 值對象保證）
//
// 生命週期：新增後只會被整批刪除（年度重存或會員刪除），不會原地更新。
type Transaction struct {
	transactionID TransactionID
	memberID      member.MemberID
	date          Date
	amount        Amount
	txType        TransactionType
	description   string
	createdAt     time.Time
}

// NewTransaction 建立新交易
func NewTransaction(
	memberID member.MemberID,
	date Date,
	amount Amount,
	txType TransactionType,
	description string,
) (*Transaction, error) {
	if memberID.IsEmpty() {
		return nil, member.ErrInvalidMemberID
	}
	if date.value == "" {
		return nil, ErrInvalidDate
	}
	if _, err := ParseTransactionType(string(txType)); err != nil {
		return nil, err
	}

	return &Transaction{
		transactionID: NewTransactionID(),
		memberID:      memberID,
		date:          date,
		amount:        amount,
		txType:        txType,
		description:   description,
		createdAt:     time.Now(),
	}, nil
}

// ReconstructTransaction 重建交易（用於從資料庫載入）
func ReconstructTransaction(
	transactionID TransactionID,
	memberID member.MemberID,
	date Date,
	amount Amount,
	txType TransactionType,
	description string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		transactionID: transactionID,
		memberID:      memberID,
		date:          date,
		amount:        amount,
		txType:        txType,
		description:   description,
		createdAt:     createdAt,
	}
}

// TransactionID 返回交易 ID
func (t *Transaction) TransactionID() TransactionID { return t.transactionID }

// MemberID 返回所屬會員
func (t *Transaction) MemberID() member.MemberID { return t.memberID }

// Date 返回日期
func (t *Transaction) Date() Date { return t.date }

// Amount 返回金額
func (t *Transaction) Amount() Amount { return t.amount }

// Type 返回交易類型
func (t *Transaction) Type() TransactionType { return t.txType }

// Description 返回說明
func (t *Transaction) Description() string { return t.description }

// CreatedAt 返回建立時間
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
