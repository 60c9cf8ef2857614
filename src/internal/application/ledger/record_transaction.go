// Package ledger 單筆帳本交易的 Use Case
//
// 撥款交易只由核發貸款寫入；此處只接受會費與還款。
package ledger

import (
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/locale"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TransactionDTO 交易資料傳輸對象
type TransactionDTO struct {
	TransactionID string
	MemberID      string
	Date          string
	Amount        decimal.Decimal
	Type          string
	Description   string
	CreatedAt     time.Time
}

func toTransactionDTO(tx *ledger.Transaction) TransactionDTO {
	return TransactionDTO{
		TransactionID: tx.TransactionID().String(),
		MemberID:      tx.MemberID().String(),
		Date:          tx.Date().String(),
		Amount:        tx.Amount().Decimal(),
		Type:          tx.Type().String(),
		Description:   tx.Description(),
		CreatedAt:     tx.CreatedAt(),
	}
}

// RecordTransactionCommand 記錄單筆交易指令
type RecordTransactionCommand struct {
	MemberID    string
	Type        string // membership_deposit | installment_payment
	Amount      string
	Date        string // YYYY/MM/DD（伊朗曆），空白為今天
	Description string
}

// RecordTransactionUseCase 記錄單筆會費或還款
type RecordTransactionUseCase interface {
	Execute(cmd RecordTransactionCommand) (*TransactionDTO, error)
}

// RecordTransactionUseCaseImpl 記錄交易實作
type RecordTransactionUseCaseImpl struct {
	memberRepo member.MemberRepository
	txRepo     ledger.TransactionRepository
	txManager  shared.TransactionManager
	publisher  shared.EventPublisher
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewRecordTransactionUseCase 創建 Use Case 實例
func NewRecordTransactionUseCase(
	memberRepo member.MemberRepository,
	txRepo ledger.TransactionRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log logrus.FieldLogger,
) RecordTransactionUseCase {
	return &RecordTransactionUseCaseImpl{
		memberRepo: memberRepo,
		txRepo:     txRepo,
		txManager:  txManager,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

// Execute 記錄交易
//
// 錯誤處理：
// - 類型為 loan_disbursement 或未知 → ledger.ErrInvalidTransactionType
// - 金額為負 / 無法解析 → ledger.ErrNegativeAmount / ErrInvalidAmount
// - 日期格式錯誤 → ledger.ErrInvalidDate
// - 會員不存在 → member.ErrMemberNotFound
func (uc *RecordTransactionUseCaseImpl) Execute(cmd RecordTransactionCommand) (*TransactionDTO, error) {
	memberID, err := member.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, err
	}

	txType, err := ledger.ParseTransactionType(strings.TrimSpace(cmd.Type))
	if err != nil {
		return nil, err
	}
	if txType == ledger.TypeLoanDisbursement {
		return nil, ledger.ErrInvalidTransactionType.WithContext("type", cmd.Type, "reason", "use loan grant")
	}

	amount, err := ledger.ParseAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	dateValue := strings.TrimSpace(cmd.Date)
	if dateValue == "" {
		dateValue = locale.TodayJalali(uc.now()).String()
	}
	date, err := ledger.NewDate(dateValue)
	if err != nil {
		return nil, err
	}

	tx, err := ledger.NewTransaction(memberID, date, amount, txType, strings.TrimSpace(cmd.Description))
	if err != nil {
		return nil, err
	}

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if _, err := uc.memberRepo.FindByID(ctx, memberID); err != nil {
			return err
		}
		return uc.txRepo.Save(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.publisher.Publish(ledger.NewTransactionRecordedEvent(tx)); err != nil {
		uc.log.WithError(err).Warn("publish transaction recorded event failed")
	}
	uc.log.WithFields(logrus.Fields{
		"member_id": cmd.MemberID,
		"type":      txType.String(),
		"amount":    amount.String(),
		"date":      date.String(),
	}).Info("transaction recorded")

	dto := toTransactionDTO(tx)
	return &dto, nil
}

// ListTransactionsQuery DatePrefix 為 "YYYY/"、"YYYY/MM" 等前綴，空白為全部
type ListTransactionsQuery struct {
	MemberID   string
	DatePrefix string
}

// ListTransactionsUseCase 列出會員交易
type ListTransactionsUseCase struct {
	txRepo ledger.TransactionRepository
}

// NewListTransactionsUseCase 創建 Use Case 實例
func NewListTransactionsUseCase(txRepo ledger.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{txRepo: txRepo}
}

// Execute 依日期與建立時間排序列出
func (uc *ListTransactionsUseCase) Execute(query ListTransactionsQuery) ([]TransactionDTO, error) {
	memberID, err := member.MemberIDFromString(query.MemberID)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.ListByMember(nil, memberID, shared.NormalizeDigits(query.DatePrefix))
	if err != nil {
		return nil, err
	}

	dtos := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		dtos = append(dtos, toTransactionDTO(tx))
	}
	return dtos, nil
}
