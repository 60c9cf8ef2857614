package loan

import (
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/locale"
	"github.com/sirupsen/logrus"
)

// SettleLoanCommand 結清指令；EndDate 空白為今天（伊朗曆）
type SettleLoanCommand struct {
	LoanID  string
	EndDate string
}

// SettleLoanUseCase 結清貸款
//
// 只改變 Loan 記錄狀態，不寫入帳本交易。
type SettleLoanUseCase interface {
	Execute(cmd SettleLoanCommand) (*LoanDTO, error)
}

// SettleLoanUseCaseImpl 結清貸款實作
type SettleLoanUseCaseImpl struct {
	loanRepo  loan.LoanRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewSettleLoanUseCase 創建 Use Case 實例
func NewSettleLoanUseCase(
	loanRepo loan.LoanRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log logrus.FieldLogger,
) SettleLoanUseCase {
	return &SettleLoanUseCaseImpl{
		loanRepo:  loanRepo,
		txManager: txManager,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Execute 結清；已結清 → loan.ErrAlreadySettled
func (uc *SettleLoanUseCaseImpl) Execute(cmd SettleLoanCommand) (*LoanDTO, error) {
	loanID, err := loan.LoanIDFromString(cmd.LoanID)
	if err != nil {
		return nil, err
	}

	value := strings.TrimSpace(cmd.EndDate)
	if value == "" {
		value = locale.TodayJalali(uc.now()).String()
	}
	endDate, err := ledger.NewDate(value)
	if err != nil {
		return nil, err
	}

	var settled *loan.Loan
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		l, err := uc.loanRepo.FindByID(ctx, loanID)
		if err != nil {
			return err
		}
		if err := l.Settle(endDate); err != nil {
			return err
		}
		settled = l
		return uc.loanRepo.Update(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.publisher.PublishBatch(settled.PullEvents()); err != nil {
		uc.log.WithError(err).Warn("publish loan settled event failed")
	}
	uc.log.WithFields(logrus.Fields{
		"loan_id":  cmd.LoanID,
		"end_date": endDate.String(),
	}).Info("loan settled")

	dto := toLoanDTO(settled)
	return &dto, nil
}
