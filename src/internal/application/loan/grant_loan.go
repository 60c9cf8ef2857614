package loan

import (
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/application/accounting"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/locale"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultDisbursementDescription 撥款交易的預設說明
const DefaultDisbursementDescription = "وام"

// CapacityReader 讀取會員目前可貸額度
//
// accounting.GetLoanCapacityUseCase 實作此接口；讀取失敗時額度為 0。
type CapacityReader interface {
	Execute(memberID string) (*accounting.LoanCapacityResult, error)
}

// GrantLoanCommand 核發貸款指令
type GrantLoanCommand struct {
	MemberID       string
	Principal      string
	StartDate      string // YYYY/MM/DD（伊朗曆），空白為今天
	Installments   int
	MonthlyPayment string // 空白為 ceil(本金 / 期數)
	CheckCapacity  bool
	Description    string
}

// GrantLoanResult 核發結果
type GrantLoanResult struct {
	Loan          LoanDTO
	TransactionID string
}

// GrantLoanUseCase 核發貸款
//
// Loan 記錄與 loan_disbursement 交易在同一事務中寫入。
type GrantLoanUseCase interface {
	Execute(cmd GrantLoanCommand) (*GrantLoanResult, error)
}

// GrantLoanUseCaseImpl 核發貸款實作
type GrantLoanUseCaseImpl struct {
	memberRepo member.MemberRepository
	loanRepo   loan.LoanRepository
	txRepo     ledger.TransactionRepository
	capacity   CapacityReader
	txManager  shared.TransactionManager
	publisher  shared.EventPublisher
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewGrantLoanUseCase 創建 Use Case 實例
func NewGrantLoanUseCase(
	memberRepo member.MemberRepository,
	loanRepo loan.LoanRepository,
	txRepo ledger.TransactionRepository,
	capacity CapacityReader,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log logrus.FieldLogger,
) GrantLoanUseCase {
	return &GrantLoanUseCaseImpl{
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
		txRepo:     txRepo,
		capacity:   capacity,
		txManager:  txManager,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

// Execute 核發貸款
//
// 業務流程：
// 1. 驗證輸入並建立 Loan 聚合（本金 > 0、期數 > 0）
// 2. CheckCapacity 為 true 時，本金超過可貸額度 → loan.ErrExceedsCapacity
// 3. 事務中確認會員存在，寫入 Loan 與撥款交易
// 4. 發布 loan.granted 與 ledger.transaction_recorded
func (uc *GrantLoanUseCaseImpl) Execute(cmd GrantLoanCommand) (*GrantLoanResult, error) {
	// Step 1: 驗證輸入
	memberID, err := member.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, err
	}
	principal, err := ledger.ParseAmount(cmd.Principal)
	if err != nil {
		return nil, err
	}
	payment, err := ledger.ParseAmount(cmd.MonthlyPayment)
	if err != nil {
		return nil, err
	}
	startDate, err := uc.startDate(cmd.StartDate)
	if err != nil {
		return nil, err
	}

	newLoan, err := loan.NewLoan(memberID, principal, startDate, cmd.Installments, payment)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(cmd.Description)
	if description == "" {
		description = DefaultDisbursementDescription
	}
	disbursement, err := newLoan.DisbursementTransaction(description)
	if err != nil {
		return nil, err
	}

	// Step 2: 額度檢查
	// 在事務外讀取額度；同時送出的兩筆貸款可能都通過檢查（單一使用者，不加鎖）。
	if cmd.CheckCapacity {
		if err := uc.checkCapacity(cmd.MemberID, principal); err != nil {
			return nil, err
		}
	}

	// Step 3: 事務寫入
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if _, err := uc.memberRepo.FindByID(ctx, memberID); err != nil {
			return err
		}
		if err := uc.loanRepo.Save(ctx, newLoan); err != nil {
			return err
		}
		return uc.txRepo.Save(ctx, disbursement)
	})
	if err != nil {
		return nil, err
	}

	// Step 4: 發布事件
	events := append(newLoan.PullEvents(), ledger.NewTransactionRecordedEvent(disbursement))
	if err := uc.publisher.PublishBatch(events); err != nil {
		uc.log.WithError(err).Warn("publish loan granted events failed")
	}

	uc.log.WithFields(logrus.Fields{
		"member_id": cmd.MemberID,
		"loan_id":   newLoan.LoanID().String(),
		"principal": principal.String(),
	}).Info("loan granted")

	return &GrantLoanResult{
		Loan:          toLoanDTO(newLoan),
		TransactionID: disbursement.TransactionID().String(),
	}, nil
}

func (uc *GrantLoanUseCaseImpl) startDate(value string) (ledger.Date, error) {
	if strings.TrimSpace(value) == "" {
		return ledger.NewDate(locale.TodayJalali(uc.now()).String())
	}
	return ledger.NewDate(value)
}

func (uc *GrantLoanUseCaseImpl) checkCapacity(memberID string, principal ledger.Amount) error {
	result, err := uc.capacity.Execute(memberID)
	if err != nil {
		return err
	}
	if principal.Decimal().GreaterThan(decimal.NewFromInt(result.Capacity)) {
		return loan.ErrExceedsCapacity.WithContext(
			"principal", principal.String(),
			"capacity", result.Capacity,
		)
	}
	return nil
}
