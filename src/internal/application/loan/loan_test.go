package loan

import (
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/application/accounting"
	"github.com/jackyeh168/qarz_fund/src/internal/application/mocks"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===========================
// 測試輔助
// ===========================

// 伊朗曆 1404/04/11
var fixedNow = time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)

type stubCapacity struct {
	capacity int64
	calls    int
}

func (s *stubCapacity) Execute(memberID string) (*accounting.LoanCapacityResult, error) {
	s.calls++
	return &accounting.LoanCapacityResult{Capacity: s.capacity}, nil
}

func newTestMember(t *testing.T) *member.Member {
	t.Helper()
	code, err := member.NewMembershipCode("M001")
	require.NoError(t, err)
	m, err := member.NewMember(code, "Ali", member.PhoneNumber{}, "", "2024/01/01", member.StatusActive)
	require.NoError(t, err)
	return m
}

func newTestLoan(t *testing.T, memberID member.MemberID) *loan.Loan {
	t.Helper()
	start, err := ledger.NewDate("1403/02/01")
	require.NoError(t, err)
	l, err := loan.NewLoan(memberID, ledger.MustAmount(1200000), start, 12, ledger.Amount{})
	require.NoError(t, err)
	l.PullEvents()
	return l
}

type grantFixture struct {
	memberRepo *mocks.MockMemberRepository
	loanRepo   *mocks.MockLoanRepository
	txRepo     *mocks.MockTransactionRepository
	capacity   *stubCapacity
	publisher  *mocks.MockEventPublisher
	useCase    GrantLoanUseCase
}

func newGrantFixture(capacity int64) *grantFixture {
	log, _ := test.NewNullLogger()
	f := &grantFixture{
		memberRepo: new(mocks.MockMemberRepository),
		loanRepo:   new(mocks.MockLoanRepository),
		txRepo:     new(mocks.MockTransactionRepository),
		capacity:   &stubCapacity{capacity: capacity},
		publisher:  new(mocks.MockEventPublisher),
	}
	uc := NewGrantLoanUseCase(f.memberRepo, f.loanRepo, f.txRepo, f.capacity, new(mocks.MockTransactionManager), f.publisher, log)
	uc.(*GrantLoanUseCaseImpl).now = func() time.Time { return fixedNow }
	f.useCase = uc
	return f
}

// ===========================
// GrantLoan
// ===========================

func TestGrantLoanUseCase_Execute_Success(t *testing.T) {
	// Arrange
	f := newGrantFixture(0)
	m := newTestMember(t)
	f.memberRepo.On("FindByID", nil, m.MemberID()).Return(m, nil)
	f.loanRepo.On("Save", nil, mock.AnythingOfType("*loan.Loan")).Return(nil)
	f.txRepo.On("Save", nil, mock.MatchedBy(func(tx *ledger.Transaction) bool {
		return tx.Type() == ledger.TypeLoanDisbursement &&
			tx.Amount().String() == "3000000" &&
			tx.Date().String() == "1404/04/11" &&
			tx.Description() == DefaultDisbursementDescription
	})).Return(nil)

	// Act
	result, err := f.useCase.Execute(GrantLoanCommand{
		MemberID:     m.MemberID().String(),
		Principal:    "3,000,000",
		Installments: 7,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "active", result.Loan.Status)
	assert.Equal(t, "1404/04/11", result.Loan.StartDate)
	assert.Equal(t, "428572", result.Loan.MonthlyPayment.String(), "預設月付款為無條件進位")
	assert.True(t, result.Loan.Profit.IsZero())
	assert.NotEmpty(t, result.TransactionID)
	assert.Equal(t, []string{"loan.granted", "ledger.transaction_recorded"}, f.publisher.EventTypes())
	assert.Zero(t, f.capacity.calls, "未要求檢查額度")
	f.loanRepo.AssertExpectations(t)
	f.txRepo.AssertExpectations(t)
}

func TestGrantLoanUseCase_Execute_CapacityCheck(t *testing.T) {
	tests := []struct {
		name      string
		capacity  int64
		principal string
		wantErr   error
	}{
		{"額度內", 5000000, "3000000", nil},
		{"剛好等於額度", 3000000, "3000000", nil},
		{"超過額度", 2000000, "3000000", loan.ErrExceedsCapacity},
		{"額度為零", 0, "1", loan.ErrExceedsCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newGrantFixture(tt.capacity)
			m := newTestMember(t)
			f.memberRepo.On("FindByID", nil, m.MemberID()).Return(m, nil)
			f.loanRepo.On("Save", nil, mock.Anything).Return(nil)
			f.txRepo.On("Save", nil, mock.Anything).Return(nil)

			// Act
			_, err := f.useCase.Execute(GrantLoanCommand{
				MemberID:      m.MemberID().String(),
				Principal:     tt.principal,
				StartDate:     "1404/01/15",
				Installments:  10,
				CheckCapacity: true,
			})

			// Assert
			assert.Equal(t, 1, f.capacity.calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				f.loanRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				assert.Empty(t, f.publisher.Events)
				return
			}
			require.NoError(t, err)
			f.loanRepo.AssertCalled(t, "Save", nil, mock.Anything)
		})
	}
}


func TestGrantLoanUseCase_Execute_SettingsUnreadable_RejectsCheckedGrant(t *testing.T) {
	// Arrange：會費足夠，但設定無法讀取時額度視為 0
	m := newTestMember(t)
	settings := new(mocks.MockSettingsRepository)
	settings.On("All", nil).Return(nil, errors.New("database is locked"))
	txRepo := new(mocks.MockTransactionRepository)
	txRepo.On("SumByType", nil, m.MemberID(), ledger.TypeMembershipDeposit, "").Return(ledger.MustAmount(20000000), nil)
	loanRepo := new(mocks.MockLoanRepository)
	loanRepo.On("SumActivePrincipal", nil, m.MemberID()).Return(ledger.MustAmount(0), nil)
	log, _ := test.NewNullLogger()
	capacity := accounting.NewGetLoanCapacityUseCase(settings, txRepo, loanRepo, log)
	useCase := NewGrantLoanUseCase(new(mocks.MockMemberRepository), loanRepo, txRepo, capacity,
		new(mocks.MockTransactionManager), new(mocks.MockEventPublisher), log)

	// Act
	_, err := useCase.Execute(GrantLoanCommand{
		MemberID:      m.MemberID().String(),
		Principal:     "1000000",
		StartDate:     "1404/01/01",
		Installments:  10,
		CheckCapacity: true,
	})

	// Assert
	assert.ErrorIs(t, err, loan.ErrExceedsCapacity)
	loanRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	txRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGrantLoanUseCase_Execute_InvalidInput(t *testing.T) {
	validID := member.NewMemberID().String()

	tests := []struct {
		name    string
		cmd     GrantLoanCommand
		wantErr error
	}{
		{"會員 ID 錯誤", GrantLoanCommand{MemberID: "abc", Principal: "1000", Installments: 1}, member.ErrInvalidMemberID},
		{"本金為零", GrantLoanCommand{MemberID: validID, Principal: "0", Installments: 1}, loan.ErrInvalidPrincipal},
		{"本金空白", GrantLoanCommand{MemberID: validID, Principal: "", Installments: 1}, loan.ErrInvalidPrincipal},
		{"本金為負", GrantLoanCommand{MemberID: validID, Principal: "-5", Installments: 1}, ledger.ErrNegativeAmount},
		{"本金不是數字", GrantLoanCommand{MemberID: validID, Principal: "abc", Installments: 1}, ledger.ErrInvalidAmount},
		{"期數為零", GrantLoanCommand{MemberID: validID, Principal: "1000", Installments: 0}, loan.ErrInvalidInstallments},
		{"日期未補零", GrantLoanCommand{MemberID: validID, Principal: "1000", Installments: 1, StartDate: "1404/4/1"}, ledger.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newGrantFixture(0)

			// Act
			result, err := f.useCase.Execute(tt.cmd)

			// Assert
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
			f.memberRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}
}

func TestGrantLoanUseCase_Execute_MemberNotFound(t *testing.T) {
	// Arrange
	f := newGrantFixture(0)
	id := member.NewMemberID()
	f.memberRepo.On("FindByID", nil, id).Return(nil, member.ErrMemberNotFound)

	// Act
	_, err := f.useCase.Execute(GrantLoanCommand{MemberID: id.String(), Principal: "1000", Installments: 1})

	// Assert
	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	f.loanRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGrantLoanUseCase_Execute_DisbursementFails(t *testing.T) {
	// Arrange
	f := newGrantFixture(0)
	m := newTestMember(t)
	f.memberRepo.On("FindByID", nil, m.MemberID()).Return(m, nil)
	f.loanRepo.On("Save", nil, mock.Anything).Return(nil)
	f.txRepo.On("Save", nil, mock.Anything).Return(shared.ErrRepository.WithContext("database_error", "locked"))

	// Act
	_, err := f.useCase.Execute(GrantLoanCommand{
		MemberID:       m.MemberID().String(),
		Principal:      "1000000",
		Installments:   4,
		MonthlyPayment: "300000",
	})

	// Assert
	assert.ErrorIs(t, err, shared.ErrRepository)
	assert.Empty(t, f.publisher.Events)
}

// ===========================
// SettleLoan
// ===========================

func newSettleUseCase(repo *mocks.MockLoanRepository, publisher *mocks.MockEventPublisher) SettleLoanUseCase {
	log, _ := test.NewNullLogger()
	uc := NewSettleLoanUseCase(repo, new(mocks.MockTransactionManager), publisher, log)
	uc.(*SettleLoanUseCaseImpl).now = func() time.Time { return fixedNow }
	return uc
}

func TestSettleLoanUseCase_Execute_Success(t *testing.T) {
	// Arrange
	repo := new(mocks.MockLoanRepository)
	publisher := new(mocks.MockEventPublisher)
	l := newTestLoan(t, member.NewMemberID())
	repo.On("FindByID", nil, l.LoanID()).Return(l, nil)
	repo.On("Update", nil, l).Return(nil)

	// Act
	dto, err := newSettleUseCase(repo, publisher).Execute(SettleLoanCommand{LoanID: l.LoanID().String()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "settled", dto.Status)
	assert.Equal(t, "1404/04/11", dto.EndDate)
	assert.Equal(t, []string{"loan.settled"}, publisher.EventTypes())
	repo.AssertExpectations(t)
}

func TestSettleLoanUseCase_Execute_Errors(t *testing.T) {
	settledLoan := newTestLoan(t, member.NewMemberID())
	end, _ := ledger.NewDate("1403/12/01")
	require.NoError(t, settledLoan.Settle(end))
	settledLoan.PullEvents()
	missingID := loan.NewLoanID()

	tests := []struct {
		name    string
		cmd     SettleLoanCommand
		setup   func(repo *mocks.MockLoanRepository)
		wantErr error
	}{
		{
			name:    "ID 格式錯誤",
			cmd:     SettleLoanCommand{LoanID: "xyz"},
			setup:   func(repo *mocks.MockLoanRepository) {},
			wantErr: loan.ErrInvalidLoanID,
		},
		{
			name:    "結清日期錯誤",
			cmd:     SettleLoanCommand{LoanID: missingID.String(), EndDate: "14040101"},
			setup:   func(repo *mocks.MockLoanRepository) {},
			wantErr: ledger.ErrInvalidDate,
		},
		{
			name: "貸款不存在",
			cmd:  SettleLoanCommand{LoanID: missingID.String()},
			setup: func(repo *mocks.MockLoanRepository) {
				repo.On("FindByID", nil, missingID).Return(nil, loan.ErrLoanNotFound)
			},
			wantErr: loan.ErrLoanNotFound,
		},
		{
			name: "已結清",
			cmd:  SettleLoanCommand{LoanID: settledLoan.LoanID().String()},
			setup: func(repo *mocks.MockLoanRepository) {
				repo.On("FindByID", nil, settledLoan.LoanID()).Return(settledLoan, nil)
			},
			wantErr: loan.ErrAlreadySettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := new(mocks.MockLoanRepository)
			publisher := new(mocks.MockEventPublisher)
			tt.setup(repo)

			// Act
			dto, err := newSettleUseCase(repo, publisher).Execute(tt.cmd)

			// Assert
			assert.Nil(t, dto)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			assert.Empty(t, publisher.Events)
		})
	}
}

// ===========================
// ListLoans
// ===========================

func TestListLoansUseCase_Execute(t *testing.T) {
	memberID := member.NewMemberID()
	l := newTestLoan(t, memberID)

	tests := []struct {
		name    string
		query   ListLoansQuery
		setup   func(repo *mocks.MockLoanRepository)
		wantLen int
		wantErr error
	}{
		{
			name:  "全部",
			query: ListLoansQuery{},
			setup: func(repo *mocks.MockLoanRepository) {
				repo.On("List", nil, loan.Status("")).Return([]*loan.Loan{l}, nil)
			},
			wantLen: 1,
		},
		{
			name:  "只列 active",
			query: ListLoansQuery{Status: "active"},
			setup: func(repo *mocks.MockLoanRepository) {
				repo.On("List", nil, loan.StatusActive).Return([]*loan.Loan{l}, nil)
			},
			wantLen: 1,
		},
		{
			name:  "單一會員已結清",
			query: ListLoansQuery{MemberID: memberID.String(), Status: "settled"},
			setup: func(repo *mocks.MockLoanRepository) {
				repo.On("ListByMember", nil, memberID, loan.StatusSettled).Return([]*loan.Loan{}, nil)
			},
			wantLen: 0,
		},
		{
			name:    "未知狀態",
			query:   ListLoansQuery{Status: "overdue"},
			setup:   func(repo *mocks.MockLoanRepository) {},
			wantErr: loan.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := new(mocks.MockLoanRepository)
			tt.setup(repo)

			// Act
			dtos, err := NewListLoansUseCase(repo).Execute(tt.query)

			// Assert
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, dtos, tt.wantLen)
			repo.AssertExpectations(t)
		})
	}
}

func TestListLoansUseCase_Execute_StoreError(t *testing.T) {
	repo := new(mocks.MockLoanRepository)
	repo.On("List", nil, loan.Status("")).Return(nil, errors.New("no such table: loans"))

	_, err := NewListLoansUseCase(repo).Execute(ListLoansQuery{})

	assert.Error(t, err)
}
