// Package mocks 提供 Application Layer 單元測試共用的 testify mock
//
// 每個 mock 對應 Domain Layer 的一個倉儲或基礎設施介面。
package mocks

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/note"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// ===========================
// TransactionManager / EventPublisher
// ===========================

// MockTransactionManager 直接以 nil context 執行 fn（單元測試不需要真正的事務）
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	return fn(nil)
}

// MockEventPublisher 記錄所有發布的事件
type MockEventPublisher struct {
	Events []shared.DomainEvent
	Err    error
}

func (p *MockEventPublisher) Publish(event shared.DomainEvent) error {
	p.Events = append(p.Events, event)
	return p.Err
}

func (p *MockEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	p.Events = append(p.Events, events...)
	return p.Err
}

// EventTypes 已發布事件的類型（依發布順序）
func (p *MockEventPublisher) EventTypes() []string {
	types := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.EventType())
	}
	return types
}

// ===========================
// MemberRepository
// ===========================

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Save(ctx shared.TransactionContext, mem *member.Member) error {
	return m.Called(ctx, mem).Error(0)
}

func (m *MockMemberRepository) Update(ctx shared.TransactionContext, mem *member.Member) error {
	return m.Called(ctx, mem).Error(0)
}

func (m *MockMemberRepository) FindByID(ctx shared.TransactionContext, id member.MemberID) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByCodeOrName(ctx shared.TransactionContext, value string) (*member.Member, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) ExistsByCode(ctx shared.TransactionContext, code member.MembershipCode) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) LastCode(ctx shared.TransactionContext) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockMemberRepository) List(ctx shared.TransactionContext) ([]*member.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*member.Member), args.Error(1)
}

func (m *MockMemberRepository) Search(ctx shared.TransactionContext, keyword string) ([]*member.Member, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*member.Member), args.Error(1)
}

func (m *MockMemberRepository) Delete(ctx shared.TransactionContext, id member.MemberID) error {
	return m.Called(ctx, id).Error(0)
}

// ===========================
// TransactionRepository
// ===========================

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Save(ctx shared.TransactionContext, tx *ledger.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) SaveAll(ctx shared.TransactionContext, txs []*ledger.Transaction) error {
	return m.Called(ctx, txs).Error(0)
}

func (m *MockTransactionRepository) DeleteByMemberAndPrefix(ctx shared.TransactionContext, memberID member.MemberID, datePrefix string) (int64, error) {
	args := m.Called(ctx, memberID, datePrefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumByType(ctx shared.TransactionContext, memberID member.MemberID, txType ledger.TransactionType, datePrefix string) (ledger.Amount, error) {
	args := m.Called(ctx, memberID, txType, datePrefix)
	return args.Get(0).(ledger.Amount), args.Error(1)
}

func (m *MockTransactionRepository) TotalsByMember(ctx shared.TransactionContext, memberID member.MemberID, datePrefix string) (ledger.Totals, error) {
	args := m.Called(ctx, memberID, datePrefix)
	return args.Get(0).(ledger.Totals), args.Error(1)
}

func (m *MockTransactionRepository) MonthlyTotals(ctx shared.TransactionContext, memberID member.MemberID, year ledger.Year) (ledger.YearGrid, error) {
	args := m.Called(ctx, memberID, year)
	return args.Get(0).(ledger.YearGrid), args.Error(1)
}

func (m *MockTransactionRepository) TotalsForAllMembers(ctx shared.TransactionContext) (map[string]ledger.Totals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]ledger.Totals), args.Error(1)
}

func (m *MockTransactionRepository) ListByMember(ctx shared.TransactionContext, memberID member.MemberID, datePrefix string) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, memberID, datePrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

// ===========================
// LoanRepository
// ===========================

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Save(ctx shared.TransactionContext, l *loan.Loan) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoanRepository) Update(ctx shared.TransactionContext, l *loan.Loan) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoanRepository) FindByID(ctx shared.TransactionContext, id loan.LoanID) (*loan.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListByMember(ctx shared.TransactionContext, memberID member.MemberID, status loan.Status) ([]*loan.Loan, error) {
	args := m.Called(ctx, memberID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*loan.Loan), args.Error(1)
}

func (m *MockLoanRepository) List(ctx shared.TransactionContext, status loan.Status) ([]*loan.Loan, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*loan.Loan), args.Error(1)
}

func (m *MockLoanRepository) SumActivePrincipal(ctx shared.TransactionContext, memberID member.MemberID) (ledger.Amount, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(ledger.Amount), args.Error(1)
}

// ===========================
// SettingsRepository / BankBalanceRepository
// ===========================

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx shared.TransactionContext, key, defaultValue string) (string, error) {
	args := m.Called(ctx, key, defaultValue)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx shared.TransactionContext, key, value, description string) error {
	return m.Called(ctx, key, value, description).Error(0)
}

func (m *MockSettingsRepository) All(ctx shared.TransactionContext) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsRepository) EnsureDefaults(ctx shared.TransactionContext, defaults []fund.Setting) error {
	return m.Called(ctx, defaults).Error(0)
}

type MockBankBalanceRepository struct {
	mock.Mock
}

func (m *MockBankBalanceRepository) ReplaceAll(ctx shared.TransactionContext, balances []fund.BankBalance) error {
	return m.Called(ctx, balances).Error(0)
}

func (m *MockBankBalanceRepository) List(ctx shared.TransactionContext) ([]fund.BankBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fund.BankBalance), args.Error(1)
}

// ===========================
// NoteRepository
// ===========================

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Save(ctx shared.TransactionContext, n *note.Note) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNoteRepository) ListByMember(ctx shared.TransactionContext, memberID member.MemberID, monthPrefix string) ([]*note.Note, error) {
	args := m.Called(ctx, memberID, monthPrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*note.Note), args.Error(1)
}

func (m *MockNoteRepository) Delete(ctx shared.TransactionContext, id note.NoteID) error {
	return m.Called(ctx, id).Error(0)
}
