// Package bootstrap 組裝倉儲、Use Case 與 HTTP 依賴
package bootstrap

import (
	accountingapp "github.com/jackyeh168/qarz_fund/src/internal/application/accounting"
	ledgerapp "github.com/jackyeh168/qarz_fund/src/internal/application/ledger"
	loanapp "github.com/jackyeh168/qarz_fund/src/internal/application/loan"
	memberapp "github.com/jackyeh168/qarz_fund/src/internal/application/member"
	noteapp "github.com/jackyeh168/qarz_fund/src/internal/application/note"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/note"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence"
	fundpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/fund"
	ledgerpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/ledger"
	loanpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/loan"
	memberpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/member"
	notepersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/note"
	settingpersistence "github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/setting"
	"github.com/jackyeh168/qarz_fund/src/internal/interfaces/http/handlers"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Repositories 所有 GORM 倉儲
type Repositories struct {
	Members      member.MemberRepository
	Transactions ledger.TransactionRepository
	Loans        loan.LoanRepository
	Settings     fund.SettingsRepository
	BankBalances fund.BankBalanceRepository
	Notes        note.NoteRepository
	TxManager    shared.TransactionManager
}

// NewRepositories 以同一個連線建立所有倉儲
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Members:      memberpersistence.NewMemberRepository(db),
		Transactions: ledgerpersistence.NewTransactionRepository(db),
		Loans:        loanpersistence.NewLoanRepository(db),
		Settings:     settingpersistence.NewSettingsRepository(db),
		BankBalances: fundpersistence.NewBankBalanceRepository(db),
		Notes:        notepersistence.NewNoteRepository(db),
		TxManager:    persistence.NewGORMTransactionManager(db),
	}
}

// NewUseCases 建立 HTTP 層使用的所有 Use Case
func NewUseCases(
	repos *Repositories,
	maintenance handlers.Maintenance,
	publisher shared.EventPublisher,
	log logrus.FieldLogger,
) *handlers.UseCases {
	yearLedger := accountingapp.NewGetYearLedgerUseCase(repos.Members, repos.Transactions, repos.Settings, log)
	capacity := accountingapp.NewGetLoanCapacityUseCase(repos.Settings, repos.Transactions, repos.Loans, log)

	return &handlers.UseCases{
		RegisterMember: memberapp.NewRegisterMemberUseCase(repos.Members, repos.TxManager, publisher, log),
		GenerateCode:   memberapp.NewGenerateMembershipCodeUseCase(repos.Members, log),
		UpdateContact:  memberapp.NewUpdateMemberContactUseCase(repos.Members, repos.TxManager),
		GetMember:      memberapp.NewGetMemberUseCase(repos.Members),
		FindMember:     memberapp.NewFindMemberUseCase(repos.Members),
		ListMembers:    memberapp.NewListMembersUseCase(repos.Members),
		RemoveMember:   memberapp.NewRemoveMemberUseCase(repos.Members, repos.TxManager, publisher, log),

		SharePrice:     accountingapp.NewGetSharePriceUseCase(repos.Settings, log),
		GetSettings:    accountingapp.NewGetSettingsUseCase(repos.Settings, log),
		UpdateSettings: accountingapp.NewUpdateSettingsUseCase(repos.Settings, repos.TxManager, log),
		MemberShares:   accountingapp.NewGetMemberSharesUseCase(repos.Settings, repos.Transactions, log),
		LoanCapacity:   capacity,
		MemberSummary:  accountingapp.NewGetMemberSummaryUseCase(repos.Transactions),
		FundReport:     accountingapp.NewGetFundReportUseCase(repos.Members, repos.Transactions, repos.Settings, log),

		YearLedger:       yearLedger,
		SaveYearLedger:   accountingapp.NewSaveYearLedgerUseCase(repos.Members, repos.Transactions, repos.Settings, repos.TxManager, publisher, log),
		ExportYearLedger: accountingapp.NewExportYearLedgerUseCase(yearLedger),

		ReplaceBankBalances: accountingapp.NewReplaceBankBalancesUseCase(repos.BankBalances, repos.Settings, repos.TxManager, log),
		ListBankBalances:    accountingapp.NewListBankBalancesUseCase(repos.BankBalances),

		GrantLoan:         loanapp.NewGrantLoanUseCase(repos.Members, repos.Loans, repos.Transactions, capacity, repos.TxManager, publisher, log),
		SettleLoan:        loanapp.NewSettleLoanUseCase(repos.Loans, repos.TxManager, publisher, log),
		ListLoans:         loanapp.NewListLoansUseCase(repos.Loans),
		RecordTransaction: ledgerapp.NewRecordTransactionUseCase(repos.Members, repos.Transactions, repos.TxManager, publisher, log),
		ListTransactions:  ledgerapp.NewListTransactionsUseCase(repos.Transactions),

		AddNote:    noteapp.NewAddNoteUseCase(repos.Members, repos.Notes, repos.TxManager, log),
		ListNotes:  noteapp.NewListNotesUseCase(repos.Notes),
		DeleteNote: noteapp.NewDeleteNoteUseCase(repos.Notes, repos.TxManager, log),

		Maintenance: maintenance,
	}
}
