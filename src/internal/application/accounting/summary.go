package accounting

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ===========================
// GetMemberSummary
// ===========================

// MemberSummaryResult 單一會員彙總
type MemberSummaryResult struct {
	MemberID  string
	Asset     decimal.Decimal
	LoanDrawn decimal.Decimal
	Paid      decimal.Decimal
	Debt      decimal.Decimal
}

// GetMemberSummaryUseCase 查詢會員全期彙總
type GetMemberSummaryUseCase struct {
	txRepo ledger.TransactionRepository
}

// NewGetMemberSummaryUseCase 創建 Use Case 實例
func NewGetMemberSummaryUseCase(txRepo ledger.TransactionRepository) *GetMemberSummaryUseCase {
	return &GetMemberSummaryUseCase{txRepo: txRepo}
}

// Execute 彙總會員全部交易
func (uc *GetMemberSummaryUseCase) Execute(id string) (*MemberSummaryResult, error) {
	memberID, err := member.MemberIDFromString(id)
	if err != nil {
		return nil, err
	}

	totals, err := uc.txRepo.TotalsByMember(nil, memberID, "")
	if err != nil {
		return nil, err
	}

	summary := fund.NewMemberSummary(totals)
	return &MemberSummaryResult{
		MemberID:  id,
		Asset:     summary.Asset,
		LoanDrawn: summary.LoanDrawn,
		Paid:      summary.Paid,
		Debt:      summary.Debt(),
	}, nil
}

// ===========================
// GetFundReport
// ===========================

// FundReportRow 報表中單一會員列
type FundReportRow struct {
	MemberID  string
	Code      string
	Name      string
	Status    string
	Asset     decimal.Decimal
	LoanDrawn decimal.Decimal
	Paid      decimal.Decimal
	Debt      decimal.Decimal
}

// FundReportResult 基金總表
type FundReportResult struct {
	Rows        []FundReportRow
	TotalAsset  decimal.Decimal
	TotalLoans  decimal.Decimal
	TotalPaid   decimal.Decimal
	TotalDebt   decimal.Decimal
	FundBalance decimal.Decimal
	BalanceDiff decimal.Decimal
}

// GetFundReportUseCase 產生基金總表
//
// BalanceDiff = TotalDebt − TotalAsset − FundBalance，非零是對帳訊號而非錯誤。
type GetFundReportUseCase struct {
	memberRepo   member.MemberRepository
	txRepo       ledger.TransactionRepository
	settingsRepo fund.SettingsRepository
	log          logrus.FieldLogger
}

// NewGetFundReportUseCase 創建 Use Case 實例
func NewGetFundReportUseCase(
	memberRepo member.MemberRepository,
	txRepo ledger.TransactionRepository,
	settingsRepo fund.SettingsRepository,
	log logrus.FieldLogger,
) *GetFundReportUseCase {
	return &GetFundReportUseCase{
		memberRepo:   memberRepo,
		txRepo:       txRepo,
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// Execute 彙總所有會員
//
// 列的順序與會員清單相同（入會日期由新到舊）；沒有交易的會員列為 0。
func (uc *GetFundReportUseCase) Execute() (*FundReportResult, error) {
	members, err := uc.memberRepo.List(nil)
	if err != nil {
		return nil, err
	}
	totals, err := uc.txRepo.TotalsForAllMembers(nil)
	if err != nil {
		return nil, err
	}
	settings := loadSettings(uc.settingsRepo, uc.log)

	rows := make([]FundReportRow, 0, len(members))
	summaries := make([]fund.MemberSummary, 0, len(members))
	for _, m := range members {
		t, ok := totals[m.MemberID().String()]
		if !ok {
			t = ledger.Totals{Membership: decimal.Zero, Loan: decimal.Zero, Installment: decimal.Zero}
		}
		summary := fund.NewMemberSummary(t)
		summaries = append(summaries, summary)
		rows = append(rows, FundReportRow{
			MemberID:  m.MemberID().String(),
			Code:      m.Code().String(),
			Name:      m.Name(),
			Status:    string(m.Status()),
			Asset:     summary.Asset,
			LoanDrawn: summary.LoanDrawn,
			Paid:      summary.Paid,
			Debt:      summary.Debt(),
		})
	}

	report := fund.BuildFundReport(summaries, settings.FundBalance())
	return &FundReportResult{
		Rows:        rows,
		TotalAsset:  report.TotalAsset,
		TotalLoans:  report.TotalLoans,
		TotalPaid:   report.TotalPaid,
		TotalDebt:   report.TotalDebt,
		FundBalance: report.FundBalance,
		BalanceDiff: report.BalanceDiff,
	}, nil
}
