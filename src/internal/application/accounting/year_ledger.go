package accounting

import (
	"errors"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/locale"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ===========================
// GetYearLedger
// ===========================

// MonthRow 年度表格的一列
type MonthRow struct {
	Month       int
	Date        string // YYYY/MM/01
	Membership  decimal.Decimal
	Loan        decimal.Decimal
	Installment decimal.Decimal
}

// YearLedgerResult 會員年度帳本
//
// Balance 與 Settled 以全期合計計算，不限於當年。
// LastInstallmentMonth 為當年最後一個有還款的月份（0 表示沒有），
// 已結清時介面以此標示結清月份。
type YearLedgerResult struct {
	MemberID             string
	Year                 string
	Months               []MonthRow
	YearTotal            ledger.Totals
	AllTime              ledger.Totals
	Balance              decimal.Decimal
	Settled              bool
	LastInstallmentMonth int
}

// GetYearLedgerQuery 年度帳本查詢
//
// Year 空白時使用會員上次存檔的年份，沒有則為今年（伊朗曆）。
type GetYearLedgerQuery struct {
	MemberID string
	Year     string
}

// GetYearLedgerUseCase 載入會員年度帳本
type GetYearLedgerUseCase struct {
	memberRepo   member.MemberRepository
	txRepo       ledger.TransactionRepository
	settingsRepo fund.SettingsRepository
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewGetYearLedgerUseCase 創建 Use Case 實例
func NewGetYearLedgerUseCase(
	memberRepo member.MemberRepository,
	txRepo ledger.TransactionRepository,
	settingsRepo fund.SettingsRepository,
	log logrus.FieldLogger,
) *GetYearLedgerUseCase {
	return &GetYearLedgerUseCase{
		memberRepo:   memberRepo,
		txRepo:       txRepo,
		settingsRepo: settingsRepo,
		log:          log,
		now:          time.Now,
	}
}

// Execute 載入 12 個月合計與全期合計
//
// 錯誤處理：
// - ID 或年份格式錯誤 → 對應的 Domain 錯誤
// - 會員不存在 → member.ErrMemberNotFound
func (uc *GetYearLedgerUseCase) Execute(query GetYearLedgerQuery) (*YearLedgerResult, error) {
	memberID, err := member.MemberIDFromString(query.MemberID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.memberRepo.FindByID(nil, memberID); err != nil {
		return nil, err
	}

	year, err := uc.resolveYear(memberID, query.Year)
	if err != nil {
		return nil, err
	}

	grid, err := uc.txRepo.MonthlyTotals(nil, memberID, year)
	if err != nil {
		return nil, err
	}
	allTime, err := uc.txRepo.TotalsByMember(nil, memberID, "")
	if err != nil {
		return nil, err
	}

	return buildYearLedger(memberID, year, grid, allTime), nil
}

func (uc *GetYearLedgerUseCase) resolveYear(memberID member.MemberID, value string) (ledger.Year, error) {
	if shared.NormalizeDigits(value) != "" {
		return ledger.NewYear(value)
	}

	last, err := uc.settingsRepo.Get(nil, fund.LastYearKey(memberID.String()), "")
	if err != nil {
		uc.log.WithError(err).WithField("member_id", memberID.String()).Warn("read last viewed year failed")
	}
	if year, err := ledger.NewYear(last); err == nil {
		return year, nil
	}
	return ledger.NewYear(locale.TodayJalali(uc.now()).YearString())
}

func buildYearLedger(memberID member.MemberID, year ledger.Year, grid ledger.YearGrid, allTime ledger.Totals) *YearLedgerResult {
	rows := make([]MonthRow, 0, ledger.MonthsPerYear)
	for i, t := range grid.Months {
		rows = append(rows, MonthRow{
			Month:       i + 1,
			Date:        year.MonthDate(i + 1).String(),
			Membership:  t.Membership,
			Loan:        t.Loan,
			Installment: t.Installment,
		})
	}

	return &YearLedgerResult{
		MemberID:             memberID.String(),
		Year:                 year.String(),
		Months:               rows,
		YearTotal:            grid.Total(),
		AllTime:              allTime,
		Balance:              allTime.Balance(),
		Settled:              allTime.Settled(),
		LastInstallmentMonth: grid.LastInstallmentMonth(),
	}
}

// ===========================
// SaveYearLedger
// ===========================

// MonthInput 使用者輸入的一列（空字串視為 0）
type MonthInput struct {
	Membership  string
	Loan        string
	Installment string
}

// SaveYearLedgerCommand 年度帳本存檔指令
type SaveYearLedgerCommand struct {
	MemberID string
	Year     string
	Months   [ledger.MonthsPerYear]MonthInput
}

// SaveYearLedgerResult 存檔結果
type SaveYearLedgerResult struct {
	Year     string
	Removed  int64
	Inserted int
	Balance  decimal.Decimal
}

// SaveYearLedgerUseCase 以表格內容整批覆寫會員某年度的交易
//
// 破壞性操作：該年度所有交易（包含其他入口寫入、日期不是 01 的交易）
// 都會被刪除，再依表格每個非零儲存格寫入一筆 YYYY/MM/01 的交易。
type SaveYearLedgerUseCase interface {
	Execute(cmd SaveYearLedgerCommand) (*SaveYearLedgerResult, error)
}

// SaveYearLedgerUseCaseImpl 年度帳本存檔實作
type SaveYearLedgerUseCaseImpl struct {
	memberRepo   member.MemberRepository
	txRepo       ledger.TransactionRepository
	settingsRepo fund.SettingsRepository
	txManager    shared.TransactionManager
	publisher    shared.EventPublisher
	log          logrus.FieldLogger
}

// NewSaveYearLedgerUseCase 創建 Use Case 實例
func NewSaveYearLedgerUseCase(
	memberRepo member.MemberRepository,
	txRepo ledger.TransactionRepository,
	settingsRepo fund.SettingsRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log logrus.FieldLogger,
) SaveYearLedgerUseCase {
	return &SaveYearLedgerUseCaseImpl{
		memberRepo:   memberRepo,
		txRepo:       txRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		publisher:    publisher,
		log:          log,
	}
}

// Execute 執行年度覆寫
//
// 業務流程（同一事務）：
// 1. 確認會員存在
// 2. 刪除 member_id = ? AND date LIKE 'YYYY/%'
// 3. 寫入表格展開的交易
// 4. 寫入餘額快照 balance_{member}_{year} 與 last_year_member_{member}
//
// 任一步失敗整個事務回滾，舊資料保持不變。
// 對同一表格重複存檔結果相同。
func (uc *SaveYearLedgerUseCaseImpl) Execute(cmd SaveYearLedgerCommand) (*SaveYearLedgerResult, error) {
	// Step 1: 驗證輸入
	memberID, err := member.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, err
	}
	year, err := ledger.NewYear(cmd.Year)
	if err != nil {
		return nil, err
	}
	grid, err := parseGrid(cmd.Months)
	if err != nil {
		return nil, err
	}
	txs, err := grid.Transactions(memberID, year)
	if err != nil {
		return nil, err
	}

	// Step 2: 在事務中覆寫
	result := &SaveYearLedgerResult{Year: year.String(), Inserted: len(txs)}
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if _, err := uc.memberRepo.FindByID(ctx, memberID); err != nil {
			return err
		}

		removed, err := uc.txRepo.DeleteByMemberAndPrefix(ctx, memberID, year.Prefix())
		if err != nil {
			return err
		}
		result.Removed = removed

		if len(txs) > 0 {
			if err := uc.txRepo.SaveAll(ctx, txs); err != nil {
				return err
			}
		}

		allTime, err := uc.txRepo.TotalsByMember(ctx, memberID, "")
		if err != nil {
			return err
		}
		result.Balance = allTime.Balance()

		if err := uc.settingsRepo.Set(ctx, fund.BalanceSnapshotKey(memberID.String(), year.String()), result.Balance.String(), ""); err != nil {
			return err
		}
		return uc.settingsRepo.Set(ctx, fund.LastYearKey(memberID.String()), year.String(), "")
	})
	if err != nil {
		uc.log.WithError(err).WithFields(logrus.Fields{
			"member_id": cmd.MemberID,
			"year":      year.String(),
		}).Error("year ledger save rolled back")
		return nil, err
	}

	// Step 3: 發布事件
	event := ledger.NewYearReplacedEvent(memberID, year, result.Removed, result.Inserted, result.Balance)
	if err := uc.publisher.Publish(event); err != nil {
		uc.log.WithError(err).Warn("publish year replaced event failed")
	}

	uc.log.WithFields(logrus.Fields{
		"member_id": cmd.MemberID,
		"year":      year.String(),
		"removed":   result.Removed,
		"inserted":  result.Inserted,
	}).Info("year ledger replaced")

	return result, nil
}

// parseGrid 將使用者輸入轉為 YearGrid（空字串為 0，負數或非數字為錯誤）
func parseGrid(months [ledger.MonthsPerYear]MonthInput) (ledger.YearGrid, error) {
	var grid ledger.YearGrid
	for i, in := range months {
		values := map[ledger.TransactionType]string{
			ledger.TypeMembershipDeposit:  in.Membership,
			ledger.TypeLoanDisbursement:   in.Loan,
			ledger.TypeInstallmentPayment: in.Installment,
		}
		row := ledger.Totals{Membership: decimal.Zero, Loan: decimal.Zero, Installment: decimal.Zero}
		for _, txType := range ledger.AllTransactionTypes {
			amount, err := ledger.ParseAmount(values[txType])
			if err != nil {
				var de *shared.DomainError
				if errors.As(err, &de) {
					return ledger.YearGrid{}, de.WithContext("month", i+1, "type", string(txType))
				}
				return ledger.YearGrid{}, err
			}
			row = row.Add(txType, amount.Decimal())
		}
		grid.Months[i] = row
	}
	return grid, nil
}
