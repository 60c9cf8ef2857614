package accounting

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ===========================
// GetSharePrice
// ===========================

// SharePriceResult 目前股價
type SharePriceResult struct {
	Price           int64
	BasePrice       string
	MonthlyIncrease string
	StartDate       string
}

// GetSharePriceUseCase 查詢目前股價（不返回錯誤）
type GetSharePriceUseCase struct {
	settingsRepo fund.SettingsRepository
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewGetSharePriceUseCase 創建 Use Case 實例
func NewGetSharePriceUseCase(settingsRepo fund.SettingsRepository, log logrus.FieldLogger) *GetSharePriceUseCase {
	return &GetSharePriceUseCase{settingsRepo: settingsRepo, log: log, now: time.Now}
}

// Execute 計算目前股價
func (uc *GetSharePriceUseCase) Execute() SharePriceResult {
	s := loadSettings(uc.settingsRepo, uc.log)
	dto := toSettingsDTO(s, uc.now())
	return SharePriceResult{
		Price:           dto.CurrentSharePrice,
		BasePrice:       dto.SharePrice,
		MonthlyIncrease: dto.MonthlyIncrease,
		StartDate:       dto.StartDate,
	}
}

// ===========================
// 股數與可貸額度
// ===========================

// SharesResult 會員股數
type SharesResult struct {
	ShareCount    int64
	TotalInvested decimal.Decimal
	SharePrice    int64
}

// LoanCapacityResult 會員可貸額度
type LoanCapacityResult struct {
	Capacity        int64
	ShareCount      int64
	SharePrice      int64
	LoanFactor      decimal.Decimal
	ActivePrincipal decimal.Decimal
}

// GetMemberSharesUseCase 查詢會員股數
//
// totalInvested 為全期會費合計；無法讀取時返回 0 股。
type GetMemberSharesUseCase struct {
	settingsRepo fund.SettingsRepository
	txRepo       ledger.TransactionRepository
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewGetMemberSharesUseCase 創建 Use Case 實例
func NewGetMemberSharesUseCase(
	settingsRepo fund.SettingsRepository,
	txRepo ledger.TransactionRepository,
	log logrus.FieldLogger,
) *GetMemberSharesUseCase {
	return &GetMemberSharesUseCase{settingsRepo: settingsRepo, txRepo: txRepo, log: log, now: time.Now}
}

// Execute 計算股數
//
// ID 格式錯誤或任何讀取失敗都返回 0 股，不返回錯誤。
func (uc *GetMemberSharesUseCase) Execute(id string) (*SharesResult, error) {
	zero := &SharesResult{TotalInvested: decimal.Zero}
	memberID, err := member.MemberIDFromString(id)
	if err != nil {
		uc.log.WithError(err).WithField("member_id", id).Warn("member shares unavailable: invalid member id")
		return zero, nil
	}

	s, ok := readSettings(uc.settingsRepo, uc.log)
	if !ok {
		return zero, nil
	}
	price := fund.CurrentSharePrice(s, uc.now())
	shares := memberShares(uc.txRepo, uc.log, memberID, price)
	return &SharesResult{
		ShareCount:    shares.Count,
		TotalInvested: shares.TotalInvested,
		SharePrice:    price,
	}, nil
}

// GetLoanCapacityUseCase 查詢會員可貸額度
//
// active 貸款本金讀取自 Loan 記錄（不是交易流水）。
// 任何讀取失敗都使額度為 0。
type GetLoanCapacityUseCase struct {
	settingsRepo fund.SettingsRepository
	txRepo       ledger.TransactionRepository
	loanRepo     loan.LoanRepository
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewGetLoanCapacityUseCase 創建 Use Case 實例
func NewGetLoanCapacityUseCase(
	settingsRepo fund.SettingsRepository,
	txRepo ledger.TransactionRepository,
	loanRepo loan.LoanRepository,
	log logrus.FieldLogger,
) *GetLoanCapacityUseCase {
	return &GetLoanCapacityUseCase{
		settingsRepo: settingsRepo,
		txRepo:       txRepo,
		loanRepo:     loanRepo,
		log:          log,
		now:          time.Now,
	}
}

// Execute 計算可貸額度
//
// ID 格式錯誤或任何讀取失敗都使額度為 0，不返回錯誤。
func (uc *GetLoanCapacityUseCase) Execute(id string) (*LoanCapacityResult, error) {
	zero := &LoanCapacityResult{LoanFactor: decimal.Zero, ActivePrincipal: decimal.Zero}
	memberID, err := member.MemberIDFromString(id)
	if err != nil {
		uc.log.WithError(err).WithField("member_id", id).Warn("loan capacity unavailable: invalid member id")
		return zero, nil
	}

	s, ok := readSettings(uc.settingsRepo, uc.log)
	if !ok {
		return zero, nil
	}
	price := fund.CurrentSharePrice(s, uc.now())
	result := &LoanCapacityResult{
		SharePrice:      price,
		LoanFactor:      s.LoanFactor(),
		ActivePrincipal: decimal.Zero,
	}

	invested, err := uc.txRepo.SumByType(nil, memberID, ledger.TypeMembershipDeposit, "")
	if err != nil {
		uc.log.WithError(err).WithField("member_id", id).Warn("loan capacity unavailable: read deposits failed")
		return result, nil
	}
	active, err := uc.loanRepo.SumActivePrincipal(nil, memberID)
	if err != nil {
		uc.log.WithError(err).WithField("member_id", id).Warn("loan capacity unavailable: read active loans failed")
		return result, nil
	}

	shares := fund.CalculateShares(invested.Decimal(), price)
	result.ShareCount = shares.Count
	result.ActivePrincipal = active.Decimal()
	result.Capacity = fund.CalculateLoanCapacity(shares.Count, price, s.LoanFactor(), active.Decimal())
	return result, nil
}

func memberShares(txRepo ledger.TransactionRepository, log logrus.FieldLogger, memberID member.MemberID, price int64) fund.Shares {
	invested, err := txRepo.SumByType(nil, memberID, ledger.TypeMembershipDeposit, "")
	if err != nil {
		log.WithError(err).WithField("member_id", memberID.String()).Warn("read membership deposits failed")
		return fund.Shares{TotalInvested: decimal.Zero}
	}
	return fund.CalculateShares(invested.Decimal(), price)
}
