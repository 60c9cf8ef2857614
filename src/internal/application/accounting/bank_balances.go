package accounting

import (
	"errors"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ===========================
// 銀行餘額
// ===========================

// BankBalanceDTO 單一銀行帳戶餘額
type BankBalanceDTO struct {
	BankName string
	Amount   decimal.Decimal
}

// BankBalancesResult 銀行餘額清單與合計（即 fund_balance）
type BankBalancesResult struct {
	Balances []BankBalanceDTO
	Total    decimal.Decimal
}

// BankBalanceInput 使用者輸入的一列
type BankBalanceInput struct {
	BankName string
	Amount   string
}

// ReplaceBankBalancesUseCase 覆寫銀行餘額清單
//
// 清單與 fund_balance 設定在同一事務中更新，兩者保持一致。
type ReplaceBankBalancesUseCase interface {
	Execute(entries []BankBalanceInput) (*BankBalancesResult, error)
}

// ReplaceBankBalancesUseCaseImpl 覆寫銀行餘額實作
type ReplaceBankBalancesUseCaseImpl struct {
	balanceRepo  fund.BankBalanceRepository
	settingsRepo fund.SettingsRepository
	txManager    shared.TransactionManager
	log          logrus.FieldLogger
}

// NewReplaceBankBalancesUseCase 創建 Use Case 實例
func NewReplaceBankBalancesUseCase(
	balanceRepo fund.BankBalanceRepository,
	settingsRepo fund.SettingsRepository,
	txManager shared.TransactionManager,
	log logrus.FieldLogger,
) ReplaceBankBalancesUseCase {
	return &ReplaceBankBalancesUseCaseImpl{
		balanceRepo:  balanceRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		log:          log,
	}
}

// Execute 驗證所有列後整批覆寫
//
// 任一列銀行名稱為空或金額無法解析 → fund.ErrInvalidBankBalance，不寫入任何資料。
func (uc *ReplaceBankBalancesUseCaseImpl) Execute(entries []BankBalanceInput) (*BankBalancesResult, error) {
	balances := make([]fund.BankBalance, 0, len(entries))
	for i, e := range entries {
		b, err := fund.NewBankBalance(e.BankName, e.Amount)
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) {
				return nil, de.WithContext("row", i+1)
			}
			return nil, err
		}
		balances = append(balances, b)
	}
	total := fund.TotalBankBalance(balances)

	err := uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if err := uc.balanceRepo.ReplaceAll(ctx, balances); err != nil {
			return err
		}
		return uc.settingsRepo.Set(ctx, fund.KeyFundBalance, total.String(), "")
	})
	if err != nil {
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{
		"banks": len(balances),
		"total": total.String(),
	}).Info("bank balances replaced")

	return toBankBalancesResult(balances), nil
}

// ListBankBalancesUseCase 查詢銀行餘額清單
type ListBankBalancesUseCase struct {
	balanceRepo fund.BankBalanceRepository
}

// NewListBankBalancesUseCase 創建 Use Case 實例
func NewListBankBalancesUseCase(balanceRepo fund.BankBalanceRepository) *ListBankBalancesUseCase {
	return &ListBankBalancesUseCase{balanceRepo: balanceRepo}
}

// Execute 依寫入順序列出
func (uc *ListBankBalancesUseCase) Execute() (*BankBalancesResult, error) {
	balances, err := uc.balanceRepo.List(nil)
	if err != nil {
		return nil, err
	}
	return toBankBalancesResult(balances), nil
}

func toBankBalancesResult(balances []fund.BankBalance) *BankBalancesResult {
	result := &BankBalancesResult{
		Balances: make([]BankBalanceDTO, 0, len(balances)),
		Total:    fund.TotalBankBalance(balances),
	}
	for _, b := range balances {
		result.Balances = append(result.Balances, BankBalanceDTO{BankName: b.BankName(), Amount: b.Amount()})
	}
	return result
}
