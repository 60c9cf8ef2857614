package fund

import (
	"strings"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BankBalance 單一銀行帳戶餘額
//
// 銀行餘額合計寫入 fund_balance 設定，只用於對帳；金額可為負（透支）。
type BankBalance struct {
	bankName string
	amount   decimal.Decimal
}

// NewBankBalance 建構函數
//
// 銀行名稱與金額皆不可為空；金額接受千分位與波斯數字。
func NewBankBalance(bankName, amount string) (BankBalance, error) {
	name := strings.TrimSpace(bankName)
	normalized := shared.NormalizeDigits(amount)
	if name == "" || normalized == "" {
		return BankBalance{}, ErrInvalidBankBalance.WithContext("bank_name", bankName, "amount", amount)
	}
	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return BankBalance{}, ErrInvalidBankBalance.WithContext("bank_name", bankName, "amount", amount)
	}
	return BankBalance{bankName: name, amount: value}, nil
}

// ReconstructBankBalance 從資料庫重建
func ReconstructBankBalance(bankName string, amount decimal.Decimal) BankBalance {
	return BankBalance{bankName: bankName, amount: amount}
}

// BankName 銀行名稱
func (b BankBalance) BankName() string { return b.bankName }

// Amount 餘額
func (b BankBalance) Amount() decimal.Decimal { return b.amount }

// TotalBankBalance 所有銀行餘額合計
func TotalBankBalance(balances []BankBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.amount)
	}
	return total
}
