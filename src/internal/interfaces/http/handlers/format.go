package handlers

import (
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/locale"
	"github.com/shopspring/decimal"
)

// amountJSON 金額回應：原始值、千分位、波斯數字
type amountJSON struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
	Persian   string `json:"persian"`
}

func newAmount(d decimal.Decimal) amountJSON {
	return amountJSON{
		Value:     d.String(),
		Formatted: locale.FormatAmount(d),
		Persian:   locale.FormatPersian(d.IntPart()),
	}
}

func newAmountInt(n int64) amountJSON {
	return newAmount(decimal.NewFromInt(n))
}
