package accounting

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/locale"
)

// utf8BOM 讓試算表軟體以 UTF-8 開啟波斯文標題
const utf8BOM = "\ufeff"

// csvHeader 年度帳本 CSV 標題：日期、會費、撥款、還款
var csvHeader = []string{"تاریخ", "عضویت", "وام", "پرداخت"}

const (
	csvTotalLabel   = "جمع کل"
	csvBalanceLabel = "مانده"
)

// ExportYearLedgerUseCase 將會員年度帳本輸出為 CSV
//
// 格式：標題列、12 個月份列、年度合計列、全期餘額列。
// 金額以千分位格式輸出，與畫面顯示一致。
type ExportYearLedgerUseCase struct {
	load *GetYearLedgerUseCase
}

// NewExportYearLedgerUseCase 創建 Use Case 實例
func NewExportYearLedgerUseCase(load *GetYearLedgerUseCase) *ExportYearLedgerUseCase {
	return &ExportYearLedgerUseCase{load: load}
}

// Execute 寫出 CSV，返回建議檔名
func (uc *ExportYearLedgerUseCase) Execute(query GetYearLedgerQuery, w io.Writer) (string, error) {
	ledgerView, err := uc.load.Execute(query)
	if err != nil {
		return "", err
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return "", err
	}

	writer := csv.NewWriter(w)
	records := make([][]string, 0, len(ledgerView.Months)+3)
	records = append(records, csvHeader)
	for _, row := range ledgerView.Months {
		records = append(records, []string{
			row.Date,
			locale.FormatAmount(row.Membership),
			locale.FormatAmount(row.Loan),
			locale.FormatAmount(row.Installment),
		})
	}
	records = append(records,
		[]string{
			csvTotalLabel,
			locale.FormatAmount(ledgerView.YearTotal.Membership),
			locale.FormatAmount(ledgerView.YearTotal.Loan),
			locale.FormatAmount(ledgerView.YearTotal.Installment),
		},
		[]string{csvBalanceLabel, "", "", locale.FormatAmount(ledgerView.Balance)},
	)

	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("write ledger csv: %w", err)
	}

	return fmt.Sprintf("member_%s_%s.csv", ledgerView.MemberID, ledgerView.Year), nil
}
