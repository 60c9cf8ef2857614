package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	accountingapp "github.com/jackyeh168/qarz_fund/src/internal/application/accounting"
	"github.com/shopspring/decimal"
)

// ===========================
// 股價與設定
// ===========================

type settingsResponse struct {
	SharePrice        string     `json:"share_price"`
	MonthlyIncrease   string     `json:"monthly_increase"`
	LoanFactor        string     `json:"loan_factor"`
	StartDate         string     `json:"share_price_start_date"`
	FundBalance       amountJSON `json:"fund_balance"`
	BackupEnabled     bool       `json:"backup_enabled"`
	CurrentSharePrice amountJSON `json:"current_share_price"`
}

func toSettingsResponse(dto accountingapp.SettingsDTO) settingsResponse {
	fundBalance, _ := decimal.NewFromString(dto.FundBalance)
	return settingsResponse{
		SharePrice:        dto.SharePrice,
		MonthlyIncrease:   dto.MonthlyIncrease,
		LoanFactor:        dto.LoanFactor,
		StartDate:         dto.StartDate,
		FundBalance:       newAmount(fundBalance),
		BackupEnabled:     dto.BackupEnabled,
		CurrentSharePrice: newAmountInt(dto.CurrentSharePrice),
	}
}

type updateSettingsRequest struct {
	SharePrice      string `json:"share_price"`
	MonthlyIncrease string `json:"monthly_increase"`
	LoanFactor      string `json:"loan_factor"`
	StartDate       string `json:"share_price_start_date"`
	BackupEnabled   *bool  `json:"backup_enabled"`
}

// getSharePrice GET /api/share-price
func (h *Handler) getSharePrice(c *gin.Context) {
	result := h.uc.SharePrice.Execute()
	c.JSON(http.StatusOK, gin.H{
		"price":            newAmountInt(result.Price),
		"base_price":       result.BasePrice,
		"monthly_increase": result.MonthlyIncrease,
		"start_date":       result.StartDate,
	})
}

// getSettings GET /api/settings
func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, toSettingsResponse(h.uc.GetSettings.Execute()))
}

// updateSettings PUT /api/settings
func (h *Handler) updateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	dto, err := h.uc.UpdateSettings.Execute(accountingapp.UpdateSettingsCommand{
		SharePrice:      req.SharePrice,
		MonthlyIncrease: req.MonthlyIncrease,
		LoanFactor:      req.LoanFactor,
		StartDate:       req.StartDate,
		BackupEnabled:   req.BackupEnabled,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(*dto))
}

// ===========================
// 會員股數、額度、彙總
// ===========================

// getShares GET /api/members/:id/shares
func (h *Handler) getShares(c *gin.Context) {
	result, err := h.uc.MemberShares.Execute(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"share_count":    result.ShareCount,
		"total_invested": newAmount(result.TotalInvested),
		"share_price":    newAmountInt(result.SharePrice),
	})
}

// getLoanCapacity GET /api/members/:id/loan-capacity
func (h *Handler) getLoanCapacity(c *gin.Context) {
	result, err := h.uc.LoanCapacity.Execute(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"capacity":         newAmountInt(result.Capacity),
		"share_count":      result.ShareCount,
		"share_price":      newAmountInt(result.SharePrice),
		"loan_factor":      result.LoanFactor.String(),
		"active_principal": newAmount(result.ActivePrincipal),
	})
}

// getMemberSummary GET /api/members/:id/summary
func (h *Handler) getMemberSummary(c *gin.Context) {
	result, err := h.uc.MemberSummary.Execute(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"member_id":  result.MemberID,
		"asset":      newAmount(result.Asset),
		"loan_drawn": newAmount(result.LoanDrawn),
		"paid":       newAmount(result.Paid),
		"debt":       newAmount(result.Debt),
	})
}

// ===========================
// 基金總表與銀行餘額
// ===========================

type fundReportRowResponse struct {
	MemberID  string     `json:"member_id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Asset     amountJSON `json:"asset"`
	LoanDrawn amountJSON `json:"loan_drawn"`
	Paid      amountJSON `json:"paid"`
	Debt      amountJSON `json:"debt"`
}

// getFundReport GET /api/reports/fund
func (h *Handler) getFundReport(c *gin.Context) {
	report, err := h.uc.FundReport.Execute()
	if err != nil {
		h.respondError(c, err)
		return
	}

	rows := make([]fundReportRowResponse, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, fundReportRowResponse{
			MemberID:  r.MemberID,
			Code:      r.Code,
			Name:      r.Name,
			Status:    r.Status,
			Asset:     newAmount(r.Asset),
			LoanDrawn: newAmount(r.LoanDrawn),
			Paid:      newAmount(r.Paid),
			Debt:      newAmount(r.Debt),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":         rows,
		"total_asset":  newAmount(report.TotalAsset),
		"total_loans":  newAmount(report.TotalLoans),
		"total_paid":   newAmount(report.TotalPaid),
		"total_debt":   newAmount(report.TotalDebt),
		"fund_balance": newAmount(report.FundBalance),
		"balance_diff": newAmount(report.BalanceDiff),
	})
}

type bankBalanceEntry struct {
	BankName string `json:"bank_name"`
	Amount   string `json:"amount"`
}

type replaceBankBalancesRequest struct {
	Balances []bankBalanceEntry `json:"balances"`
}

func bankBalancesJSON(result *accountingapp.BankBalancesResult) gin.H {
	balances := make([]gin.H, 0, len(result.Balances))
	for _, b := range result.Balances {
		balances = append(balances, gin.H{"bank_name": b.BankName, "amount": newAmount(b.Amount)})
	}
	return gin.H{"balances": balances, "total": newAmount(result.Total)}
}

// listBankBalances GET /api/fund/bank-balances
func (h *Handler) listBankBalances(c *gin.Context) {
	result, err := h.uc.ListBankBalances.Execute()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bankBalancesJSON(result))
}

// replaceBankBalances PUT /api/fund/bank-balances
func (h *Handler) replaceBankBalances(c *gin.Context) {
	var req replaceBankBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	entries := make([]accountingapp.BankBalanceInput, 0, len(req.Balances))
	for _, b := range req.Balances {
		entries = append(entries, accountingapp.BankBalanceInput{BankName: b.BankName, Amount: b.Amount})
	}

	result, err := h.uc.ReplaceBankBalances.Execute(entries)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bankBalancesJSON(result))
}
