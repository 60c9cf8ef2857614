package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	accountingapp "github.com/jackyeh168/qarz_fund/src/internal/application/accounting"
	ledgerapp "github.com/jackyeh168/qarz_fund/src/internal/application/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
)

// ===========================
// 年度帳本
// ===========================

type monthRowJSON struct {
	Month       int        `json:"month"`
	Date        string     `json:"date"`
	Membership  amountJSON `json:"membership"`
	Loan        amountJSON `json:"loan"`
	Installment amountJSON `json:"installment"`
}

type totalsJSON struct {
	Membership  amountJSON `json:"membership"`
	Loan        amountJSON `json:"loan"`
	Installment amountJSON `json:"installment"`
}

func toTotalsJSON(t ledger.Totals) totalsJSON {
	return totalsJSON{
		Membership:  newAmount(t.Membership),
		Loan:        newAmount(t.Loan),
		Installment: newAmount(t.Installment),
	}
}

type yearLedgerResponse struct {
	MemberID             string         `json:"member_id"`
	Year                 string         `json:"year"`
	Months               []monthRowJSON `json:"months"`
	YearTotal            totalsJSON     `json:"year_total"`
	AllTime              totalsJSON     `json:"all_time"`
	Balance              amountJSON     `json:"balance"`
	Settled              bool           `json:"settled"`
	LastInstallmentMonth int            `json:"last_installment_month"`
}

func toYearLedgerResponse(r *accountingapp.YearLedgerResult) yearLedgerResponse {
	months := make([]monthRowJSON, 0, len(r.Months))
	for _, m := range r.Months {
		months = append(months, monthRowJSON{
			Month:       m.Month,
			Date:        m.Date,
			Membership:  newAmount(m.Membership),
			Loan:        newAmount(m.Loan),
			Installment: newAmount(m.Installment),
		})
	}
	return yearLedgerResponse{
		MemberID:             r.MemberID,
		Year:                 r.Year,
		Months:               months,
		YearTotal:            toTotalsJSON(r.YearTotal),
		AllTime:              toTotalsJSON(r.AllTime),
		Balance:              newAmount(r.Balance),
		Settled:              r.Settled,
		LastInstallmentMonth: r.LastInstallmentMonth,
	}
}

type monthInputJSON struct {
	Membership  string `json:"membership"`
	Loan        string `json:"loan"`
	Installment string `json:"installment"`
}

type saveYearLedgerRequest struct {
	Months []monthInputJSON `json:"months" binding:"len=12"`
}

// getYearLedger GET /api/members/:id/ledger[/:year]
//
// 未指定年份時使用上次存檔的年份，沒有則為今年。
func (h *Handler) getYearLedger(c *gin.Context) {
	result, err := h.uc.YearLedger.Execute(accountingapp.GetYearLedgerQuery{
		MemberID: c.Param("id"),
		Year:     c.Param("year"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toYearLedgerResponse(result))
}

// saveYearLedger PUT /api/members/:id/ledger/:year
//
// 破壞性覆寫：該年度所有交易先刪除再依表格寫入。
func (h *Handler) saveYearLedger(c *gin.Context) {
	var req saveYearLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	cmd := accountingapp.SaveYearLedgerCommand{MemberID: c.Param("id"), Year: c.Param("year")}
	for i, m := range req.Months {
		cmd.Months[i] = accountingapp.MonthInput{
			Membership:  m.Membership,
			Loan:        m.Loan,
			Installment: m.Installment,
		}
	}

	result, err := h.uc.SaveYearLedger.Execute(cmd)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":     result.Year,
		"removed":  result.Removed,
		"inserted": result.Inserted,
		"balance":  newAmount(result.Balance),
	})
}

// exportYearLedger GET /api/members/:id/ledger/:year/export
func (h *Handler) exportYearLedger(c *gin.Context) {
	var buf bytes.Buffer
	filename, err := h.uc.ExportYearLedger.Execute(accountingapp.GetYearLedgerQuery{
		MemberID: c.Param("id"),
		Year:     c.Param("year"),
	}, &buf)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ===========================
// 單筆交易
// ===========================

type recordTransactionRequest struct {
	Type        string `json:"type" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type transactionResponse struct {
	TransactionID string     `json:"transaction_id"`
	MemberID      string     `json:"member_id"`
	Date          string     `json:"date"`
	Amount        amountJSON `json:"amount"`
	Type          string     `json:"type"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toTransactionResponse(dto ledgerapp.TransactionDTO) transactionResponse {
	return transactionResponse{
		TransactionID: dto.TransactionID,
		MemberID:      dto.MemberID,
		Date:          dto.Date,
		Amount:        newAmount(dto.Amount),
		Type:          dto.Type,
		Description:   dto.Description,
		CreatedAt:     dto.CreatedAt,
	}
}

// recordTransaction POST /api/members/:id/transactions
func (h *Handler) recordTransaction(c *gin.Context) {
	var req recordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	dto, err := h.uc.RecordTransaction.Execute(ledgerapp.RecordTransactionCommand{
		MemberID:    c.Param("id"),
		Type:        req.Type,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTransactionResponse(*dto))
}

// listTransactions GET /api/members/:id/transactions?prefix=1403/
func (h *Handler) listTransactions(c *gin.Context) {
	dtos, err := h.uc.ListTransactions.Execute(ledgerapp.ListTransactionsQuery{
		MemberID:   c.Param("id"),
		DatePrefix: c.Query("prefix"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]transactionResponse, 0, len(dtos))
	for _, dto := range dtos {
		resp = append(resp, toTransactionResponse(dto))
	}
	c.JSON(http.StatusOK, gin.H{"transactions": resp})
}
