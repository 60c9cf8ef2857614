package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	loanapp "github.com/jackyeh168/qarz_fund/src/internal/application/loan"
)

type grantLoanRequest struct {
	Principal      string `json:"principal" binding:"required"`
	StartDate      string `json:"start_date"`
	Installments   int    `json:"installments" binding:"required"`
	MonthlyPayment string `json:"monthly_payment"`
	CheckCapacity  bool   `json:"check_capacity"`
	Description    string `json:"description"`
}

type settleLoanRequest struct {
	EndDate string `json:"end_date"`
}

type loanResponse struct {
	LoanID         string     `json:"loan_id"`
	MemberID       string     `json:"member_id"`
	Principal      amountJSON `json:"principal"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date,omitempty"`
	Installments   int        `json:"installments"`
	MonthlyPayment amountJSON `json:"monthly_payment"`
	Profit         amountJSON `json:"profit"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toLoanResponse(dto loanapp.LoanDTO) loanResponse {
	return loanResponse{
		LoanID:         dto.LoanID,
		MemberID:       dto.MemberID,
		Principal:      newAmount(dto.Principal),
		StartDate:      dto.StartDate,
		EndDate:        dto.EndDate,
		Installments:   dto.Installments,
		MonthlyPayment: newAmount(dto.MonthlyPayment),
		Profit:         newAmount(dto.Profit),
		Status:         dto.Status,
		CreatedAt:      dto.CreatedAt,
	}
}

// grantLoan POST /api/members/:id/loans
func (h *Handler) grantLoan(c *gin.Context) {
	var req grantLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	result, err := h.uc.GrantLoan.Execute(loanapp.GrantLoanCommand{
		MemberID:       c.Param("id"),
		Principal:      req.Principal,
		StartDate:      req.StartDate,
		Installments:   req.Installments,
		MonthlyPayment: req.MonthlyPayment,
		CheckCapacity:  req.CheckCapacity,
		Description:    req.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"loan":           toLoanResponse(result.Loan),
		"transaction_id": result.TransactionID,
	})
}

// settleLoan POST /api/loans/:id/settle
func (h *Handler) settleLoan(c *gin.Context) {
	var req settleLoanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondBindError(c, err)
			return
		}
	}

	dto, err := h.uc.SettleLoan.Execute(loanapp.SettleLoanCommand{LoanID: c.Param("id"), EndDate: req.EndDate})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoanResponse(*dto))
}

// listLoans GET /api/loans?member_id=&status=
func (h *Handler) listLoans(c *gin.Context) {
	dtos, err := h.uc.ListLoans.Execute(loanapp.ListLoansQuery{
		MemberID: c.Query("member_id"),
		Status:   c.Query("status"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]loanResponse, 0, len(dtos))
	for _, dto := range dtos {
		resp = append(resp, toLoanResponse(dto))
	}
	c.JSON(http.StatusOK, gin.H{"loans": resp})
}
