// Package handlers 提供給前端畫面使用的 gin HTTP 介面
//
// 每個路由只做請求解析、呼叫 Use Case、回應格式化；業務規則不在這一層。
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	accountingapp "github.com/jackyeh168/qarz_fund/src/internal/application/accounting"
	ledgerapp "github.com/jackyeh168/qarz_fund/src/internal/application/ledger"
	loanapp "github.com/jackyeh168/qarz_fund/src/internal/application/loan"
	memberapp "github.com/jackyeh168/qarz_fund/src/internal/application/member"
	noteapp "github.com/jackyeh168/qarz_fund/src/internal/application/note"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence"
	"github.com/sirupsen/logrus"
)

// Maintenance 資料庫備份與完整性檢查
type Maintenance interface {
	Backup() (string, error)
	CheckIntegrity() (persistence.IntegrityReport, error)
}

// UseCases HTTP 層依賴的所有 Use Case
type UseCases struct {
	// 會員
	RegisterMember memberapp.RegisterMemberUseCase
	GenerateCode   *memberapp.GenerateMembershipCodeUseCase
	UpdateContact  memberapp.UpdateMemberContactUseCase
	GetMember      *memberapp.GetMemberUseCase
	FindMember     *memberapp.FindMemberUseCase
	ListMembers    *memberapp.ListMembersUseCase
	RemoveMember   memberapp.RemoveMemberUseCase

	// 股價、設定、彙總
	SharePrice     *accountingapp.GetSharePriceUseCase
	GetSettings    *accountingapp.GetSettingsUseCase
	UpdateSettings accountingapp.UpdateSettingsUseCase
	MemberShares   *accountingapp.GetMemberSharesUseCase
	LoanCapacity   *accountingapp.GetLoanCapacityUseCase
	MemberSummary  *accountingapp.GetMemberSummaryUseCase
	FundReport     *accountingapp.GetFundReportUseCase

	// 年度帳本
	YearLedger       *accountingapp.GetYearLedgerUseCase
	SaveYearLedger   accountingapp.SaveYearLedgerUseCase
	ExportYearLedger *accountingapp.ExportYearLedgerUseCase

	// 銀行餘額
	ReplaceBankBalances accountingapp.ReplaceBankBalancesUseCase
	ListBankBalances    *accountingapp.ListBankBalancesUseCase

	// 貸款與單筆交易
	GrantLoan         loanapp.GrantLoanUseCase
	SettleLoan        loanapp.SettleLoanUseCase
	ListLoans         *loanapp.ListLoansUseCase
	RecordTransaction ledgerapp.RecordTransactionUseCase
	ListTransactions  *ledgerapp.ListTransactionsUseCase

	// 備註
	AddNote    noteapp.AddNoteUseCase
	ListNotes  *noteapp.ListNotesUseCase
	DeleteNote *noteapp.DeleteNoteUseCase

	Maintenance Maintenance
}

// Handler 持有 Use Case 與請求共用的依賴
type Handler struct {
	uc  *UseCases
	log logrus.FieldLogger
	now func() time.Time
}

// NewRouter 建立 gin Engine 並註冊所有 /api 路由
func NewRouter(uc *UseCases, log logrus.FieldLogger) *gin.Engine {
	return newRouter(uc, log, time.Now)
}

func newRouter(uc *UseCases, log logrus.FieldLogger, now func() time.Time) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	h := &Handler{uc: uc, log: log, now: now}
	api := r.Group("/api")
	registerMemberRoutes(api, h)
	registerAccountingRoutes(api, h)
	registerLedgerRoutes(api, h)
	registerLoanRoutes(api, h)
	registerNoteRoutes(api, h)
	registerMaintenanceRoutes(api, h)
	return r
}

func registerMemberRoutes(rg *gin.RouterGroup, h *Handler) {
	members := rg.Group("/members")
	{
		members.GET("", h.listMembers)
		members.POST("", h.registerMember)
		members.GET("/next-code", h.nextMembershipCode)
		members.GET("/:id", h.getMember)
		members.DELETE("/:id", h.removeMember)
		members.PATCH("/:id/contact", h.updateContact)
	}
}

func registerAccountingRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/share-price", h.getSharePrice)
	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.updateSettings)
	rg.GET("/reports/fund", h.getFundReport)
	rg.GET("/fund/bank-balances", h.listBankBalances)
	rg.PUT("/fund/bank-balances", h.replaceBankBalances)

	members := rg.Group("/members/:id")
	{
		members.GET("/shares", h.getShares)
		members.GET("/loan-capacity", h.getLoanCapacity)
		members.GET("/summary", h.getMemberSummary)
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, h *Handler) {
	members := rg.Group("/members/:id")
	{
		members.GET("/ledger", h.getYearLedger)
		members.GET("/ledger/:year", h.getYearLedger)
		members.PUT("/ledger/:year", h.saveYearLedger)
		members.GET("/ledger/:year/export", h.exportYearLedger)
		members.GET("/transactions", h.listTransactions)
		members.POST("/transactions", h.recordTransaction)
	}
}

func registerLoanRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/loans", h.listLoans)
	rg.POST("/loans/:id/settle", h.settleLoan)
	rg.POST("/members/:id/loans", h.grantLoan)
}

func registerNoteRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/members/:id/notes", h.listNotes)
	rg.POST("/members/:id/notes", h.addNote)
	rg.DELETE("/notes/:id", h.deleteNote)
}

func registerMaintenanceRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/maintenance/backup", h.backup)
	rg.GET("/maintenance/integrity", h.checkIntegrity)
	rg.GET("/calendar/today", h.calendarToday)
}
