package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/qarz_fund/src/internal/application/mocks"
	"github.com/jackyeh168/qarz_fund/src/internal/bootstrap"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/config"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/qarz_fund/src/internal/interfaces/http/handlers"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// stubMaintenance 不觸碰檔案系統的維護服務
type stubMaintenance struct {
	backupErr error
}

func (s *stubMaintenance) Backup() (string, error) {
	if s.backupErr != nil {
		return "", s.backupErr
	}
	return "backups/finance_backup_20250702_090000.000.db", nil
}

func (s *stubMaintenance) CheckIntegrity() (persistence.IntegrityReport, error) {
	return persistence.IntegrityReport{OK: true, Messages: []string{"ok"}}, nil
}

// ===========================
// Suite
// ===========================

type HandlersSuite struct {
	suite.Suite

	db          *gorm.DB
	router      *gin.Engine
	maintenance *stubMaintenance
	publisher   *mocks.MockEventPublisher
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}

func (s *HandlersSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()

	db, err := persistence.Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, log)
	s.Require().NoError(err)
	s.Require().NoError(persistence.Migrate(db))
	s.db = db

	s.maintenance = &stubMaintenance{}
	s.publisher = new(mocks.MockEventPublisher)
	uc := bootstrap.NewUseCases(bootstrap.NewRepositories(db), s.maintenance, s.publisher, log)
	s.router = handlers.NewRouter(uc, log)
}

func (s *HandlersSuite) TearDownTest() {
	_ = persistence.Close(s.db)
}

func (s *HandlersSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *HandlersSuite) register(name string) string {
	w := s.do(http.MethodPost, "/api/members", map[string]string{"name": name})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.decode(w)["member_id"].(string)
}

func emptyMonths() []map[string]string {
	months := make([]map[string]string, 12)
	for i := range months {
		months[i] = map[string]string{}
	}
	return months
}

func amountValue(body map[string]interface{}, key string) string {
	return body[key].(map[string]interface{})["value"].(string)
}

// ===========================
// 會員
// ===========================

func (s *HandlersSuite) TestMembers_RegisterGetAndNextCode() {
	id := s.register("Ali")

	w := s.do(http.MethodGet, "/api/members/"+id, nil)
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("Ali", body["name"])
	s.Equal("M001", body["code"])
	s.Equal("active", body["status"])
	s.NotEmpty(w.Header().Get(handlers.RequestIDHeader))

	w = s.do(http.MethodGet, "/api/members/next-code", nil)
	s.Equal("M002", s.decode(w)["code"])

	w = s.do(http.MethodGet, "/api/members/next-code?last=M041", nil)
	s.Equal("M042", s.decode(w)["code"])

	w = s.do(http.MethodGet, "/api/members?lookup=M001", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(id, s.decode(w)["member_id"])
}

func (s *HandlersSuite) TestMembers_ErrorStatusCodes() {
	s.register("Ali")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"代碼重複", http.MethodPost, "/api/members", map[string]string{"name": "Sara", "code": "M001"}, http.StatusConflict, "MEMBERSHIP_CODE_TAKEN"},
		{"缺少姓名", http.MethodPost, "/api/members", map[string]string{"phone_number": "09121234567"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"手機格式錯誤", http.MethodPost, "/api/members", map[string]string{"name": "Sara", "phone_number": "12345"}, http.StatusBadRequest, "INVALID_PHONE_NUMBER_FORMAT"},
		{"ID 格式錯誤", http.MethodGet, "/api/members/not-a-uuid", nil, http.StatusBadRequest, "INVALID_MEMBER_ID"},
		{"會員不存在", http.MethodGet, "/api/members/0190f0b4-7d4c-7c4a-9f8e-2b1a3c4d5e6f", nil, http.StatusNotFound, "MEMBER_NOT_FOUND"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(tt.method, tt.path, tt.body)
			s.Equal(tt.status, w.Code, w.Body.String())
			s.Equal(tt.code, s.decode(w)["code"])
		})
	}
}

func (s *HandlersSuite) TestMembers_UpdateContactAndRemove() {
	id := s.register("Ali")

	w := s.do(http.MethodPatch, "/api/members/"+id+"/contact", map[string]string{
		"name": "Ali Rezaei", "phone_number": "09121234567", "status": "inactive",
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("Ali Rezaei", body["name"])
	s.Equal("inactive", body["status"])

	w = s.do(http.MethodGet, "/api/members?q=Reza", nil)
	s.EqualValues(1, s.decode(w)["count"])

	w = s.do(http.MethodDelete, "/api/members/"+id, nil)
	s.Equal(http.StatusNoContent, w.Code)
	w = s.do(http.MethodDelete, "/api/members/"+id, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

// ===========================
// 年度帳本
// ===========================

func (s *HandlersSuite) TestLedger_SaveLoadAndExport() {
	id := s.register("Ali")
	months := emptyMonths()
	months[0] = map[string]string{"membership": "2,000,000", "loan": "3000000"}
	months[2] = map[string]string{"installment": "1000000"}

	w := s.do(http.MethodPut, "/api/members/"+id+"/ledger/1403", map[string]interface{}{"months": months})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	saved := s.decode(w)
	s.EqualValues(3, saved["inserted"])
	s.Equal("2000000", amountValue(saved, "balance"))

	w = s.do(http.MethodGet, "/api/members/"+id+"/ledger/1403", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	ledger := s.decode(w)
	s.Equal("1403", ledger["year"])
	s.Len(ledger["months"], 12)
	balance := ledger["balance"].(map[string]interface{})
	s.Equal("2,000,000", balance["formatted"])
	s.NotEmpty(balance["persian"])

	// 未指定年份時回到上次存檔的年份
	w = s.do(http.MethodGet, "/api/members/"+id+"/ledger", nil)
	s.Equal("1403", s.decode(w)["year"])

	w = s.do(http.MethodGet, "/api/members/"+id+"/ledger/1403/export", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Disposition"), "member_"+id+"_1403.csv")
	s.True(strings.HasPrefix(w.Body.String(), "\ufeff"))
	s.Contains(w.Body.String(), "1403/01/01,\"2,000,000\",\"3,000,000\",0")
}

func (s *HandlersSuite) TestLedger_RejectsMalformedGrid() {
	id := s.register("Ali")

	w := s.do(http.MethodPut, "/api/members/"+id+"/ledger/1403", map[string]interface{}{"months": emptyMonths()[:11]})
	s.Equal(http.StatusBadRequest, w.Code)

	months := emptyMonths()
	months[4] = map[string]string{"membership": "-10"}
	w = s.do(http.MethodPut, "/api/members/"+id+"/ledger/1403", map[string]interface{}{"months": months})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("LEDGER_NEGATIVE_AMOUNT", s.decode(w)["code"])

	w = s.do(http.MethodPut, "/api/members/"+id+"/ledger/03", map[string]interface{}{"months": emptyMonths()})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("LEDGER_INVALID_YEAR", s.decode(w)["code"])
}

// ===========================
// 貸款與單筆交易
// ===========================

func (s *HandlersSuite) TestLoans_CapacityGrantAndSettle() {
	id := s.register("Ali")

	// 沒有股份時額度為 0
	w := s.do(http.MethodPost, "/api/members/"+id+"/loans", map[string]interface{}{
		"principal": "1000000", "installments": 10, "check_capacity": true,
	})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("LOAN_EXCEEDS_CAPACITY", s.decode(w)["code"])

	// 會費 6,000,000 → 3 股 → 額度 12,000,000
	w = s.do(http.MethodPost, "/api/members/"+id+"/transactions", map[string]string{
		"type": "membership_deposit", "amount": "6000000", "date": "1403/01/01",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/members/"+id+"/loan-capacity", nil)
	s.Equal("12000000", amountValue(s.decode(w), "capacity"))

	w = s.do(http.MethodPost, "/api/members/"+id+"/loans", map[string]interface{}{
		"principal": "2000000", "installments": 10, "start_date": "1403/02/01", "check_capacity": true,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	loanID := s.decode(w)["loan"].(map[string]interface{})["loan_id"].(string)
	s.Contains(s.publisher.EventTypes(), "loan.granted")

	w = s.do(http.MethodGet, "/api/members/"+id+"/loan-capacity", nil)
	s.Equal("10000000", amountValue(s.decode(w), "capacity"))

	w = s.do(http.MethodGet, "/api/members/"+id+"/summary", nil)
	s.Equal("2000000", amountValue(s.decode(w), "debt"))

	w = s.do(http.MethodGet, "/api/loans?status=active", nil)
	s.Len(s.decode(w)["loans"], 1)

	w = s.do(http.MethodPost, "/api/loans/"+loanID+"/settle", map[string]string{"end_date": "1404/01/01"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("settled", s.decode(w)["status"])

	w = s.do(http.MethodPost, "/api/loans/"+loanID+"/settle", nil)
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/members/"+id+"/transactions?prefix=1403/", nil)
	s.Len(s.decode(w)["transactions"], 2)
}

func (s *HandlersSuite) TestTransactions_RejectDisbursement() {
	id := s.register("Ali")

	w := s.do(http.MethodPost, "/api/members/"+id+"/transactions", map[string]string{
		"type": "loan_disbursement", "amount": "1000",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("LEDGER_INVALID_TRANSACTION_TYPE", s.decode(w)["code"])
}

// ===========================
// 備註
// ===========================

func (s *HandlersSuite) TestNotes_AddListDelete() {
	id := s.register("Ali")

	w := s.do(http.MethodPost, "/api/members/"+id+"/notes", map[string]string{"month": "1403/05", "text": "late"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	noteID := s.decode(w)["note_id"].(string)

	w = s.do(http.MethodGet, "/api/members/"+id+"/notes?year=1403", nil)
	s.Len(s.decode(w)["notes"], 1)
	w = s.do(http.MethodGet, "/api/members/"+id+"/notes?year=1402", nil)
	s.Len(s.decode(w)["notes"], 0)

	w = s.do(http.MethodDelete, "/api/notes/"+noteID, nil)
	s.Equal(http.StatusNoContent, w.Code)
	w = s.do(http.MethodDelete, "/api/notes/"+noteID, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

// ===========================
// 設定、總表、銀行餘額
// ===========================

func (s *HandlersSuite) TestSettings_GetAndUpdate() {
	w := s.do(http.MethodGet, "/api/share-price", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	price := s.decode(w)["price"].(map[string]interface{})
	s.Equal("2000000", price["value"])
	s.Equal("2,000,000", price["formatted"])

	w = s.do(http.MethodPut, "/api/settings", map[string]string{"share_price": "0"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/settings", map[string]interface{}{
		"share_price": "3000000", "monthly_increase": "0", "loan_factor": "1.5",
		"share_price_start_date": "2024/01/01", "backup_enabled": false,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("3000000", body["share_price"])
	s.Equal("1.5", body["loan_factor"])
	s.Equal(false, body["backup_enabled"])
}

func (s *HandlersSuite) TestFund_BankBalancesFeedReport() {
	id := s.register("Ali")
	months := emptyMonths()
	months[0] = map[string]string{"membership": "5000000", "loan": "1000000"}
	w := s.do(http.MethodPut, "/api/members/"+id+"/ledger/1403", map[string]interface{}{"months": months})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPut, "/api/fund/bank-balances", map[string]interface{}{
		"balances": []map[string]string{
			{"bank_name": "Melli", "amount": "3000000"},
			{"bank_name": "Mellat", "amount": "1000000"},
		},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("4000000", amountValue(s.decode(w), "total"))

	w = s.do(http.MethodGet, "/api/reports/fund", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	report := s.decode(w)
	s.Equal("4000000", amountValue(report, "fund_balance"))
	// 1,000,000 − 5,000,000 − 4,000,000
	s.Equal("-8000000", amountValue(report, "balance_diff"))
	s.Len(report["rows"], 1)

	w = s.do(http.MethodPut, "/api/fund/bank-balances", map[string]interface{}{
		"balances": []map[string]string{{"bank_name": "", "amount": "1"}},
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

// ===========================
// 維護與日曆
// ===========================

func (s *HandlersSuite) TestMaintenance() {
	w := s.do(http.MethodPost, "/api/maintenance/backup", nil)
	s.Equal(http.StatusCreated, w.Code)
	s.Equal("finance_backup_20250702_090000.000.db", s.decode(w)["file"])

	w = s.do(http.MethodGet, "/api/maintenance/integrity", nil)
	s.Equal(true, s.decode(w)["ok"])

	s.maintenance.backupErr = persistence.ErrMaintenanceUnsupported
	w = s.do(http.MethodPost, "/api/maintenance/backup", nil)
	s.Equal(http.StatusNotImplemented, w.Code)
}

func (s *HandlersSuite) TestCalendarToday() {
	w := s.do(http.MethodGet, "/api/calendar/today", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Regexp(regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), body["jalali"])
	s.Regexp(regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), body["gregorian"])
}
