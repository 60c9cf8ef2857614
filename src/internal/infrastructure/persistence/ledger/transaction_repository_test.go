package ledger

import (
	"testing"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// 測試輔助函數
// ===========================

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect to test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// in-memory 資料庫每個連線各自獨立
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&TransactionGORM{}))
	return db
}

func newTx(t *testing.T, memberID member.MemberID, date string, amount int64, txType ledger.TransactionType) *ledger.Transaction {
	t.Helper()
	d, err := ledger.NewDate(date)
	require.NoError(t, err)
	tx, err := ledger.NewTransaction(memberID, d, ledger.MustAmount(amount), txType, "test")
	require.NoError(t, err)
	return tx
}

// ===========================
// 測試
// ===========================

func TestTransactionRepository_SaveAndList(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	memberID := member.NewMemberID()
	first := newTx(t, memberID, "1403/02/01", 500, ledger.TypeMembershipDeposit)
	second := newTx(t, memberID, "1403/01/15", 700, ledger.TypeInstallmentPayment)

	// Act
	require.NoError(t, repo.SaveAll(dbutil.NewTxContext(db), []*ledger.Transaction{first, second}))
	txs, err := repo.ListByMember(nil, memberID, "")

	// Assert
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "1403/01/15", txs[0].Date().String())
	assert.Equal(t, ledger.TypeInstallmentPayment, txs[0].Type())
	assert.True(t, txs[1].Amount().Equals(ledger.MustAmount(500)))
	assert.Equal(t, "test", txs[1].Description())
}

func TestTransactionRepository_SaveAll_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	assert.NoError(t, repo.SaveAll(nil, nil))
}

func TestTransactionRepository_SumByType_NoRowsIsZero(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	total, err := repo.SumByType(nil, member.NewMemberID(), ledger.TypeMembershipDeposit, "")

	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestTransactionRepository_SumsAndPrefixes(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	memberID := member.NewMemberID()
	other := member.NewMemberID()
	require.NoError(t, repo.SaveAll(nil, []*ledger.Transaction{
		newTx(t, memberID, "1402/12/01", 1000, ledger.TypeMembershipDeposit),
		newTx(t, memberID, "1403/01/01", 2000, ledger.TypeMembershipDeposit),
		newTx(t, memberID, "1403/01/20", 300, ledger.TypeMembershipDeposit),
		newTx(t, memberID, "1403/03/01", 9000, ledger.TypeLoanDisbursement),
		newTx(t, memberID, "1403/04/01", 1500, ledger.TypeInstallmentPayment),
		newTx(t, other, "1403/01/01", 777, ledger.TypeMembershipDeposit),
	}))

	// Act & Assert: 全期
	all, err := repo.SumByType(nil, memberID, ledger.TypeMembershipDeposit, "")
	require.NoError(t, err)
	assert.True(t, all.Equals(ledger.MustAmount(3300)))

	// 年前綴
	year, err := repo.SumByType(nil, memberID, ledger.TypeMembershipDeposit, "1403/")
	require.NoError(t, err)
	assert.True(t, year.Equals(ledger.MustAmount(2300)))

	// 月前綴
	month, err := repo.TotalsByMember(nil, memberID, "1403/01")
	require.NoError(t, err)
	assert.True(t, month.Membership.Equal(decimal.NewFromInt(2300)))
	assert.True(t, month.Loan.IsZero())

	totals, err := repo.TotalsByMember(nil, memberID, "")
	require.NoError(t, err)
	assert.True(t, totals.Loan.Equal(decimal.NewFromInt(9000)))
	assert.True(t, totals.Installment.Equal(decimal.NewFromInt(1500)))
	assert.True(t, totals.Balance().Equal(decimal.NewFromInt(7500)))
}

func TestTransactionRepository_MonthlyTotals(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	memberID := member.NewMemberID()
	require.NoError(t, repo.SaveAll(nil, []*ledger.Transaction{
		newTx(t, memberID, "1403/01/01", 100, ledger.TypeMembershipDeposit),
		newTx(t, memberID, "1403/01/28", 50, ledger.TypeMembershipDeposit),
		newTx(t, memberID, "1403/12/01", 400, ledger.TypeInstallmentPayment),
		newTx(t, memberID, "1404/01/01", 999, ledger.TypeMembershipDeposit),
	}))
	year, err := ledger.NewYear("1403")
	require.NoError(t, err)

	// Act
	grid, err := repo.MonthlyTotals(nil, memberID, year)

	// Assert
	require.NoError(t, err)
	assert.True(t, grid.Months[0].Membership.Equal(decimal.NewFromInt(150)))
	assert.True(t, grid.Months[11].Installment.Equal(decimal.NewFromInt(400)))
	assert.True(t, grid.Months[5].Membership.IsZero())
	assert.Equal(t, 12, grid.LastInstallmentMonth())
	assert.True(t, grid.Total().Membership.Equal(decimal.NewFromInt(150)))
}

func TestTransactionRepository_DeleteByMemberAndPrefix(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	memberID := member.NewMemberID()
	other := member.NewMemberID()
	require.NoError(t, repo.SaveAll(nil, []*ledger.Transaction{
		newTx(t, memberID, "1403/01/01", 100, ledger.TypeMembershipDeposit),
		newTx(t, memberID, "1403/05/01", 100, ledger.TypeLoanDisbursement),
		newTx(t, memberID, "1402/05/01", 100, ledger.TypeMembershipDeposit),
		newTx(t, other, "1403/01/01", 100, ledger.TypeMembershipDeposit),
	}))

	// Act
	removed, err := repo.DeleteByMemberAndPrefix(dbutil.NewTxContext(db), memberID, "1403/")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	remaining, err := repo.ListByMember(nil, memberID, "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "1402/05/01", remaining[0].Date().String())

	otherTxs, err := repo.ListByMember(nil, other, "1403/")
	require.NoError(t, err)
	assert.Len(t, otherTxs, 1, "其他會員不受影響")
}

func TestTransactionRepository_TotalsForAllMembers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	a := member.NewMemberID()
	b := member.NewMemberID()
	require.NoError(t, repo.SaveAll(nil, []*ledger.Transaction{
		newTx(t, a, "1403/01/01", 100, ledger.TypeMembershipDeposit),
		newTx(t, a, "1403/02/01", 40, ledger.TypeLoanDisbursement),
		newTx(t, b, "1403/01/01", 60, ledger.TypeInstallmentPayment),
	}))

	totals, err := repo.TotalsForAllMembers(nil)

	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.True(t, totals[a.String()].Membership.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals[a.String()].Loan.Equal(decimal.NewFromInt(40)))
	assert.True(t, totals[b.String()].Installment.Equal(decimal.NewFromInt(60)))
	assert.True(t, totals[b.String()].Membership.IsZero())
}

func TestTransactionRepository_FractionalAmountsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	memberID := member.NewMemberID()
	d, _ := ledger.NewDate("1403/01/01")
	amount, err := ledger.NewAmount(decimal.RequireFromString("1250.5"))
	require.NoError(t, err)
	tx, err := ledger.NewTransaction(memberID, d, amount, ledger.TypeMembershipDeposit, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(nil, tx))

	sum, err := repo.SumByType(nil, memberID, ledger.TypeMembershipDeposit, "1403/")

	require.NoError(t, err)
	assert.True(t, sum.Decimal().Equal(decimal.RequireFromString("1250.5")))
}

func TestMonthOf(t *testing.T) {
	tests := []struct {
		date string
		want int
		ok   bool
	}{
		{"1403/01/01", 1, true},
		{"1403/12", 12, true},
		{"1403/13/01", 0, false},
		{"1403", 0, false},
	}
	for _, tt := range tests {
		got, ok := monthOf(tt.date)
		assert.Equal(t, tt.want, got, tt.date)
		assert.Equal(t, tt.ok, ok, tt.date)
	}
}
