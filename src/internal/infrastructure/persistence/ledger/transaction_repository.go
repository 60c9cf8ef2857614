package ledger

import (
	"strconv"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// saveBatchSize 批次新增的每批筆數（一年最多 36 筆）
const saveBatchSize = 100

// dateLike 日期前綴條件
const dateLike = "date LIKE ?" + dbutil.LikeEscapeClause

// GORMTransactionRepository GORM 實作的帳本交易倉儲
//
// 加總一律在資料庫端以 COALESCE(SUM(amount), 0) 完成，
// 沒有資料時得到 0 而不是 NULL。
type GORMTransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 創建帳本交易倉儲
func NewTransactionRepository(db *gorm.DB) ledger.TransactionRepository {
	return &GORMTransactionRepository{db: db}
}

// Save 新增單筆交易
func (r *GORMTransactionRepository) Save(ctx shared.TransactionContext, tx *ledger.Transaction) error {
	if err := r.getDB(ctx).Create(toGORM(tx)).Error; err != nil {
		return dbutil.RepositoryError(err, "transaction.save")
	}
	return nil
}

// SaveAll 批次新增交易；空清單不執行任何 SQL
func (r *GORMTransactionRepository) SaveAll(ctx shared.TransactionContext, txs []*ledger.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	models := make([]*TransactionGORM, 0, len(txs))
	for _, tx := range txs {
		models = append(models, toGORM(tx))
	}
	if err := r.getDB(ctx).CreateInBatches(models, saveBatchSize).Error; err != nil {
		return dbutil.RepositoryError(err, "transaction.save_all")
	}
	return nil
}

// DeleteByMemberAndPrefix 刪除會員在日期前綴內的交易
func (r *GORMTransactionRepository) DeleteByMemberAndPrefix(ctx shared.TransactionContext, memberID member.MemberID, datePrefix string) (int64, error) {
	result := r.getDB(ctx).
		Where("member_id = ?", memberID.String()).
		Where(dateLike, dbutil.PrefixPattern(datePrefix)).
		Delete(&TransactionGORM{})
	if result.Error != nil {
		return 0, dbutil.RepositoryError(result.Error, "transaction.delete_by_prefix")
	}
	return result.RowsAffected, nil
}

// SumByType 加總會員某類型交易
func (r *GORMTransactionRepository) SumByType(ctx shared.TransactionContext, memberID member.MemberID, txType ledger.TransactionType, datePrefix string) (ledger.Amount, error) {
	var total decimal.Decimal
	err := r.getDB(ctx).
		Model(&TransactionGORM{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("member_id = ? AND type = ?", memberID.String(), txType.String()).
		Where(dateLike, dbutil.PrefixPattern(datePrefix)).
		Row().
		Scan(&total)
	if err != nil {
		return ledger.Amount{}, dbutil.RepositoryError(err, "transaction.sum_by_type")
	}
	return ledger.NewAmount(total)
}

// TotalsByMember 單一會員三種類型的合計
func (r *GORMTransactionRepository) TotalsByMember(ctx shared.TransactionContext, memberID member.MemberID, datePrefix string) (ledger.Totals, error) {
	var rows []typeTotal
	err := r.getDB(ctx).
		Model(&TransactionGORM{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("member_id = ?", memberID.String()).
		Where(dateLike, dbutil.PrefixPattern(datePrefix)).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return ledger.Totals{}, dbutil.RepositoryError(err, "transaction.totals_by_member")
	}

	totals := zeroTotals()
	for _, row := range rows {
		totals = totals.Add(ledger.TransactionType(row.Type), row.Total)
	}
	return totals, nil
}

// MonthlyTotals 單一會員某年 12 個月的合計
//
// 以 (date, type) 分組後在程式端取月份，避免依賴各方言的字串函數。
func (r *GORMTransactionRepository) MonthlyTotals(ctx shared.TransactionContext, memberID member.MemberID, year ledger.Year) (ledger.YearGrid, error) {
	var rows []typeTotal
	err := r.getDB(ctx).
		Model(&TransactionGORM{}).
		Select("date, type, COALESCE(SUM(amount), 0) AS total").
		Where("member_id = ?", memberID.String()).
		Where(dateLike, dbutil.PrefixPattern(year.Prefix())).
		Group("date, type").
		Scan(&rows).Error
	if err != nil {
		return ledger.YearGrid{}, dbutil.RepositoryError(err, "transaction.monthly_totals")
	}

	var grid ledger.YearGrid
	for i := range grid.Months {
		grid.Months[i] = zeroTotals()
	}
	for _, row := range rows {
		month, ok := monthOf(row.Date)
		if !ok {
			continue
		}
		grid.Months[month-1] = grid.Months[month-1].Add(ledger.TransactionType(row.Type), row.Total)
	}
	return grid, nil
}

// TotalsForAllMembers 所有會員的合計
func (r *GORMTransactionRepository) TotalsForAllMembers(ctx shared.TransactionContext) (map[string]ledger.Totals, error) {
	var rows []typeTotal
	err := r.getDB(ctx).
		Model(&TransactionGORM{}).
		Select("member_id, type, COALESCE(SUM(amount), 0) AS total").
		Group("member_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, dbutil.RepositoryError(err, "transaction.totals_for_all")
	}

	result := make(map[string]ledger.Totals)
	for _, row := range rows {
		totals, ok := result[row.MemberID]
		if !ok {
			totals = zeroTotals()
		}
		result[row.MemberID] = totals.Add(ledger.TransactionType(row.Type), row.Total)
	}
	return result, nil
}

// ListByMember 列出會員交易（依日期、建立順序）
func (r *GORMTransactionRepository) ListByMember(ctx shared.TransactionContext, memberID member.MemberID, datePrefix string) ([]*ledger.Transaction, error) {
	var models []TransactionGORM
	err := r.getDB(ctx).
		Where("member_id = ?", memberID.String()).
		Where(dateLike, dbutil.PrefixPattern(datePrefix)).
		Order("date ASC, created_at ASC, transaction_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, dbutil.RepositoryError(err, "transaction.list_by_member")
	}

	txs := make([]*ledger.Transaction, 0, len(models))
	for i := range models {
		tx, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (r *GORMTransactionRepository) getDB(ctx shared.TransactionContext) *gorm.DB {
	return dbutil.Conn(ctx, r.db)
}

func zeroTotals() ledger.Totals {
	return ledger.Totals{Membership: decimal.Zero, Loan: decimal.Zero, Installment: decimal.Zero}
}

// monthOf 從 "YYYY/MM/..." 取出月份
func monthOf(date string) (int, bool) {
	if len(date) < 7 {
		return 0, false
	}
	month, err := strconv.Atoi(date[5:7])
	if err != nil || month < 1 || month > ledger.MonthsPerYear {
		return 0, false
	}
	return month, true
}
