package loan

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/loan"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMLoanRepository GORM 實作的貸款倉儲
type GORMLoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 創建貸款倉儲
func NewLoanRepository(db *gorm.DB) loan.LoanRepository {
	return &GORMLoanRepository{db: db}
}

// Save 新增貸款
func (r *GORMLoanRepository) Save(ctx shared.TransactionContext, l *loan.Loan) error {
	if err := r.getDB(ctx).Create(toGORM(l)).Error; err != nil {
		return dbutil.RepositoryError(err, "loan.save")
	}
	return nil
}

// Update 更新狀態與結清日期
func (r *GORMLoanRepository) Update(ctx shared.TransactionContext, l *loan.Loan) error {
	model := toGORM(l)
	result := r.getDB(ctx).
		Model(&LoanGORM{}).
		Where("loan_id = ?", model.LoanID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"end_date":   model.EndDate,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return dbutil.RepositoryError(result.Error, "loan.update")
	}
	if result.RowsAffected == 0 {
		return loan.ErrLoanNotFound.WithContext("loan_id", model.LoanID)
	}
	return nil
}

// FindByID 根據 ID 查找
func (r *GORMLoanRepository) FindByID(ctx shared.TransactionContext, id loan.LoanID) (*loan.Loan, error) {
	var model LoanGORM
	if err := r.getDB(ctx).Where("loan_id = ?", id.String()).First(&model).Error; err != nil {
		if dbutil.IsNotFound(err) {
			return nil, loan.ErrLoanNotFound.WithContext("loan_id", id.String())
		}
		return nil, dbutil.RepositoryError(err, "loan.find_by_id")
	}
	return model.toDomain()
}

// ListByMember 列出會員貸款（依撥款日期由新到舊）
func (r *GORMLoanRepository) ListByMember(ctx shared.TransactionContext, memberID member.MemberID, status loan.Status) ([]*loan.Loan, error) {
	query := r.getDB(ctx).Where("member_id = ?", memberID.String())
	return r.list(query, status, "loan.list_by_member")
}

// List 列出所有貸款
func (r *GORMLoanRepository) List(ctx shared.TransactionContext, status loan.Status) ([]*loan.Loan, error) {
	return r.list(r.getDB(ctx), status, "loan.list")
}

func (r *GORMLoanRepository) list(query *gorm.DB, status loan.Status, operation string) ([]*loan.Loan, error) {
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var models []LoanGORM
	if err := query.Order("start_date DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, dbutil.RepositoryError(err, operation)
	}

	loans := make([]*loan.Loan, 0, len(models))
	for i := range models {
		l, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, nil
}

// SumActivePrincipal 會員 active 貸款本金合計
func (r *GORMLoanRepository) SumActivePrincipal(ctx shared.TransactionContext, memberID member.MemberID) (ledger.Amount, error) {
	var total decimal.Decimal
	err := r.getDB(ctx).
		Model(&LoanGORM{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("member_id = ? AND status = ?", memberID.String(), string(loan.StatusActive)).
		Row().
		Scan(&total)
	if err != nil {
		return ledger.Amount{}, dbutil.RepositoryError(err, "loan.sum_active_principal")
	}
	return ledger.NewAmount(total)
}

func (r *GORMLoanRepository) getDB(ctx shared.TransactionContext) *gorm.DB {
	return dbutil.Conn(ctx, r.db)
}
