package fund

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankBalanceGORM 銀行餘額資料表模型
type BankBalanceGORM struct {
	ID       uint            `gorm:"column:id;primaryKey;autoIncrement"`
	BankName string          `gorm:"column:bank_name;type:varchar(128);not null"`
	Amount   decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null"`
}

// TableName 指定資料表名稱
func (BankBalanceGORM) TableName() string {
	return dbutil.TableFundBalances
}

// GORMBankBalanceRepository GORM 實作的銀行餘額倉儲
type GORMBankBalanceRepository struct {
	db *gorm.DB
}

// NewBankBalanceRepository 創建銀行餘額倉儲
func NewBankBalanceRepository(db *gorm.DB) fund.BankBalanceRepository {
	return &GORMBankBalanceRepository{db: db}
}

// ReplaceAll 刪除既有清單後寫入新清單
//
// 必須在事務中呼叫；呼叫端同時更新 fund_balance 設定。
func (r *GORMBankBalanceRepository) ReplaceAll(ctx shared.TransactionContext, balances []fund.BankBalance) error {
	db := r.getDB(ctx)

	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&BankBalanceGORM{}).Error; err != nil {
		return dbutil.RepositoryError(err, "bank_balance.delete_all")
	}
	if len(balances) == 0 {
		return nil
	}

	models := make([]BankBalanceGORM, 0, len(balances))
	for _, b := range balances {
		models = append(models, BankBalanceGORM{BankName: b.BankName(), Amount: b.Amount()})
	}
	if err := db.Create(&models).Error; err != nil {
		return dbutil.RepositoryError(err, "bank_balance.create")
	}
	return nil
}

// List 依寫入順序列出
func (r *GORMBankBalanceRepository) List(ctx shared.TransactionContext) ([]fund.BankBalance, error) {
	var models []BankBalanceGORM
	if err := r.getDB(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbutil.RepositoryError(err, "bank_balance.list")
	}
	balances := make([]fund.BankBalance, 0, len(models))
	for _, m := range models {
		balances = append(balances, fund.ReconstructBankBalance(m.BankName, m.Amount))
	}
	return balances, nil
}

func (r *GORMBankBalanceRepository) getDB(ctx shared.TransactionContext) *gorm.DB {
	return dbutil.Conn(ctx, r.db)
}
