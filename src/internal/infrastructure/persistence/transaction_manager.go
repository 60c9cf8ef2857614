package persistence

import (
	"fmt"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionManager 實作
// ===========================

// GORMTransactionManager 以 GORM 事務實作 shared.TransactionManager
//
// 保證：
// 1. fn 返回 nil → 提交
// 2. fn 返回錯誤 → 回滾，原樣返回 fn 的錯誤
// 3. fn panic → 回滾後重新 panic（由調用者處理）
//
// 不支援巢狀事務：fn 內請使用傳入的 ctx，不要再呼叫 InTransaction。
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一事務中執行 fn
func (m *GORMTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) (err error) {
	tx := m.db.Begin()
	if tx.Error != nil {
		return dbutil.RepositoryError(tx.Error, "transaction.begin")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err = fn(dbutil.NewTxContext(tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if commitErr := tx.Commit().Error; commitErr != nil {
		return dbutil.RepositoryError(commitErr, "transaction.commit")
	}
	return nil
}
