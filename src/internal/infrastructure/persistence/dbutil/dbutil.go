// Package dbutil 提供各 GORM 倉儲共用的事務上下文與錯誤映射
//
// 倉儲子套件不能引用上層 persistence 套件（上層在遷移時引用子套件），
// 因此事務上下文實作放在這裡，由 persistence.GORMTransactionManager 建立。
package dbutil

import (
	"errors"
	"strings"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"gorm.io/gorm"
)

// 資料表名稱（跨倉儲的連帶刪除會用到）
const (
	TableMembers      = "members"
	TableTransactions = "transactions"
	TableLoans        = "loans"
	TableSettings     = "settings"
	TableNotes        = "notes"
	TableFundBalances = "fund_balances"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// TxContext GORM 事務上下文
//
// 實作 shared.TransactionContext（標記介面），封裝 *gorm.DB，
// 只有 Infrastructure Layer 能透過 GetDB 取得連線。
type TxContext struct {
	db *gorm.DB
}

// NewTxContext 創建 GORM 事務上下文
func NewTxContext(db *gorm.DB) shared.TransactionContext {
	return &TxContext{db: db}
}

// GetDB 獲取 GORM DB 連接（僅供 Infrastructure Layer 內部使用）
func (c *TxContext) GetDB() *gorm.DB {
	return c.db
}

// Conn 從 TransactionContext 取得 DB
//
// ctx 為事務上下文時返回事務 DB，否則返回 fallback（auto-commit 模式）。
func Conn(ctx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if txCtx, ok := ctx.(*TxContext); ok && txCtx != nil {
		return txCtx.GetDB()
	}
	return fallback
}

// ===========================
// 錯誤映射
// ===========================

// IsUniqueConstraintError 檢查是否為唯一約束錯誤
//
// 依賴各驅動的英文錯誤訊息：
// - SQLite: "UNIQUE constraint failed"
// - PostgreSQL: "duplicate key value violates unique constraint"
// - MySQL: "Duplicate entry"
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{
		"UNIQUE constraint failed",
		"duplicate key value",
		"Duplicate entry",
		"violates unique constraint",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsNotFound 是否為查無資料
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// RepositoryError 將資料庫錯誤包裝為 shared.ErrRepository
//
// 已經是 DomainError 的錯誤原樣返回。
func RepositoryError(err error, operation string) error {
	if err == nil {
		return nil
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return shared.ErrRepository.WithContext(
		"operation", operation,
		"database_error", err.Error(),
	)
}

// EscapeLike 跳脫 LIKE 萬用字元，搭配 LikeEscapeClause
//
// 跳脫字元用 '!'：MySQL 字串常值中的反斜線本身需要跳脫，'!' 在三種方言都一樣。
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}

var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// PrefixPattern 日期前綴比對的 LIKE 參數；空前綴匹配全部
func PrefixPattern(prefix string) string {
	return EscapeLike(prefix) + "%"
}

// ContainsPattern 部分比對的 LIKE 參數
func ContainsPattern(keyword string) string {
	return "%" + EscapeLike(keyword) + "%"
}

// LikeEscapeClause LIKE 條件的 ESCAPE 子句
const LikeEscapeClause = ` ESCAPE '!'`
