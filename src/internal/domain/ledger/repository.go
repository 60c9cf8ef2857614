package ledger

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// TransactionRepository Interface
// ===========================

// TransactionRepository 帳本交易倉儲接口
//
// 日期過濾一律是字串前綴（LIKE 'prefix%'），空前綴代表全部。
//
// Write Operations - ctx 必須 non-nil：
//   - Save / SaveAll
//   - DeleteByMemberAndPrefix
//
// Read Operations - ctx 可為 nil。
type TransactionRepository interface {
	// Save 新增單筆交易
	Save(ctx shared.TransactionContext, tx *Transaction) error

	// SaveAll 批次新增交易
	SaveAll(ctx shared.TransactionContext, txs []*Transaction) error

	// DeleteByMemberAndPrefix 刪除會員在指定日期前綴內的所有交易，返回刪除筆數
	DeleteByMemberAndPrefix(ctx shared.TransactionContext, memberID member.MemberID, datePrefix string) (int64, error)

	// SumByType 加總會員某類型交易金額（無資料時為 0）
	SumByType(ctx shared.TransactionContext, memberID member.MemberID, txType TransactionType, datePrefix string) (Amount, error)

	// TotalsByMember 單一會員三種類型的合計
	TotalsByMember(ctx shared.TransactionContext, memberID member.MemberID, datePrefix string) (Totals, error)

	// MonthlyTotals 單一會員某年 12 個月的合計
	MonthlyTotals(ctx shared.TransactionContext, memberID member.MemberID, year Year) (YearGrid, error)

	// TotalsForAllMembers 所有會員的合計，key 為會員 ID 字串
	TotalsForAllMembers(ctx shared.TransactionContext) (map[string]Totals, error)

	// ListByMember 列出會員交易（依日期、建立時間排序）
	ListByMember(ctx shared.TransactionContext, memberID member.MemberID, datePrefix string) ([]*Transaction, error)
}
