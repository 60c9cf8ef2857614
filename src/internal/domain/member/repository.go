package member

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// MemberRepository Interface
// ===========================

// MemberRepository 會員倉儲接口
//
// 事務管理策略：
//
// Write Operations - ctx 必須 non-nil：
//   - Save(): 新增會員（代碼重複 → ErrMembershipCodeTaken）
//   - Update(): 更新聯絡資訊與狀態
//   - Delete(): 刪除會員及其交易、貸款、備註
//
// Read Operations - ctx 可為 nil：
//   - FindByID / FindByCodeOrName / ExistsByCode / LastCode / List / Search
//
// 注意事項：
// - FindByXXX() 找不到時返回 ErrMemberNotFound
// - LastCode() 依插入順序返回最後一位會員的代碼；無會員時返回 ("", false, nil)
type MemberRepository interface {
	// Save 新增會員
	Save(ctx shared.TransactionContext, member *Member) error

	// Update 更新既有會員（找不到 → ErrMemberNotFound）
	Update(ctx shared.TransactionContext, member *Member) error

	// FindByID 根據會員 ID 查找會員
	FindByID(ctx shared.TransactionContext, id MemberID) (*Member, error)

	// FindByCodeOrName 依會員代碼或完整姓名查找（代碼優先）
	FindByCodeOrName(ctx shared.TransactionContext, value string) (*Member, error)

	// ExistsByCode 檢查會員代碼是否已被使用
	ExistsByCode(ctx shared.TransactionContext, code MembershipCode) (bool, error)

	// LastCode 返回最後新增會員的代碼
	LastCode(ctx shared.TransactionContext) (string, bool, error)

	// List 列出所有會員（依入會日期由新到舊）
	List(ctx shared.TransactionContext) ([]*Member, error)

	// Search 以姓名、代碼、手機做部分比對
	Search(ctx shared.TransactionContext, keyword string) ([]*Member, error)

	// Delete 刪除會員及其所有從屬資料（交易、貸款、備註）
	//
	// 找不到 → ErrMemberNotFound。
	Delete(ctx shared.TransactionContext, id MemberID) error
}
