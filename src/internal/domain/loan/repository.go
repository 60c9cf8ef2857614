package loan

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// LoanRepository 貸款倉儲接口
//
// Write Operations - ctx 必須 non-nil：Save / Update
// Read Operations - ctx 可為 nil
type LoanRepository interface {
	// Save 新增貸款
	Save(ctx shared.TransactionContext, loan *Loan) error

	// Update 更新貸款狀態（找不到 → ErrLoanNotFound）
	Update(ctx shared.TransactionContext, loan *Loan) error

	// FindByID 根據 ID 查找
	FindByID(ctx shared.TransactionContext, id LoanID) (*Loan, error)

	// ListByMember 列出會員貸款；status 為空字串時不過濾
	ListByMember(ctx shared.TransactionContext, memberID member.MemberID, status Status) ([]*Loan, error)

	// List 列出所有貸款；status 為空字串時不過濾
	List(ctx shared.TransactionContext, status Status) ([]*Loan, error)

	// SumActivePrincipal 會員所有 active 貸款本金合計（無資料時為 0）
	SumActivePrincipal(ctx shared.TransactionContext, memberID member.MemberID) (ledger.Amount, error)
}
