package member

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// MemberID Value Object (Generic Pattern)
// ===========================

// MemberMarker 會員 ID 標記類型
type MemberMarker struct{}

// MemberID 會員 ID 值對象（基於泛型 EntityID）
//
// UUIDv7：字串字典序即建立順序。
// 倉儲以 (created_at, member_id) 判斷「最後新增的會員」。
//
// 使用範例：
//
//	memberID := NewMemberID()
//	memberID, err := MemberIDFromString(str)
type MemberID = shared.EntityID[MemberMarker]

// NewMemberID 生成新的會員 ID
func NewMemberID() MemberID {
	return shared.NewEntityID[MemberMarker]()
}

// MemberIDFromString 從字串解析會員 ID（Checked Constructor）
//
// 返回：
// - error: 解析失敗時返回 ErrInvalidMemberID（附帶 input）
func MemberIDFromString(value string) (MemberID, error) {
	return shared.EntityIDFromString[MemberMarker](value, ErrInvalidMemberID)
}
