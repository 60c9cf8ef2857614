package member

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// Member 領域事件
// ===========================

// MemberRegisteredEvent 會員註冊事件
type MemberRegisteredEvent struct {
	shared.BaseEvent
	code string
	name string
}

// NewMemberRegisteredEvent 創建會員註冊事件
func NewMemberRegisteredEvent(m *Member) *MemberRegisteredEvent {
	return &MemberRegisteredEvent{
		BaseEvent: shared.NewBaseEvent(m.MemberID().String()),
		code:      m.Code().String(),
		name:      m.Name(),
	}
}

// EventType 實現 DomainEvent 介面
func (e *MemberRegisteredEvent) EventType() string {
	return "member.registered"
}

// Code 會員代碼
func (e *MemberRegisteredEvent) Code() string {
	return e.code
}

// Name 會員姓名
func (e *MemberRegisteredEvent) Name() string {
	return e.name
}

// MemberRemovedEvent 會員刪除事件（連同交易、貸款、備註）
type MemberRemovedEvent struct {
	shared.BaseEvent
}

// NewMemberRemovedEvent 創建會員刪除事件
func NewMemberRemovedEvent(id MemberID) *MemberRemovedEvent {
	return &MemberRemovedEvent{BaseEvent: shared.NewBaseEvent(id.String())}
}

// EventType 實現 DomainEvent 介面
func (e *MemberRemovedEvent) EventType() string {
	return "member.removed"
}
