package member

import (
	"fmt"
	"strings"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
)

// ===========================
// 會員查詢
// ===========================

// GetMemberUseCase 依 ID 查詢會員
type GetMemberUseCase struct {
	memberRepo member.MemberRepository
}

// NewGetMemberUseCase 創建 Use Case 實例
func NewGetMemberUseCase(memberRepo member.MemberRepository) *GetMemberUseCase {
	return &GetMemberUseCase{memberRepo: memberRepo}
}

// Execute 依 ID 查詢
//
// 錯誤處理：
// - ErrInvalidMemberID: ID 格式無效
// - ErrMemberNotFound: 會員不存在
func (uc *GetMemberUseCase) Execute(id string) (*MemberDTO, error) {
	memberID, err := member.MemberIDFromString(id)
	if err != nil {
		return nil, err
	}

	m, err := uc.memberRepo.FindByID(nil, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	dto := toMemberDTO(m)
	return &dto, nil
}

// FindMemberUseCase 依會員代碼或完整姓名查詢（代碼優先）
type FindMemberUseCase struct {
	memberRepo member.MemberRepository
}

// NewFindMemberUseCase 創建 Use Case 實例
func NewFindMemberUseCase(memberRepo member.MemberRepository) *FindMemberUseCase {
	return &FindMemberUseCase{memberRepo: memberRepo}
}

// Execute 查詢；找不到 → ErrMemberNotFound
func (uc *FindMemberUseCase) Execute(codeOrName string) (*MemberDTO, error) {
	value := strings.TrimSpace(codeOrName)
	if value == "" {
		return nil, member.ErrMemberNotFound.WithContext("query", codeOrName)
	}

	m, err := uc.memberRepo.FindByCodeOrName(nil, value)
	if err != nil {
		return nil, err
	}

	dto := toMemberDTO(m)
	return &dto, nil
}

// ListMembersUseCase 列出或搜尋會員
type ListMembersUseCase struct {
	memberRepo member.MemberRepository
}

// NewListMembersUseCase 創建 Use Case 實例
func NewListMembersUseCase(memberRepo member.MemberRepository) *ListMembersUseCase {
	return &ListMembersUseCase{memberRepo: memberRepo}
}

// Execute keyword 空白時列出全部（依入會日期由新到舊），否則以姓名、代碼、手機部分比對
func (uc *ListMembersUseCase) Execute(keyword string) ([]MemberDTO, error) {
	keyword = strings.TrimSpace(keyword)

	var (
		members []*member.Member
		err     error
	)
	if keyword == "" {
		members, err = uc.memberRepo.List(nil)
	} else {
		members, err = uc.memberRepo.Search(nil, keyword)
	}
	if err != nil {
		return nil, err
	}
	return toMemberDTOs(members), nil
}
