package member

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
)

// MemberDTO 會員資料（Output DTO）
//
// 使用原始類型，不暴露 Domain 對象。
type MemberDTO struct {
	MemberID      string
	Code          string
	Name          string
	PhoneNumber   string
	AccountNumber string
	JoinDate      string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func toMemberDTO(m *member.Member) MemberDTO {
	return MemberDTO{
		MemberID:      m.MemberID().String(),
		Code:          m.Code().String(),
		Name:          m.Name(),
		PhoneNumber:   m.PhoneNumber().String(),
		AccountNumber: m.AccountNumber(),
		JoinDate:      m.JoinDate(),
		Status:        string(m.Status()),
		CreatedAt:     m.CreatedAt(),
		UpdatedAt:     m.UpdatedAt(),
	}
}

func toMemberDTOs(members []*member.Member) []MemberDTO {
	result := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		result = append(result, toMemberDTO(m))
	}
	return result
}
