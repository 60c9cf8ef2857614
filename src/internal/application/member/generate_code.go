package member

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/sirupsen/logrus"
)

// GenerateMembershipCodeUseCase 建議下一個會員代碼
//
// 結果僅供顯示於註冊表單，不保證唯一；RegisterMember 會重新檢查。
type GenerateMembershipCodeUseCase struct {
	memberRepo member.MemberRepository
	log        logrus.FieldLogger
}

// NewGenerateMembershipCodeUseCase 創建 Use Case 實例
func NewGenerateMembershipCodeUseCase(memberRepo member.MemberRepository, log logrus.FieldLogger) *GenerateMembershipCodeUseCase {
	return &GenerateMembershipCodeUseCase{memberRepo: memberRepo, log: log}
}

// Execute 產生下一個代碼
//
// last 為 nil 時讀取最後新增會員的代碼（沒有會員時視為 "M000"）。
// 讀取失敗不返回錯誤，而是返回 "M001"。
func (uc *GenerateMembershipCodeUseCase) Execute(last *string) string {
	if last != nil {
		return member.NextMembershipCode(*last)
	}

	code, ok, err := uc.memberRepo.LastCode(nil)
	if err != nil {
		uc.log.WithError(err).Warn("read last membership code failed")
		return member.FallbackCode
	}
	if !ok {
		code = member.DefaultLastCode
	}
	return member.NextMembershipCode(code)
}
