package member

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// UpdateMemberContact Use Case
// ===========================

// UpdateMemberContactCommand 更新聯絡資訊指令
//
// Name 空白時保留原姓名；PhoneNumber 與 AccountNumber 直接覆寫（可清空）。
// Status 空白時不變更。
type UpdateMemberContactCommand struct {
	MemberID      string
	Name          string
	PhoneNumber   string
	AccountNumber string
	Status        string
}

// UpdateMemberContactUseCase 更新會員聯絡資訊
type UpdateMemberContactUseCase interface {
	Execute(cmd UpdateMemberContactCommand) (*MemberDTO, error)
}

// UpdateMemberContactUseCaseImpl 更新會員聯絡資訊實作
type UpdateMemberContactUseCaseImpl struct {
	memberRepo member.MemberRepository
	txManager  shared.TransactionManager
}

// NewUpdateMemberContactUseCase 創建 Use Case 實例
func NewUpdateMemberContactUseCase(memberRepo member.MemberRepository, txManager shared.TransactionManager) UpdateMemberContactUseCase {
	return &UpdateMemberContactUseCaseImpl{memberRepo: memberRepo, txManager: txManager}
}

// Execute 執行更新
//
// 錯誤處理：
// - MemberID 格式無效 → member.ErrInvalidMemberID
// - 手機格式無效 → member.ErrInvalidPhoneNumberFormat
// - 會員不存在 → member.ErrMemberNotFound
func (uc *UpdateMemberContactUseCaseImpl) Execute(cmd UpdateMemberContactCommand) (*MemberDTO, error) {
	memberID, err := member.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, err
	}

	phoneNumber, err := member.ParseOptionalPhoneNumber(cmd.PhoneNumber)
	if err != nil {
		return nil, err
	}

	var status member.Status
	if cmd.Status != "" {
		if status, err = member.ParseStatus(cmd.Status); err != nil {
			return nil, err
		}
	}

	var updated *member.Member
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		m, err := uc.memberRepo.FindByID(ctx, memberID)
		if err != nil {
			return err
		}

		m.UpdateContact(cmd.Name, phoneNumber, cmd.AccountNumber)
		if status != "" {
			if err := m.ChangeStatus(status); err != nil {
				return err
			}
		}

		updated = m
		return uc.memberRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	dto := toMemberDTO(updated)
	return &dto, nil
}
