package member

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/sirupsen/logrus"
)

// RemoveMemberUseCase 刪除會員
//
// 會員的交易、貸款與備註在同一事務中一併刪除；任一步失敗全部回滾。
type RemoveMemberUseCase interface {
	Execute(memberID string) error
}

// RemoveMemberUseCaseImpl 刪除會員實作
type RemoveMemberUseCaseImpl struct {
	memberRepo member.MemberRepository
	txManager  shared.TransactionManager
	publisher  shared.EventPublisher
	log        logrus.FieldLogger
}

// NewRemoveMemberUseCase 創建 Use Case 實例
func NewRemoveMemberUseCase(
	memberRepo member.MemberRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log logrus.FieldLogger,
) RemoveMemberUseCase {
	return &RemoveMemberUseCaseImpl{
		memberRepo: memberRepo,
		txManager:  txManager,
		publisher:  publisher,
		log:        log,
	}
}

// Execute 刪除會員；不存在 → ErrMemberNotFound
func (uc *RemoveMemberUseCaseImpl) Execute(id string) error {
	memberID, err := member.MemberIDFromString(id)
	if err != nil {
		return err
	}

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return uc.memberRepo.Delete(ctx, memberID)
	})
	if err != nil {
		return err
	}

	if err := uc.publisher.Publish(member.NewMemberRemovedEvent(memberID)); err != nil {
		uc.log.WithError(err).Warn("publish member removed event failed")
	}
	uc.log.WithField("member_id", id).Info("member removed")
	return nil
}
