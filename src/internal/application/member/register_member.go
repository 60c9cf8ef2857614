package member

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/locale"
	"github.com/sirupsen/logrus"
)

// ===========================
// RegisterMember Use Case
// ===========================

// MaxCodeAttempts 自動產生代碼時，遇到已被使用的代碼最多重試次數
const MaxCodeAttempts = 100

// RegisterMemberCommand 註冊會員指令（Input DTO）
//
// 設計原則：
// - 只包含外部輸入數據，使用原始類型（string）
// - 由 Use Case 轉換為 Value Object
type RegisterMemberCommand struct {
	Code          string // 會員代碼；空白時自動產生
	Name          string // 姓名（必填）
	PhoneNumber   string // 手機號碼（選填，伊朗手機格式）
	AccountNumber string // 銀行帳號（選填）
	JoinDate      string // 入會日期 YYYY/MM/DD；空白時為今天
	Status        string // active / inactive；空白時為 active
}

// RegisterMemberResult 註冊會員結果（Output DTO）
type RegisterMemberResult struct {
	MemberID string
	Code     string
}

// RegisterMemberUseCase 註冊會員 Use Case 接口
//
// 業務規則：
// 1. 姓名不能為空
// 2. 手機號碼選填，若提供必須是有效的伊朗手機號碼
// 3. 呼叫端指定的代碼重複 → ErrMembershipCodeTaken（不重試）
// 4. 自動產生的代碼重複 → 取下一個代碼重試，直到 MaxCodeAttempts 次
type RegisterMemberUseCase interface {
	Execute(cmd RegisterMemberCommand) (*RegisterMemberResult, error)
}

// ===========================
// RegisterMemberUseCaseImpl
// ===========================

// RegisterMemberUseCaseImpl 註冊會員 Use Case 實作
//
// 職責：
// 1. 驗證輸入（轉換為 Value Object）
// 2. 產生或檢查會員代碼
// 3. 在事務中保存 Member 聚合
// 4. 發布 MemberRegistered 事件
type RegisterMemberUseCaseImpl struct {
	memberRepo member.MemberRepository
	txManager  shared.TransactionManager
	publisher  shared.EventPublisher
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewRegisterMemberUseCase 創建 RegisterMemberUseCase 實例
func NewRegisterMemberUseCase(
	memberRepo member.MemberRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log logrus.FieldLogger,
) RegisterMemberUseCase {
	return &RegisterMemberUseCaseImpl{
		memberRepo: memberRepo,
		txManager:  txManager,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

// Execute 執行註冊會員 Use Case
//
// 業務流程：
// 1. 驗證輸入並轉換為 Value Object
// 2. 在事務中執行：
//    a. 指定代碼：檢查是否已被使用
//    b. 自動代碼：從最後一位會員的代碼往後找第一個未使用的代碼
//    c. 創建 Member 聚合並保存
// 3. 發布事件並返回結果
//
// 錯誤處理：
// - 輸入驗證失敗 → 返回 Domain 錯誤
// - 代碼已存在 → member.ErrMembershipCodeTaken
// - 自動代碼重試用盡 → member.ErrCodeGenerationExhausted
// - 資料庫錯誤 → shared.ErrRepository
func (uc *RegisterMemberUseCaseImpl) Execute(cmd RegisterMemberCommand) (*RegisterMemberResult, error) {
	// Step 1: 驗證輸入並轉換為 Value Object
	phoneNumber, err := member.ParseOptionalPhoneNumber(cmd.PhoneNumber)
	if err != nil {
		return nil, err
	}

	status, err := member.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	joinDate := shared.NormalizeDigits(cmd.JoinDate)
	if joinDate == "" {
		joinDate = locale.GregorianString(uc.now())
	}

	var explicitCode member.MembershipCode
	if shared.NormalizeDigits(cmd.Code) != "" {
		explicitCode, err = member.NewMembershipCode(cmd.Code)
		if err != nil {
			return nil, err
		}
	}

	// Step 2: 在事務中執行業務邏輯
	var newMember *member.Member

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		code := explicitCode
		if code.IsZero() {
			code, err = uc.nextFreeCode(ctx)
			if err != nil {
				return err
			}
		} else {
			exists, err := uc.memberRepo.ExistsByCode(ctx, code)
			if err != nil {
				return err
			}
			if exists {
				return member.ErrMembershipCodeTaken.WithContext("code", code.String())
			}
		}

		newMember, err = member.NewMember(code, cmd.Name, phoneNumber, cmd.AccountNumber, joinDate, status)
		if err != nil {
			return err
		}

		return uc.memberRepo.Save(ctx, newMember)
	})
	if err != nil {
		return nil, err
	}

	// Step 3: 發布事件（失敗不影響已提交的註冊）
	if err := uc.publisher.Publish(member.NewMemberRegisteredEvent(newMember)); err != nil {
		uc.log.WithError(err).Warn("publish member registered event failed")
	}

	uc.log.WithFields(logrus.Fields{
		"member_id": newMember.MemberID().String(),
		"code":      newMember.Code().String(),
	}).Info("member registered")

	return &RegisterMemberResult{
		MemberID: newMember.MemberID().String(),
		Code:     newMember.Code().String(),
	}, nil
}

// nextFreeCode 從最後一位會員的代碼往後找第一個未使用的代碼
func (uc *RegisterMemberUseCaseImpl) nextFreeCode(ctx shared.TransactionContext) (member.MembershipCode, error) {
	last, ok, err := uc.memberRepo.LastCode(ctx)
	if err != nil {
		return member.MembershipCode{}, err
	}
	if !ok {
		last = member.DefaultLastCode
	}

	candidate := member.NextMembershipCode(last)
	for attempt := 0; attempt < MaxCodeAttempts; attempt++ {
		code, err := member.NewMembershipCode(candidate)
		if err != nil {
			return member.MembershipCode{}, err
		}

		exists, err := uc.memberRepo.ExistsByCode(ctx, code)
		if err != nil {
			return member.MembershipCode{}, err
		}
		if !exists {
			return code, nil
		}
		candidate = member.NextMembershipCode(candidate)
	}

	return member.MembershipCode{}, member.ErrCodeGenerationExhausted.WithContext(
		"last_code", last,
		"attempts", MaxCodeAttempts,
	)
}
