package member

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
)

// ===========================
// GORM Models
// ===========================

// MemberGORM 會員資料表模型
//
// 資料庫約束：
// - member_id: 主鍵（UUIDv7，字串排序即建立順序）
// - membership_code: 唯一索引
// - phone / account_number: 可為空
// - join_date: YYYY/MM/DD 字串
type MemberGORM struct {
	MemberID       string `gorm:"column:member_id;type:varchar(36);primaryKey"`
	MembershipCode string `gorm:"column:membership_code;type:varchar(32);uniqueIndex;not null"`

	Name          string  `gorm:"column:name;type:varchar(255);not null"`
	Phone         *string `gorm:"column:phone;type:varchar(16)"`
	AccountNumber *string `gorm:"column:account_number;type:varchar(64)"`

	JoinDate string `gorm:"column:join_date;type:varchar(10);not null;index"`
	Status   string `gorm:"column:status;type:varchar(16);not null;default:active"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (MemberGORM) TableName() string {
	return dbutil.TableMembers
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 模型
//
// 手機號碼以寬鬆方式重建：資料庫中格式已失效的號碼不阻擋載入。
func (m *MemberGORM) toDomain() (*member.Member, error) {
	memberID, err := member.MemberIDFromString(m.MemberID)
	if err != nil {
		return nil, err
	}

	code, err := member.NewMembershipCode(m.MembershipCode)
	if err != nil {
		return nil, err
	}

	var phoneNumber member.PhoneNumber
	if m.Phone != nil {
		if parsed, parseErr := member.ParseOptionalPhoneNumber(*m.Phone); parseErr == nil {
			phoneNumber = parsed
		}
	}

	status, err := member.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return member.ReconstructMember(
		memberID,
		code,
		m.Name,
		phoneNumber,
		derefString(m.AccountNumber),
		m.JoinDate,
		status,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// toGORM 將 Domain 模型轉換為 GORM 模型（零值 → NULL）
func toGORM(m *member.Member) *MemberGORM {
	return &MemberGORM{
		MemberID:       m.MemberID().String(),
		MembershipCode: m.Code().String(),
		Name:           m.Name(),
		Phone:          nullableString(m.PhoneNumber().String()),
		AccountNumber:  nullableString(m.AccountNumber()),
		JoinDate:       m.JoinDate(),
		Status:         string(m.Status()),
		CreatedAt:      m.CreatedAt(),
		UpdatedAt:      m.UpdatedAt(),
	}
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
