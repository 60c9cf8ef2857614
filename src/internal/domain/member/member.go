package member

import (
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// Status
// ===========================

// Status 會員狀態
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus 解析會員狀態，空字串視為 active
func ParseStatus(value string) (Status, error) {
	switch Status(strings.TrimSpace(value)) {
	case "", StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", ErrInvalidStatus.WithContext("status", value)
	}
}

// ===========================
// Member Aggregate Root
// ===========================

// Member 會員聚合根
//
// 聚合邊界：
// - 身分（MemberID, MembershipCode）
// - 聯絡資訊（姓名、手機、銀行帳號）
// - 入會日期與狀態
//
// 不變量（Invariants）：
// 1. 姓名不能為空
// 2. 會員代碼不能為空，建立後不可變更
// 3. 入會日期格式為 YYYY/MM/DD
// 4. 手機號碼選填，若提供必須有效
// 5. CreatedAt 不可變更；UpdatedAt 在每次狀態變更時更新
//
// 交易與貸款屬於其他聚合，以 MemberID 參照。
type Member struct {
	// 識別欄位
	memberID MemberID
	code     MembershipCode

	// 聯絡資訊
	name          string
	phoneNumber   PhoneNumber
	accountNumber string

	joinDate string
	status   Status

	// 審計欄位
	createdAt time.Time
	updatedAt time.Time
}

// NewMember 創建新會員（Checked Constructor）
//
// 參數：
// - code: 會員代碼（已由呼叫端產生或指定）
// - name: 姓名（去除前後空白後不可為空）
// - phoneNumber: 手機號碼（可為零值）
// - accountNumber: 銀行帳號（選填）
// - joinDate: 入會日期 YYYY/MM/DD
// - status: 會員狀態
func NewMember(
	code MembershipCode,
	name string,
	phoneNumber PhoneNumber,
	accountNumber string,
	joinDate string,
	status Status,
) (*Member, error) {
	if code.IsZero() {
		return nil, ErrInvalidMembershipCode
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if !shared.IsCalendarDate(joinDate) {
		return nil, ErrInvalidJoinDate.WithContext("join_date", joinDate)
	}
	if status != StatusActive && status != StatusInactive {
		return nil, ErrInvalidStatus.WithContext("status", string(status))
	}

	now := time.Now()
	return &Member{
		memberID:      NewMemberID(),
		code:          code,
		name:          name,
		phoneNumber:   phoneNumber,
		accountNumber: strings.TrimSpace(accountNumber),
		joinDate:      joinDate,
		status:        status,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructMember 重建會員聚合（用於從資料庫載入）
//
// 不執行完整業務規則驗證（假設資料庫中的數據已驗證）。
func ReconstructMember(
	memberID MemberID,
	code MembershipCode,
	name string,
	phoneNumber PhoneNumber,
	accountNumber string,
	joinDate string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Member, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	return &Member{
		memberID:      memberID,
		code:          code,
		name:          name,
		phoneNumber:   phoneNumber,
		accountNumber: accountNumber,
		joinDate:      joinDate,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

// ===========================
// Member Aggregate Behavior Methods
// ===========================

// UpdateContact 更新聯絡資訊
//
// 姓名為空字串時保留原姓名；手機與帳號直接覆寫（可清空）。
func (m *Member) UpdateContact(name string, phoneNumber PhoneNumber, accountNumber string) {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		m.name = trimmed
	}
	m.phoneNumber = phoneNumber
	m.accountNumber = strings.TrimSpace(accountNumber)
	m.updatedAt = time.Now()
}

// ChangeStatus 變更會員狀態
func (m *Member) ChangeStatus(status Status) error {
	if status != StatusActive && status != StatusInactive {
		return ErrInvalidStatus.WithContext("status", string(status))
	}
	if m.status == status {
		return nil
	}
	m.status = status
	m.updatedAt = time.Now()
	return nil
}

// ===========================
// Member Aggregate Getters
// ===========================

// MemberID 返回會員 ID
func (m *Member) MemberID() MemberID {
	return m.memberID
}

// Code 返回會員代碼
func (m *Member) Code() MembershipCode {
	return m.code
}

// Name 返回姓名
func (m *Member) Name() string {
	return m.name
}

// PhoneNumber 返回手機號碼（可能為零值）
func (m *Member) PhoneNumber() PhoneNumber {
	return m.phoneNumber
}

// AccountNumber 返回銀行帳號
func (m *Member) AccountNumber() string {
	return m.accountNumber
}

// JoinDate 返回入會日期
func (m *Member) JoinDate() string {
	return m.joinDate
}

// Status 返回狀態
func (m *Member) Status() Status {
	return m.status
}

// IsActive 是否為有效會員
func (m *Member) IsActive() bool {
	return m.status == StatusActive
}

// CreatedAt 返回創建時間
func (m *Member) CreatedAt() time.Time {
	return m.createdAt
}

// UpdatedAt 返回更新時間
func (m *Member) UpdatedAt() time.Time {
	return m.updatedAt
}
