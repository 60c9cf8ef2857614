package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// Member Aggregate Tests
// ===========================

func mustCode(t *testing.T, value string) MembershipCode {
	t.Helper()
	code, err := NewMembershipCode(value)
	require.NoError(t, err)
	return code
}

// Test 1: Create new member successfully
func TestNewMember_ValidInput_Success(t *testing.T) {
	// Arrange
	code := mustCode(t, "M006")
	phone, _ := NewPhoneNumber("09123456789")

	// Act
	m, err := NewMember(code, "  علی رضایی ", phone, " 6037-1234 ", "2024/03/20", StatusActive)

	// Assert
	require.NoError(t, err)
	assert.False(t, m.MemberID().IsEmpty())
	assert.Equal(t, "M006", m.Code().String())
	assert.Equal(t, "علی رضایی", m.Name(), "姓名應去除前後空白")
	assert.Equal(t, "6037-1234", m.AccountNumber())
	assert.True(t, m.PhoneNumber().Equals(phone))
	assert.Equal(t, "2024/03/20", m.JoinDate())
	assert.True(t, m.IsActive())
	assert.False(t, m.CreatedAt().IsZero())
}

// Test 2: Validation failures
func TestNewMember_InvalidInput_ReturnsError(t *testing.T) {
	code := mustCode(t, "M001")

	tests := []struct {
		name     string
		code     MembershipCode
		fullName string
		joinDate string
		status   Status
		wantErr  error
	}{
		{"空姓名", code, "   ", "2024/01/01", StatusActive, ErrInvalidName},
		{"空代碼", MembershipCode{}, "Ali", "2024/01/01", StatusActive, ErrInvalidMembershipCode},
		{"日期未補零", code, "Ali", "2024/1/01", StatusActive, ErrInvalidJoinDate},
		{"日期使用橫線", code, "Ali", "2024-01-01", StatusActive, ErrInvalidJoinDate},
		{"月份超出範圍", code, "Ali", "2024/13/01", StatusActive, ErrInvalidJoinDate},
		{"未知狀態", code, "Ali", "2024/01/01", Status("frozen"), ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMember(tt.code, tt.fullName, PhoneNumber{}, "", tt.joinDate, tt.status)

			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Test 3: Jalali month-end dates are accepted as strings
func TestNewMember_JalaliDate_Accepted(t *testing.T) {
	m, err := NewMember(mustCode(t, "M002"), "Sara", PhoneNumber{}, "", "1403/02/31", StatusInactive)

	require.NoError(t, err)
	assert.Equal(t, "1403/02/31", m.JoinDate())
	assert.False(t, m.IsActive())
}

// Test 4: Update contact
func TestMember_UpdateContact(t *testing.T) {
	// Arrange
	m, _ := NewMember(mustCode(t, "M003"), "Reza", PhoneNumber{}, "111", "2024/01/01", StatusActive)
	before := m.UpdatedAt()
	time.Sleep(time.Millisecond)
	phone, _ := NewPhoneNumber("+989121112233")

	// Act
	m.UpdateContact("", phone, "")

	// Assert
	assert.Equal(t, "Reza", m.Name(), "空姓名不覆寫")
	assert.Equal(t, "+989121112233", m.PhoneNumber().String())
	assert.Equal(t, "", m.AccountNumber(), "帳號可被清空")
	assert.True(t, m.UpdatedAt().After(before))
	assert.Equal(t, "M003", m.Code().String(), "代碼不可變")
}

// Test 5: Change status
func TestMember_ChangeStatus(t *testing.T) {
	m, _ := NewMember(mustCode(t, "M004"), "Reza", PhoneNumber{}, "", "2024/01/01", StatusActive)

	require.NoError(t, m.ChangeStatus(StatusInactive))
	assert.Equal(t, StatusInactive, m.Status())

	err := m.ChangeStatus(Status("x"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, StatusInactive, m.Status())
}

// Test 6: Parse status
func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"", StatusActive, false},
		{"active", StatusActive, false},
		{" inactive ", StatusInactive, false},
		{"deleted", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Test 7: Reconstruct keeps stored values
func TestReconstructMember(t *testing.T) {
	id := NewMemberID()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	m, err := ReconstructMember(id, mustCode(t, "M010"), "Ali", PhoneNumber{}, "", "1402/11/05", StatusActive, created, created)

	require.NoError(t, err)
	assert.True(t, m.MemberID().Equals(id))
	assert.Equal(t, created, m.CreatedAt())

	_, err = ReconstructMember(id, mustCode(t, "M010"), "", PhoneNumber{}, "", "1402/11/05", StatusActive, created, created)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestMemberRegisteredEvent(t *testing.T) {
	m, _ := NewMember(mustCode(t, "M011"), "Ali", PhoneNumber{}, "", "2024/01/01", StatusActive)

	evt := NewMemberRegisteredEvent(m)

	assert.Equal(t, "member.registered", evt.EventType())
	assert.Equal(t, m.MemberID().String(), evt.AggregateID())
	assert.Equal(t, "M011", evt.Code())
	assert.NotEmpty(t, evt.EventID())
}
