package member

import (
	"testing"

	"github.com/jackyeh168/qarz_fund/src/internal/application/mocks"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestMember(t *testing.T, code, name string) *member.Member {
	t.Helper()
	c, err := member.NewMembershipCode(code)
	require.NoError(t, err)
	phone, err := member.NewPhoneNumber("09121112233")
	require.NoError(t, err)
	m, err := member.NewMember(c, name, phone, "IR-1", "2024/01/15", member.StatusActive)
	require.NoError(t, err)
	return m
}

// ===========================
// GenerateMembershipCode
// ===========================

func TestGenerateMembershipCodeUseCase_Execute(t *testing.T) {
	explicit := "M041"
	malformed := "abc"

	tests := []struct {
		name     string
		last     *string
		lastCode string
		hasLast  bool
		repoErr  error
		want     string
	}{
		{"指定上一個代碼", &explicit, "", false, nil, "M042"},
		{"指定格式錯誤的代碼", &malformed, "", false, nil, "M001"},
		{"讀取最後會員代碼", nil, "M005", true, nil, "M006"},
		{"沒有會員", nil, "", false, nil, "M001"},
		{"倉儲錯誤回退", nil, "", false, shared.ErrRepository, "M001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := new(mocks.MockMemberRepository)
			log, _ := test.NewNullLogger()
			if tt.last == nil {
				repo.On("LastCode", nil).Return(tt.lastCode, tt.hasLast, tt.repoErr)
			}
			useCase := NewGenerateMembershipCodeUseCase(repo, log)

			// Act
			got := useCase.Execute(tt.last)

			// Assert
			assert.Equal(t, tt.want, got)
			if tt.last != nil {
				repo.AssertNotCalled(t, "LastCode", mock.Anything)
			}
		})
	}
}

// ===========================
// UpdateMemberContact
// ===========================

func TestUpdateMemberContactUseCase_Execute_Success(t *testing.T) {
	// Arrange
	repo := new(mocks.MockMemberRepository)
	existing := newTestMember(t, "M001", "Ali")
	repo.On("FindByID", nil, existing.MemberID()).Return(existing, nil)
	repo.On("Update", nil, existing).Return(nil)
	useCase := NewUpdateMemberContactUseCase(repo, new(mocks.MockTransactionManager))

	// Act
	dto, err := useCase.Execute(UpdateMemberContactCommand{
		MemberID:      existing.MemberID().String(),
		Name:          "",
		PhoneNumber:   "",
		AccountNumber: " 6037-99 ",
		Status:        "inactive",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ali", dto.Name, "空白姓名保留原值")
	assert.Empty(t, dto.PhoneNumber, "手機可清空")
	assert.Equal(t, "6037-99", dto.AccountNumber)
	assert.Equal(t, "inactive", dto.Status)
	repo.AssertExpectations(t)
}

func TestUpdateMemberContactUseCase_Execute_Errors(t *testing.T) {
	existing := newTestMember(t, "M001", "Ali")

	tests := []struct {
		name    string
		cmd     UpdateMemberContactCommand
		setup   func(repo *mocks.MockMemberRepository)
		wantErr error
	}{
		{
			name:    "ID 格式錯誤",
			cmd:     UpdateMemberContactCommand{MemberID: "nope"},
			setup:   func(repo *mocks.MockMemberRepository) {},
			wantErr: member.ErrInvalidMemberID,
		},
		{
			name:    "手機格式錯誤",
			cmd:     UpdateMemberContactCommand{MemberID: existing.MemberID().String(), PhoneNumber: "0800"},
			setup:   func(repo *mocks.MockMemberRepository) {},
			wantErr: member.ErrInvalidPhoneNumberFormat,
		},
		{
			name: "會員不存在",
			cmd:  UpdateMemberContactCommand{MemberID: existing.MemberID().String()},
			setup: func(repo *mocks.MockMemberRepository) {
				repo.On("FindByID", nil, existing.MemberID()).Return(nil, member.ErrMemberNotFound)
			},
			wantErr: member.ErrMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := new(mocks.MockMemberRepository)
			tt.setup(repo)
			useCase := NewUpdateMemberContactUseCase(repo, new(mocks.MockTransactionManager))

			// Act
			dto, err := useCase.Execute(tt.cmd)

			// Assert
			assert.Nil(t, dto)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

// ===========================
// 查詢
// ===========================

func TestGetMemberUseCase_Execute(t *testing.T) {
	// Arrange
	repo := new(mocks.MockMemberRepository)
	existing := newTestMember(t, "M007", "Sara")
	repo.On("FindByID", nil, existing.MemberID()).Return(existing, nil)

	// Act
	dto, err := NewGetMemberUseCase(repo).Execute(existing.MemberID().String())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "M007", dto.Code)
	assert.Equal(t, "09121112233", dto.PhoneNumber)
	assert.Equal(t, "2024/01/15", dto.JoinDate)
}

func TestGetMemberUseCase_Execute_NotFound(t *testing.T) {
	repo := new(mocks.MockMemberRepository)
	id := member.NewMemberID()
	repo.On("FindByID", nil, id).Return(nil, member.ErrMemberNotFound)

	_, err := NewGetMemberUseCase(repo).Execute(id.String())

	assert.ErrorIs(t, err, member.ErrMemberNotFound)
}

func TestFindMemberUseCase_Execute(t *testing.T) {
	repo := new(mocks.MockMemberRepository)
	existing := newTestMember(t, "M007", "Sara")
	repo.On("FindByCodeOrName", nil, "Sara").Return(existing, nil)

	dto, err := NewFindMemberUseCase(repo).Execute("  Sara ")
	require.NoError(t, err)
	assert.Equal(t, existing.MemberID().String(), dto.MemberID)

	_, err = NewFindMemberUseCase(repo).Execute("   ")
	assert.ErrorIs(t, err, member.ErrMemberNotFound)
}

func TestListMembersUseCase_Execute(t *testing.T) {
	// Arrange
	repo := new(mocks.MockMemberRepository)
	a := newTestMember(t, "M001", "Ali")
	b := newTestMember(t, "M002", "Sara")
	repo.On("List", nil).Return([]*member.Member{b, a}, nil)
	repo.On("Search", nil, "Sa").Return([]*member.Member{b}, nil)
	useCase := NewListMembersUseCase(repo)

	// Act
	all, err := useCase.Execute("")
	require.NoError(t, err)
	found, err := useCase.Execute(" Sa ")
	require.NoError(t, err)

	// Assert
	assert.Len(t, all, 2)
	assert.Equal(t, "M002", all[0].Code)
	require.Len(t, found, 1)
	assert.Equal(t, "Sara", found[0].Name)
}

// ===========================
// RemoveMember
// ===========================

func TestRemoveMemberUseCase_Execute(t *testing.T) {
	// Arrange
	repo := new(mocks.MockMemberRepository)
	publisher := new(mocks.MockEventPublisher)
	log, hook := test.NewNullLogger()
	id := member.NewMemberID()
	repo.On("Delete", nil, id).Return(nil)
	useCase := NewRemoveMemberUseCase(repo, new(mocks.MockTransactionManager), publisher, log)

	// Act
	err := useCase.Execute(id.String())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"member.removed"}, publisher.EventTypes())
	assert.Equal(t, "member removed", hook.LastEntry().Message)
}

func TestRemoveMemberUseCase_Execute_NotFound_NoEvent(t *testing.T) {
	// Arrange
	repo := new(mocks.MockMemberRepository)
	publisher := new(mocks.MockEventPublisher)
	log, _ := test.NewNullLogger()
	id := member.NewMemberID()
	repo.On("Delete", nil, id).Return(member.ErrMemberNotFound)
	useCase := NewRemoveMemberUseCase(repo, new(mocks.MockTransactionManager), publisher, log)

	// Act
	err := useCase.Execute(id.String())

	// Assert
	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	assert.Empty(t, publisher.Events)
}
