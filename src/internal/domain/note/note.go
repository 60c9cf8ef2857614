package note

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
)

// ===========================
// 錯誤
// ===========================

const (
	ErrCodeEmptyNote     shared.ErrorCode = "NOTE_EMPTY"
	ErrCodeInvalidMonth  shared.ErrorCode = "NOTE_INVALID_MONTH"
	ErrCodeNoteNotFound  shared.ErrorCode = "NOTE_NOT_FOUND"
	ErrCodeInvalidNoteID shared.ErrorCode = "NOTE_INVALID_ID"
)

var (
	ErrEmptyNote     = shared.NewDomainError(ErrCodeEmptyNote, "備註內容不能為空")
	ErrInvalidMonth  = shared.NewDomainError(ErrCodeInvalidMonth, "備註月份格式必須是 YYYY/MM")
	ErrNoteNotFound  = shared.NewDomainError(ErrCodeNoteNotFound, "備註不存在")
	ErrInvalidNoteID = shared.NewDomainError(ErrCodeInvalidNoteID, "備註 ID 格式無效")
)

// ===========================
// NoteID
// ===========================

// NoteMarker 備註 ID 標記類型
type NoteMarker struct{}

// NoteID 備註 ID
type NoteID = shared.EntityID[NoteMarker]

// NoteIDFromString 從字串解析備註 ID
func NoteIDFromString(value string) (NoteID, error) {
	return shared.EntityIDFromString[NoteMarker](value, ErrInvalidNoteID)
}

// ===========================
// Note Entity
// ===========================

var monthPattern = regexp.MustCompile(`^\d{4}/(0[1-9]|1[0-2])$`)

// Note 會員年度表格某一列（月份）的備註
//
// month 為 "YYYY/MM"，與帳本日期使用相同的前綴規則，
// 以 "YYYY/" 前綴即可選出整年的備註。
type Note struct {
	noteID     NoteID
	memberID   member.MemberID
	month      string
	text       string
	linkedCell string
	createdAt  time.Time
}

// NewNote 建立備註
//
// linkedCell 為顯示用標籤，預設為「第 N 列 (YYYY/MM)」。
func NewNote(memberID member.MemberID, month string, text string) (*Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyNote
	}
	if !monthPattern.MatchString(month) {
		return nil, ErrInvalidMonth.WithContext("month", month)
	}

	row := month[5:]
	if row[0] == '0' {
		row = row[1:]
	}

	return &Note{
		noteID:     shared.NewEntityID[NoteMarker](),
		memberID:   memberID,
		month:      month,
		text:       text,
		linkedCell: fmt.Sprintf("row %s (%s)", row, month),
		createdAt:  time.Now(),
	}, nil
}

// ReconstructNote 從資料庫重建
func ReconstructNote(id NoteID, memberID member.MemberID, month, text, linkedCell string, createdAt time.Time) *Note {
	return &Note{
		noteID:     id,
		memberID:   memberID,
		month:      month,
		text:       text,
		linkedCell: linkedCell,
		createdAt:  createdAt,
	}
}

func (n *Note) NoteID() NoteID { return n.noteID }
func (n *Note) MemberID() member.MemberID { return n.memberID }
func (n *Note) Month() string { return n.month }
func (n *Note) Text() string { return n.text }
func (n *Note) LinkedCell() string { return n.linkedCell }
func (n *Note) CreatedAt() time.Time { return n.createdAt }

// ===========================
// Repository
// ===========================

// NoteRepository 備註倉儲
type NoteRepository interface {
	Save(ctx shared.TransactionContext, note *Note) error

	// ListByMember 依月份由新到舊；monthPrefix 為空時列出全部
	ListByMember(ctx shared.TransactionContext, memberID member.MemberID, monthPrefix string) ([]*Note, error)

	// Delete 找不到 → ErrNoteNotFound
	Delete(ctx shared.TransactionContext, id NoteID) error
}
