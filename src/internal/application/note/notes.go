// Package note 會員年度表格備註的 Use Case
package note

import (
	"strings"
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/ledger"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/note"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/sirupsen/logrus"
)

// NoteDTO 備註資料傳輸對象
type NoteDTO struct {
	NoteID     string
	MemberID   string
	Month      string
	Text       string
	LinkedCell string
	CreatedAt  time.Time
}

func toNoteDTO(n *note.Note) NoteDTO {
	return NoteDTO{
		NoteID:     n.NoteID().String(),
		MemberID:   n.MemberID().String(),
		Month:      n.Month(),
		Text:       n.Text(),
		LinkedCell: n.LinkedCell(),
		CreatedAt:  n.CreatedAt(),
	}
}

// ===========================
// AddNote
// ===========================

// AddNoteCommand 新增備註；Month 為 "YYYY/MM"
type AddNoteCommand struct {
	MemberID string
	Month    string
	Text     string
}

// AddNoteUseCase 新增備註
type AddNoteUseCase interface {
	Execute(cmd AddNoteCommand) (*NoteDTO, error)
}

// AddNoteUseCaseImpl 新增備註實作
type AddNoteUseCaseImpl struct {
	memberRepo member.MemberRepository
	noteRepo   note.NoteRepository
	txManager  shared.TransactionManager
	log        logrus.FieldLogger
}

// NewAddNoteUseCase 創建 Use Case 實例
func NewAddNoteUseCase(
	memberRepo member.MemberRepository,
	noteRepo note.NoteRepository,
	txManager shared.TransactionManager,
	log logrus.FieldLogger,
) AddNoteUseCase {
	return &AddNoteUseCaseImpl{
		memberRepo: memberRepo,
		noteRepo:   noteRepo,
		txManager:  txManager,
		log:        log,
	}
}

// Execute 新增；內容空白 → note.ErrEmptyNote，月份格式錯誤 → note.ErrInvalidMonth
func (uc *AddNoteUseCaseImpl) Execute(cmd AddNoteCommand) (*NoteDTO, error) {
	memberID, err := member.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, err
	}
	n, err := note.NewNote(memberID, shared.NormalizeDigits(cmd.Month), cmd.Text)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if _, err := uc.memberRepo.FindByID(ctx, memberID); err != nil {
			return err
		}
		return uc.noteRepo.Save(ctx, n)
	})
	if err != nil {
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{
		"member_id": cmd.MemberID,
		"month":     n.Month(),
	}).Info("note added")

	dto := toNoteDTO(n)
	return &dto, nil
}

// ===========================
// ListNotes / DeleteNote
// ===========================

// ListNotesQuery Year 空白時列出全部
type ListNotesQuery struct {
	MemberID string
	Year     string
}

// ListNotesUseCase 列出會員備註（由新到舊）
type ListNotesUseCase struct {
	noteRepo note.NoteRepository
}

// NewListNotesUseCase 創建 Use Case 實例
func NewListNotesUseCase(noteRepo note.NoteRepository) *ListNotesUseCase {
	return &ListNotesUseCase{noteRepo: noteRepo}
}

func (uc *ListNotesUseCase) Execute(query ListNotesQuery) ([]NoteDTO, error) {
	memberID, err := member.MemberIDFromString(query.MemberID)
	if err != nil {
		return nil, err
	}

	prefix := ""
	if strings.TrimSpace(query.Year) != "" {
		year, err := ledger.NewYear(query.Year)
		if err != nil {
			return nil, err
		}
		prefix = year.Prefix()
	}

	notes, err := uc.noteRepo.ListByMember(nil, memberID, prefix)
	if err != nil {
		return nil, err
	}
	dtos := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		dtos = append(dtos, toNoteDTO(n))
	}
	return dtos, nil
}

// DeleteNoteUseCase 刪除備註
type DeleteNoteUseCase struct {
	noteRepo  note.NoteRepository
	txManager shared.TransactionManager
	log       logrus.FieldLogger
}

// NewDeleteNoteUseCase 創建 Use Case 實例
func NewDeleteNoteUseCase(noteRepo note.NoteRepository, txManager shared.TransactionManager, log logrus.FieldLogger) *DeleteNoteUseCase {
	return &DeleteNoteUseCase{noteRepo: noteRepo, txManager: txManager, log: log}
}

// Execute 找不到 → note.ErrNoteNotFound
func (uc *DeleteNoteUseCase) Execute(id string) error {
	noteID, err := note.NoteIDFromString(id)
	if err != nil {
		return err
	}
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return uc.noteRepo.Delete(ctx, noteID)
	})
	if err != nil {
		return err
	}
	uc.log.WithField("note_id", id).Info("note deleted")
	return nil
}
