package note

import (
	"time"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/note"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"gorm.io/gorm"
)

// NoteGORM 備註資料表模型（date 為 YYYY/MM）
type NoteGORM struct {
	NoteID     string    `gorm:"column:note_id;type:varchar(36);primaryKey"`
	MemberID   string    `gorm:"column:member_id;type:varchar(36);not null;index"`
	Date       string    `gorm:"column:date;type:varchar(7);not null"`
	Note       string    `gorm:"column:note;type:text;not null"`
	LinkedCell string    `gorm:"column:linked_cell;type:varchar(64)"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定資料表名稱
func (NoteGORM) TableName() string {
	return dbutil.TableNotes
}

func (m *NoteGORM) toDomain() (*note.Note, error) {
	id, err := note.NoteIDFromString(m.NoteID)
	if err != nil {
		return nil, err
	}
	memberID, err := member.MemberIDFromString(m.MemberID)
	if err != nil {
		return nil, err
	}
	return note.ReconstructNote(id, memberID, m.Date, m.Note, m.LinkedCell, m.CreatedAt), nil
}

// GORMNoteRepository GORM 實作的備註倉儲
type GORMNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository 創建備註倉儲
func NewNoteRepository(db *gorm.DB) note.NoteRepository {
	return &GORMNoteRepository{db: db}
}

// Save 新增備註
func (r *GORMNoteRepository) Save(ctx shared.TransactionContext, n *note.Note) error {
	model := &NoteGORM{
		NoteID:     n.NoteID().String(),
		MemberID:   n.MemberID().String(),
		Date:       n.Month(),
		Note:       n.Text(),
		LinkedCell: n.LinkedCell(),
		CreatedAt:  n.CreatedAt(),
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return dbutil.RepositoryError(err, "note.save")
	}
	return nil
}

// ListByMember 依月份由新到舊
func (r *GORMNoteRepository) ListByMember(ctx shared.TransactionContext, memberID member.MemberID, monthPrefix string) ([]*note.Note, error) {
	var models []NoteGORM
	err := r.getDB(ctx).
		Where("member_id = ?", memberID.String()).
		Where("date LIKE ?"+dbutil.LikeEscapeClause, dbutil.PrefixPattern(monthPrefix)).
		Order("date DESC, created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, dbutil.RepositoryError(err, "note.list_by_member")
	}

	notes := make([]*note.Note, 0, len(models))
	for i := range models {
		n, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Delete 刪除備註
func (r *GORMNoteRepository) Delete(ctx shared.TransactionContext, id note.NoteID) error {
	result := r.getDB(ctx).Where("note_id = ?", id.String()).Delete(&NoteGORM{})
	if result.Error != nil {
		return dbutil.RepositoryError(result.Error, "note.delete")
	}
	if result.RowsAffected == 0 {
		return note.ErrNoteNotFound.WithContext("note_id", id.String())
	}
	return nil
}

func (r *GORMNoteRepository) getDB(ctx shared.TransactionContext) *gorm.DB {
	return dbutil.Conn(ctx, r.db)
}
