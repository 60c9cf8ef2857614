package member

import (
	"strings"

	"github.com/jackyeh168/qarz_fund/src/internal/domain/member"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"gorm.io/gorm"
)

// ===========================
// MemberRepositoryImpl
// ===========================

// MemberRepositoryImpl 會員倉儲實現（GORM）
//
// 設計原則：
// - 實作 member.MemberRepository 接口
// - 處理 Domain 與 GORM 模型轉換
// - 將 GORM 錯誤轉換為 Domain 錯誤
type MemberRepositoryImpl struct {
	db *gorm.DB
}

// NewMemberRepository 創建新的會員倉儲實例
func NewMemberRepository(db *gorm.DB) member.MemberRepository {
	return &MemberRepositoryImpl{db: db}
}

// Save 新增會員
//
// 錯誤處理：
// - UNIQUE constraint 違反 → ErrMembershipCodeTaken
// - 其他資料庫錯誤 → ErrRepository
func (r *MemberRepositoryImpl) Save(ctx shared.TransactionContext, m *member.Member) error {
	db := r.getDB(ctx)

	result := db.Create(toGORM(m))
	if result.Error != nil {
		if dbutil.IsUniqueConstraintError(result.Error) {
			return member.ErrMembershipCodeTaken.WithContext(
				"membership_code", m.Code().String(),
			)
		}
		return dbutil.RepositoryError(result.Error, "member.save")
	}
	return nil
}

// Update 更新聯絡資訊與狀態
//
// 會員代碼與建立時間不會被覆寫。RowsAffected = 0 表示會員不存在。
func (r *MemberRepositoryImpl) Update(ctx shared.TransactionContext, m *member.Member) error {
	db := r.getDB(ctx)
	model := toGORM(m)

	result := db.Model(&MemberGORM{}).
		Where("member_id = ?", model.MemberID).
		Updates(map[string]interface{}{
			"name":           model.Name,
			"phone":          model.Phone,
			"account_number": model.AccountNumber,
			"status":         model.Status,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return dbutil.RepositoryError(result.Error, "member.update")
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound.WithContext("member_id", model.MemberID)
	}
	return nil
}

// FindByID 根據會員 ID 查找會員
func (r *MemberRepositoryImpl) FindByID(ctx shared.TransactionContext, id member.MemberID) (*member.Member, error) {
	db := r.getDB(ctx)

	var model MemberGORM
	result := db.Where("member_id = ?", id.String()).First(&model)
	if result.Error != nil {
		if dbutil.IsNotFound(result.Error) {
			return nil, member.ErrMemberNotFound.WithContext("member_id", id.String())
		}
		return nil, dbutil.RepositoryError(result.Error, "member.find_by_id")
	}
	return model.toDomain()
}

// FindByCodeOrName 依會員代碼或完整姓名查找
//
// 先比對代碼；代碼不存在時再比對姓名（同名時取最早建立者）。
func (r *MemberRepositoryImpl) FindByCodeOrName(ctx shared.TransactionContext, value string) (*member.Member, error) {
	db := r.getDB(ctx)
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, member.ErrMemberNotFound
	}

	var model MemberGORM
	result := db.Where("membership_code = ?", value).Limit(1).Find(&model)
	if result.Error != nil {
		return nil, dbutil.RepositoryError(result.Error, "member.find_by_code")
	}
	if result.RowsAffected == 0 {
		result = db.Where("name = ?", value).Order("created_at ASC, member_id ASC").Limit(1).Find(&model)
		if result.Error != nil {
			return nil, dbutil.RepositoryError(result.Error, "member.find_by_name")
		}
		if result.RowsAffected == 0 {
			return nil, member.ErrMemberNotFound.WithContext("value", value)
		}
	}
	return model.toDomain()
}

// ExistsByCode 檢查會員代碼是否已被使用（COUNT 查詢，不載入資料）
func (r *MemberRepositoryImpl) ExistsByCode(ctx shared.TransactionContext, code member.MembershipCode) (bool, error) {
	db := r.getDB(ctx)

	var count int64
	result := db.Model(&MemberGORM{}).Where("membership_code = ?", code.String()).Count(&count)
	if result.Error != nil {
		return false, dbutil.RepositoryError(result.Error, "member.exists_by_code")
	}
	return count > 0, nil
}

// LastCode 最後新增會員的代碼
//
// 「最後新增」= 最大的 (created_at, member_id)；member_id 為 UUIDv7，
// 同一時間戳記內仍依建立順序排序。
func (r *MemberRepositoryImpl) LastCode(ctx shared.TransactionContext) (string, bool, error) {
	db := r.getDB(ctx)

	var model MemberGORM
	result := db.Select("membership_code").
		Order("created_at DESC, member_id DESC").
		Limit(1).
		Find(&model)
	if result.Error != nil {
		return "", false, dbutil.RepositoryError(result.Error, "member.last_code")
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return model.MembershipCode, true, nil
}

// List 列出所有會員（依入會日期由新到舊）
func (r *MemberRepositoryImpl) List(ctx shared.TransactionContext) ([]*member.Member, error) {
	db := r.getDB(ctx)

	var models []MemberGORM
	if err := db.Order("join_date DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, dbutil.RepositoryError(err, "member.list")
	}
	return toDomainList(models)
}

// Search 以姓名、代碼、手機做部分比對；keyword 為空時等同 List
func (r *MemberRepositoryImpl) Search(ctx shared.TransactionContext, keyword string) ([]*member.Member, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return r.List(ctx)
	}
	db := r.getDB(ctx)

	pattern := dbutil.ContainsPattern(keyword)
	like := "LIKE ?" + dbutil.LikeEscapeClause

	var models []MemberGORM
	err := db.Where("name "+like+" OR membership_code "+like+" OR phone "+like, pattern, pattern, pattern).
		Order("join_date DESC, created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, dbutil.RepositoryError(err, "member.search")
	}
	return toDomainList(models)
}

// Delete 刪除會員及其交易、貸款、備註
//
// 必須在事務中呼叫，否則部分刪除無法回滾。
func (r *MemberRepositoryImpl) Delete(ctx shared.TransactionContext, id member.MemberID) error {
	db := r.getDB(ctx)

	for _, table := range []string{dbutil.TableTransactions, dbutil.TableLoans, dbutil.TableNotes} {
		if err := db.Exec("DELETE FROM "+table+" WHERE member_id = ?", id.String()).Error; err != nil {
			return dbutil.RepositoryError(err, "member.delete."+table)
		}
	}

	result := db.Where("member_id = ?", id.String()).Delete(&MemberGORM{})
	if result.Error != nil {
		return dbutil.RepositoryError(result.Error, "member.delete")
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound.WithContext("member_id", id.String())
	}
	return nil
}

// getDB 獲取資料庫實例
//
// ctx 是事務上下文時返回事務中的 DB，否則返回預設 DB（auto-commit 模式）。
func (r *MemberRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	return dbutil.Conn(ctx, r.db)
}

func toDomainList(models []MemberGORM) ([]*member.Member, error) {
	members := make([]*member.Member, 0, len(models))
	for i := range models {
		m, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}
