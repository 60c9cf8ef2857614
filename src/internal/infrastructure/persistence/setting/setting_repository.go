package setting

import (
	"github.com/jackyeh168/qarz_fund/src/internal/domain/fund"
	"github.com/jackyeh168/qarz_fund/src/internal/domain/shared"
	"github.com/jackyeh168/qarz_fund/src/internal/infrastructure/persistence/dbutil"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingGORM 設定鍵值資料表模型
type SettingGORM struct {
	Key         string `gorm:"column:key;type:varchar(128);primaryKey"`
	Value       string `gorm:"column:value;type:text;not null;default:''"`
	Description string `gorm:"column:description;type:varchar(255)"`
}

// TableName 指定資料表名稱
func (SettingGORM) TableName() string {
	return dbutil.TableSettings
}

// GORMSettingsRepository GORM 實作的設定倉儲
type GORMSettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository 創建設定倉儲
func NewSettingsRepository(db *gorm.DB) fund.SettingsRepository {
	return &GORMSettingsRepository{db: db}
}

// Get 讀取單一設定；不存在時返回 defaultValue
func (r *GORMSettingsRepository) Get(ctx shared.TransactionContext, key, defaultValue string) (string, error) {
	var model SettingGORM
	result := r.getDB(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).Limit(1).Find(&model)
	if result.Error != nil {
		return defaultValue, dbutil.RepositoryError(result.Error, "setting.get")
	}
	if result.RowsAffected == 0 {
		return defaultValue, nil
	}
	return model.Value, nil
}

// Set 寫入或覆寫設定
//
// 說明為空時保留既有說明。
func (r *GORMSettingsRepository) Set(ctx shared.TransactionContext, key, value, description string) error {
	updateColumns := []string{"value"}
	if description != "" {
		updateColumns = append(updateColumns, "description")
	}

	err := r.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(&SettingGORM{Key: key, Value: value, Description: description}).Error
	if err != nil {
		return dbutil.RepositoryError(err, "setting.set")
	}
	return nil
}

// All 讀取所有設定
func (r *GORMSettingsRepository) All(ctx shared.TransactionContext) (map[string]string, error) {
	var models []SettingGORM
	if err := r.getDB(ctx).Find(&models).Error; err != nil {
		return nil, dbutil.RepositoryError(err, "setting.all")
	}
	values := make(map[string]string, len(models))
	for _, m := range models {
		values[m.Key] = m.Value
	}
	return values, nil
}

// EnsureDefaults 寫入尚不存在的預設設定，既有值不會被覆寫
func (r *GORMSettingsRepository) EnsureDefaults(ctx shared.TransactionContext, defaults []fund.Setting) error {
	if len(defaults) == 0 {
		return nil
	}
	models := make([]SettingGORM, 0, len(defaults))
	for _, s := range defaults {
		models = append(models, SettingGORM{Key: s.Key, Value: s.Value, Description: s.Description})
	}
	err := r.getDB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&models).Error
	if err != nil {
		return dbutil.RepositoryError(err, "setting.ensure_defaults")
	}
	return nil
}

func (r *GORMSettingsRepository) getDB(ctx shared.TransactionContext) *gorm.DB {
	return dbutil.Conn(ctx, r.db)
}
