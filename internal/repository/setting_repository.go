package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/todo-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository is a GORM implementation of SettingRepository
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &GormSettingRepository{db: db}
}

// Create creates a new setting
func (r *GormSettingRepository) Create(ctx context.Context, setting *models.Setting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

// FindByID finds a setting by ID
func (r *GormSettingRepository) FindByID(ctx context.Context, id uint64) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).First(&setting, id).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Find finds the setting identified by (name, userID, category)
func (r *GormSettingRepository) Find(ctx context.Context, name string, userID *uint64, category string) (*models.Setting, error) {
	var setting models.Setting
	if err := settingKey(r.db.WithContext(ctx), name, userID, category).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// List retrieves settings matching the filter
func (r *GormSettingRepository) List(ctx context.Context, filter SettingFilter) ([]models.Setting, error) {
	var settings []models.Setting

	query := r.db.WithContext(ctx).Model(&models.Setting{})
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.GlobalOnly {
		query = query.Where("user_id IS NULL")
	} else if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if err := query.Order("id ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Update saves a setting
func (r *GormSettingRepository) Update(ctx context.Context, setting *models.Setting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

// Delete removes a setting
func (r *GormSettingRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Setting{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Upsert updates the row identified by (Name, UserID, Category) or inserts it.
// The lookup locks the row so concurrent writers of one key serialize; an
// insert that loses the race against the unique index is retried as an update.
func (r *GormSettingRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	err := r.upsert(ctx, setting)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = r.upsert(ctx, setting)
	}
	return err
}

func (r *GormSettingRepository) upsert(ctx context.Context, setting *models.Setting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Setting
		err := settingKey(tx, setting.Name, setting.UserID, setting.Category).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"value":       setting.Value,
				"description": setting.Description,
			}).Error; err != nil {
				return err
			}
			setting.ID = existing.ID
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			setting.ID = 0
			return tx.Create(setting).Error
		default:
			return err
		}
	})
}

func settingKey(db *gorm.DB, name string, userID *uint64, category string) *gorm.DB {
	query := db.Where("name = ? AND category = ?", name, category)
	if userID == nil {
		return query.Where("user_id IS NULL")
	}
	return query.Where("user_id = ?", *userID)
}
