package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ketoan/backend/internal/domain/settings"
	"github.com/ketoan/backend/internal/domain/shared"
	"github.com/ketoan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSettingRepository implements settings.Repository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindByID finds a setting by its ID
func (r *GormSettingRepository) FindByID(ctx context.Context, id uuid.UUID) (*settings.Setting, error) {
	var model models.SettingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all settings, optionally filtered by category
func (r *GormSettingRepository) FindAll(ctx context.Context, category string) ([]settings.Setting, error) {
	query := r.db.WithContext(ctx).Model(&models.SettingModel{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var records []models.SettingModel
	if err := query.Order("category ASC, key ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainSettings(records), nil
}

// FindByCategoryAndKey finds the first setting matching category and key
// regardless of tenant
func (r *GormSettingRepository) FindByCategoryAndKey(ctx context.Context, category, key string) (*settings.Setting, error) {
	var model models.SettingModel
	if err := r.db.WithContext(ctx).
		Where("category = ? AND key = ?", category, key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all settings belonging to a tenant
func (r *GormSettingRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]settings.Setting, error) {
	var records []models.SettingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("category ASC, key ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainSettings(records), nil
}

// FindForTenantByCategoryAndKey finds the unique setting for the
// (tenant, category, key) triple
func (r *GormSettingRepository) FindForTenantByCategoryAndKey(ctx context.Context, tenantID uuid.UUID, category, key string) (*settings.Setting, error) {
	var model models.SettingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND category = ? AND key = ?", tenantID, category, key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByCategoryAndKey checks whether any setting has this category and key
func (r *GormSettingRepository) ExistsByCategoryAndKey(ctx context.Context, category, key string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SettingModel{}).
		Where("category = ? AND key = ?", category, key).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts or updates a setting
func (r *GormSettingRepository) Save(ctx context.Context, setting *settings.Setting) error {
	var model models.SettingModel
	model.FromDomain(setting)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a setting by ID
func (r *GormSettingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SettingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainSettings(records []models.SettingModel) []settings.Setting {
	result := make([]settings.Setting, 0, len(records))
	for i := range records {
		result = append(result, *records[i].ToDomain())
	}
	return result
}
