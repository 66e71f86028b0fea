package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/ketoan/backend/internal/domain/settings"
)

// SettingModel is the persistence model for a configuration entry. Rows are
// unique per (tenant_id, category, key); tenant_id is NULL for global rows.
type SettingModel struct {
	BaseModel
	TenantID    *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_settings_tenant_category_key"`
	Category    string     `gorm:"type:varchar(50);not null;index;uniqueIndex:idx_settings_tenant_category_key"`
	Key         string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_settings_tenant_category_key"`
	ValueJSON   string     `gorm:"column:value;type:jsonb;not null"`
	Description string     `gorm:"type:text"`
	UpdatedBy   uuid.UUID  `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}

// ToDomain converts the persistence model to a domain Setting.
func (m *SettingModel) ToDomain() *settings.Setting {
	return &settings.Setting{
		BaseEntity:  m.BaseModel.ToDomain(),
		TenantID:    m.TenantID,
		Category:    m.Category,
		Key:         m.Key,
		Value:       json.RawMessage(m.ValueJSON),
		Description: m.Description,
		UpdatedBy:   m.UpdatedBy,
	}
}

// FromDomain populates the persistence model from a domain Setting.
func (m *SettingModel) FromDomain(s *settings.Setting) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.TenantID = s.TenantID
	m.Category = s.Category
	m.Key = s.Key
	m.ValueJSON = string(s.Value)
	m.Description = s.Description
	m.UpdatedBy = s.UpdatedBy
}
