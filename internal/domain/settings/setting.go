package settings

import (
	"encoding/json"
	"time"

	"github.com/ketoan/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Setting is a single configuration entry, scoped to a tenant or global
// (TenantID == nil). Rows are unique per (tenant_id, category, key).
type Setting struct {
	shared.BaseEntity
	TenantID    *uuid.UUID
	Category    string
	Key         string
	Value       json.RawMessage
	Description string
	UpdatedBy   uuid.UUID
}

// NewSetting creates a new setting. Value must be valid JSON and non-empty;
// category and key must be non-empty.
func NewSetting(tenantID *uuid.UUID, category, key string, value json.RawMessage, description string, actorID uuid.UUID) (*Setting, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := validateValue(value); err != nil {
		return nil, err
	}

	return &Setting{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		Category:    category,
		Key:         key,
		Value:       value,
		Description: description,
		UpdatedBy:   actorID,
	}, nil
}

// SetValue replaces the stored value in place and stamps the actor.
func (s *Setting) SetValue(value json.RawMessage, actorID uuid.UUID) error {
	if err := validateValue(value); err != nil {
		return err
	}
	s.Value = value
	s.UpdatedBy = actorID
	s.UpdatedAt = time.Now()
	return nil
}

// SetStringValue stores a plain string as the JSON-encoded value. This is the
// write path used by grouped updates, which coerce every field to a string.
func (s *Setting) SetStringValue(value string, actorID uuid.UUID) {
	encoded, _ := json.Marshal(value)
	s.Value = encoded
	s.UpdatedBy = actorID
	s.UpdatedAt = time.Now()
}

// SetDescription updates the optional human-readable note.
func (s *Setting) SetDescription(description string, actorID uuid.UUID) {
	s.Description = description
	s.UpdatedBy = actorID
	s.UpdatedAt = time.Now()
}

// DecodedValue returns the value decoded into a generic Go value.
func (s *Setting) DecodedValue() (any, error) {
	var v any
	if err := json.Unmarshal(s.Value, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func validateCategory(category string) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Danh mục cấu hình không được để trống")
	}
	if len(category) > 50 {
		return shared.NewDomainError("INVALID_CATEGORY", "Danh mục cấu hình không được vượt quá 50 ký tự")
	}
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_KEY", "Tên cấu hình không được để trống")
	}
	if len(key) > 100 {
		return shared.NewDomainError("INVALID_KEY", "Tên cấu hình không được vượt quá 100 ký tự")
	}
	return nil
}

func validateValue(value json.RawMessage) error {
	if len(value) == 0 {
		return shared.NewDomainError("INVALID_VALUE", "Giá trị cấu hình không được để trống")
	}
	if !json.Valid(value) {
		return shared.NewDomainError("INVALID_VALUE", "Giá trị cấu hình phải là JSON hợp lệ")
	}
	return nil
}
