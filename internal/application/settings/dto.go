package settings

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ketoan/backend/internal/domain/settings"
)

// CreateSettingRequest represents a request to create a new setting
type CreateSettingRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=50"`
	Key         string          `json:"key" binding:"required,min=1,max=100"`
	Value       json.RawMessage `json:"value" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// UpdateSettingRequest represents a partial update of a setting.
// Absent fields are left untouched.
type UpdateSettingRequest struct {
	Value       json.RawMessage `json:"value"`
	Description *string         `json:"description" binding:"omitempty,max=500"`
}

// SettingResponse represents a setting in API responses
type SettingResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    *uuid.UUID      `json:"tenant_id"`
	Category    string          `json:"category"`
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description"`
	UpdatedBy   uuid.UUID       `json:"updated_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DeleteSettingResponse confirms a deletion
type DeleteSettingResponse struct {
	Message string `json:"message"`
}

// ListSettingsFilter represents filter options for the settings list
type ListSettingsFilter struct {
	Category string `form:"category" binding:"omitempty,max=50"`
}

// ToSettingResponse converts a domain Setting to SettingResponse
func ToSettingResponse(s *settings.Setting) SettingResponse {
	return SettingResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Category:    s.Category,
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
		UpdatedBy:   s.UpdatedBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSettingResponses converts a slice of domain Settings
func ToSettingResponses(items []settings.Setting) []SettingResponse {
	result := make([]SettingResponse, 0, len(items))
	for i := range items {
		result = append(result, ToSettingResponse(&items[i]))
	}
	return result
}
