package settings

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/ketoan/backend/internal/domain/settings"
	"github.com/ketoan/backend/internal/domain/shared"
)

// SettingService handles configuration read and write operations
type SettingService struct {
	repo settings.Repository
}

// NewSettingService creates a new SettingService
func NewSettingService(repo settings.Repository) *SettingService {
	return &SettingService{repo: repo}
}

// List returns all settings, optionally filtered by category.
// An empty result is returned as an empty slice, not an error.
func (s *SettingService) List(ctx context.Context, category string) ([]SettingResponse, error) {
	items, err := s.repo.FindAll(ctx, category)
	if err != nil {
		return nil, err
	}
	return ToSettingResponses(items), nil
}

// GetByCategoryAndKey returns the setting matching category and key.
// The lookup is global scope: it is not filtered by tenant.
func (s *SettingService) GetByCategoryAndKey(ctx context.Context, category, key string) (*SettingResponse, error) {
	setting, err := s.repo.FindByCategoryAndKey(ctx, category, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SETTING_NOT_FOUND", "Không tìm thấy cấu hình")
		}
		return nil, err
	}
	response := ToSettingResponse(setting)
	return &response, nil
}

// Create persists a new setting stamped with the acting user. The duplicate
// check matches (category, key) across all tenants, mirroring the global
// scope of GetByCategoryAndKey.
func (s *SettingService) Create(ctx context.Context, tenantID *uuid.UUID, actorID uuid.UUID, req CreateSettingRequest) (*SettingResponse, error) {
	exists, err := s.repo.ExistsByCategoryAndKey(ctx, req.Category, req.Key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("SETTING_ALREADY_EXISTS", "Cấu hình với danh mục và tên này đã tồn tại")
	}

	setting, err := settings.NewSetting(tenantID, req.Category, req.Key, req.Value, req.Description, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, setting); err != nil {
		return nil, err
	}

	response := ToSettingResponse(setting)
	return &response, nil
}

// Update merges the provided fields onto the setting with the given ID
func (s *SettingService) Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateSettingRequest) (*SettingResponse, error) {
	setting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SETTING_NOT_FOUND", "Không tìm thấy cấu hình")
		}
		return nil, err
	}
	return s.applyUpdate(ctx, setting, actorID, req)
}

// UpdateByKey merges the provided fields onto the setting located by
// (category, key). Same merge semantics as Update.
func (s *SettingService) UpdateByKey(ctx context.Context, category, key string, actorID uuid.UUID, req UpdateSettingRequest) (*SettingResponse, error) {
	setting, err := s.repo.FindByCategoryAndKey(ctx, category, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SETTING_NOT_FOUND", "Không tìm thấy cấu hình")
		}
		return nil, err
	}
	return s.applyUpdate(ctx, setting, actorID, req)
}

func (s *SettingService) applyUpdate(ctx context.Context, setting *settings.Setting, actorID uuid.UUID, req UpdateSettingRequest) (*SettingResponse, error) {
	if len(req.Value) > 0 {
		if err := setting.SetValue(req.Value, actorID); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		setting.SetDescription(*req.Description, actorID)
	}
	if err := s.repo.Save(ctx, setting); err != nil {
		return nil, err
	}

	response := ToSettingResponse(setting)
	return &response, nil
}

// Delete removes the setting with the given ID
func (s *SettingService) Delete(ctx context.Context, id uuid.UUID) (*DeleteSettingResponse, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SETTING_NOT_FOUND", "Không tìm thấy cấu hình")
		}
		return nil, err
	}
	return &DeleteSettingResponse{Message: "Đã xóa cấu hình"}, nil
}

// GetAllGrouped loads every setting of the tenant and folds it into the
// fixed four-category structure. Categories outside the four groups are
// dropped from the result.
func (s *SettingService) GetAllGrouped(ctx context.Context, tenantID uuid.UUID) (*settings.GroupedSettings, error) {
	items, err := s.repo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	grouped := settings.NewGroupedSettings()
	grouped.Fold(items)
	return &grouped, nil
}

// UpdateGroup upserts every supplied field of a grouped-settings DTO as an
// individual (tenant, category, key) row, then returns the fresh grouped
// state. Fields the caller did not supply are never touched; grouped writes
// store values string-coerced.
func (s *SettingService) UpdateGroup(ctx context.Context, tenantID uuid.UUID, actorID uuid.UUID, req GroupUpdateRequest) (*settings.GroupedSettings, error) {
	category := req.Category()
	fields := req.Fields()

	// Walk the schema rather than the map so writes happen in a stable order.
	for _, key := range settings.GroupSchema(category) {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if err := s.upsertGroupField(ctx, tenantID, actorID, category, key, value); err != nil {
			return nil, err
		}
	}

	return s.GetAllGrouped(ctx, tenantID)
}

func (s *SettingService) upsertGroupField(ctx context.Context, tenantID, actorID uuid.UUID, category, key, value string) error {
	existing, err := s.repo.FindForTenantByCategoryAndKey(ctx, tenantID, category, key)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		setting, err := settings.NewSetting(&tenantID, category, key, encoded, "", actorID)
		if err != nil {
			return err
		}
		return s.repo.Save(ctx, setting)
	}

	existing.SetStringValue(value, actorID)
	return s.repo.Save(ctx, existing)
}
