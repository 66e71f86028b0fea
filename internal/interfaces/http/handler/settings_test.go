package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	settingsapp "github.com/ketoan/backend/internal/application/settings"
	"github.com/ketoan/backend/internal/domain/settings"
	"github.com/ketoan/backend/internal/domain/shared"
	"github.com/ketoan/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory repository fake backing the real application service

type fakeSettingRepository struct {
	items     map[uuid.UUID]*settings.Setting
	returnErr error
}

func newFakeSettingRepository() *fakeSettingRepository {
	return &fakeSettingRepository{items: make(map[uuid.UUID]*settings.Setting)}
}

func (f *fakeSettingRepository) FindByID(ctx context.Context, id uuid.UUID) (*settings.Setting, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	if s, ok := f.items[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeSettingRepository) FindAll(ctx context.Context, category string) ([]settings.Setting, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	var out []settings.Setting
	for _, s := range f.items {
		if category == "" || s.Category == category {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSettingRepository) FindByCategoryAndKey(ctx context.Context, category, key string) (*settings.Setting, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	for _, s := range f.items {
		if s.Category == category && s.Key == key {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeSettingRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]settings.Setting, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	var out []settings.Setting
	for _, s := range f.items {
		if s.TenantID != nil && *s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSettingRepository) FindForTenantByCategoryAndKey(ctx context.Context, tenantID uuid.UUID, category, key string) (*settings.Setting, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	for _, s := range f.items {
		if s.TenantID != nil && *s.TenantID == tenantID && s.Category == category && s.Key == key {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeSettingRepository) ExistsByCategoryAndKey(ctx context.Context, category, key string) (bool, error) {
	if f.returnErr != nil {
		return false, f.returnErr
	}
	for _, s := range f.items {
		if s.Category == category && s.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSettingRepository) Save(ctx context.Context, setting *settings.Setting) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	f.items[setting.ID] = setting
	return nil
}

func (f *fakeSettingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	if _, ok := f.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

var _ settings.Repository = (*fakeSettingRepository)(nil)

var (
	testTenantID = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	testUserID   = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
)

func newSettingsRouter(repo *fakeSettingRepository) *gin.Engine {
	h := NewSettingHandler(settingsapp.NewSettingService(repo))

	router := gin.New()
	api := router.Group("/api/v1")
	settingsGroup := api.Group("/settings")
	settingsGroup.GET("", h.List)
	settingsGroup.GET("/all", h.GetGrouped)
	settingsGroup.GET("/:category/:key", h.GetByCategoryAndKey)
	settingsGroup.POST("", h.Create)
	settingsGroup.PUT("/company", h.UpdateCompany)
	settingsGroup.PUT("/tax", h.UpdateTax)
	settingsGroup.PUT("/invoice", h.UpdateInvoice)
	settingsGroup.PUT("/system", h.UpdateSystem)
	settingsGroup.PUT("/:category/:key", h.UpdateByKey)
	settingsGroup.PUT("/:category", h.UpdateByID)
	settingsGroup.DELETE("/:id", h.Delete)
	return router
}

func seedSetting(t *testing.T, repo *fakeSettingRepository, tenantID *uuid.UUID, category, key, value string) *settings.Setting {
	t.Helper()
	s, err := settings.NewSetting(tenantID, category, key, json.RawMessage(value), "", testUserID)
	require.NoError(t, err)
	repo.items[s.ID] = s
	return s
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", testTenantID.String())
	req.Header.Set("X-User-ID", testUserID.String())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSettingHandler_List(t *testing.T) {
	repo := newFakeSettingRepository()
	seedSetting(t, repo, &testTenantID, "system", "currency", `"VND"`)
	seedSetting(t, repo, &testTenantID, "company", "company_name", `"Công ty TNHH ABC"`)
	router := newSettingsRouter(repo)

	t.Run("returns all settings", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/settings", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Len(t, resp.Data, 2)
	})

	t.Run("filters by category", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/settings?category=system", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		items := resp.Data.([]any)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.Equal(t, "currency", item["key"])
	})
}

func TestSettingHandler_GetGrouped(t *testing.T) {
	repo := newFakeSettingRepository()
	seedSetting(t, repo, &testTenantID, "system", "currency", `"VND"`)
	seedSetting(t, repo, &testTenantID, "tax", "defaultVatRate", `"10"`)
	router := newSettingsRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/v1/settings/all", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	system := data["system"].(map[string]any)
	assert.Equal(t, "VND", system["currency"])
	tax := data["tax"].(map[string]any)
	assert.Equal(t, "10", tax["defaultVatRate"])
	// Empty groups serialize as empty objects, not null
	assert.NotNil(t, data["company"])
	assert.NotNil(t, data["invoice"])
}

func TestSettingHandler_GetGroupedExcludesOtherTenants(t *testing.T) {
	repo := newFakeSettingRepository()
	otherTenantID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	seedSetting(t, repo, &testTenantID, "system", "currency", `"VND"`)
	seedSetting(t, repo, &otherTenantID, "system", "currency", `"USD"`)
	seedSetting(t, repo, nil, "system", "language", `"vi"`)
	router := newSettingsRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/v1/settings/all", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	system := data["system"].(map[string]any)
	assert.Equal(t, "VND", system["currency"])
	// Neither the other tenant's row nor the global row leaks in
	assert.NotContains(t, system, "language")
}

func TestSettingHandler_GetByCategoryAndKey(t *testing.T) {
	repo := newFakeSettingRepository()
	seedSetting(t, repo, &testTenantID, "system", "language", `"vi"`)
	router := newSettingsRouter(repo)

	t.Run("found", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/settings/system/language", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		item := resp.Data.(map[string]any)
		assert.Equal(t, "language", item["key"])
	})

	t.Run("not found", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/settings/system/missing", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "Không tìm thấy")
	})
}

func TestSettingHandler_Create(t *testing.T) {
	t.Run("creates setting", func(t *testing.T) {
		repo := newFakeSettingRepository()
		router := newSettingsRouter(repo)

		body := map[string]any{
			"category": "email",
			"key":      "smtp_host",
			"value":    "smtp.example.com",
		}
		w := doRequest(router, http.MethodPost, "/api/v1/settings", body)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		item := resp.Data.(map[string]any)
		assert.Equal(t, "email", item["category"])
		assert.Equal(t, testTenantID.String(), item["tenant_id"])
		assert.Equal(t, testUserID.String(), item["updated_by"])
		assert.Len(t, repo.items, 1)
	})

	t.Run("rejects duplicate", func(t *testing.T) {
		repo := newFakeSettingRepository()
		seedSetting(t, repo, &testTenantID, "email", "smtp_host", `"old.example.com"`)
		router := newSettingsRouter(repo)

		body := map[string]any{
			"category": "email",
			"key":      "smtp_host",
			"value":    "new.example.com",
		}
		w := doRequest(router, http.MethodPost, "/api/v1/settings", body)

		require.Equal(t, http.StatusConflict, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		repo := newFakeSettingRepository()
		router := newSettingsRouter(repo)

		w := doRequest(router, http.MethodPost, "/api/v1/settings", map[string]any{"key": "orphan"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSettingHandler_UpdateByID(t *testing.T) {
	repo := newFakeSettingRepository()
	s := seedSetting(t, repo, &testTenantID, "system", "currency", `"VND"`)
	router := newSettingsRouter(repo)

	t.Run("updates value", func(t *testing.T) {
		body := map[string]any{"value": "USD"}
		w := doRequest(router, http.MethodPut, "/api/v1/settings/"+s.ID.String(), body)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		item := resp.Data.(map[string]any)
		assert.Equal(t, "USD", item["value"])
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		// A one-segment path that is neither a known group nor a UUID
		w := doRequest(router, http.MethodPut, "/api/v1/settings/not-a-uuid", map[string]any{"value": "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		w := doRequest(router, http.MethodPut, "/api/v1/settings/"+uuid.New().String(), map[string]any{"value": "x"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSettingHandler_UpdateByKey(t *testing.T) {
	repo := newFakeSettingRepository()
	seedSetting(t, repo, &testTenantID, "system", "language", `"vi"`)
	router := newSettingsRouter(repo)

	body := map[string]any{"value": "en", "description": "UI language"}
	w := doRequest(router, http.MethodPut, "/api/v1/settings/system/language", body)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	item := resp.Data.(map[string]any)
	assert.Equal(t, "en", item["value"])
	assert.Equal(t, "UI language", item["description"])
}

func TestSettingHandler_UpdateGroups(t *testing.T) {
	t.Run("company settings create missing fields", func(t *testing.T) {
		repo := newFakeSettingRepository()
		router := newSettingsRouter(repo)

		body := map[string]any{
			"companyName": "Công ty TNHH ABC",
			"taxCode":     "0312345678",
		}
		w := doRequest(router, http.MethodPut, "/api/v1/settings/company", body)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		company := data["company"].(map[string]any)
		assert.Equal(t, "Công ty TNHH ABC", company["companyName"])
		assert.Equal(t, "0312345678", company["taxCode"])
		assert.Len(t, repo.items, 2)
	})

	t.Run("tax settings coerce numeric and bool values", func(t *testing.T) {
		repo := newFakeSettingRepository()
		router := newSettingsRouter(repo)

		body := map[string]any{
			"defaultVatRate":  8,
			"vatMethod":       "deduction",
			"eInvoiceEnabled": true,
		}
		w := doRequest(router, http.MethodPut, "/api/v1/settings/tax", body)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		tax := data["tax"].(map[string]any)
		assert.Equal(t, "8", tax["defaultVatRate"])
		assert.Equal(t, "deduction", tax["vatMethod"])
		assert.Equal(t, "true", tax["eInvoiceEnabled"])
	})

	t.Run("system settings reject unsupported language", func(t *testing.T) {
		repo := newFakeSettingRepository()
		router := newSettingsRouter(repo)

		w := doRequest(router, http.MethodPut, "/api/v1/settings/system", map[string]any{"language": "fr"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invoice settings update existing fields", func(t *testing.T) {
		repo := newFakeSettingRepository()
		seedSetting(t, repo, &testTenantID, "invoice", "invoicePrefix", `"HD"`)
		router := newSettingsRouter(repo)

		body := map[string]any{"invoicePrefix": "INV", "invoiceStartNumber": 100}
		w := doRequest(router, http.MethodPut, "/api/v1/settings/invoice", body)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		invoice := data["invoice"].(map[string]any)
		assert.Equal(t, "INV", invoice["invoicePrefix"])
		assert.Equal(t, "100", invoice["invoiceStartNumber"])
	})
}

func TestSettingHandler_Delete(t *testing.T) {
	repo := newFakeSettingRepository()
	s := seedSetting(t, repo, &testTenantID, "email", "smtp_host", `"smtp.example.com"`)
	router := newSettingsRouter(repo)

	t.Run("deletes setting", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/api/v1/settings/"+s.ID.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		item := resp.Data.(map[string]any)
		assert.Contains(t, item["message"], "Đã xóa")
		assert.Empty(t, repo.items)
	})

	t.Run("missing setting returns 404", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/api/v1/settings/"+uuid.New().String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/api/v1/settings/nope", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
