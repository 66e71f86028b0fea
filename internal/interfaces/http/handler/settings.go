package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	settingsapp "github.com/ketoan/backend/internal/application/settings"
)

// SettingHandler handles application configuration API endpoints
type SettingHandler struct {
	BaseHandler
	settingService *settingsapp.SettingService
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(settingService *settingsapp.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
	}
}

// List godoc
//
//	@ID				listSettings
//	@Summary		List settings
//	@Description	Retrieve all settings, optionally filtered by category
//	@Tags			settings
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	false	"Tenant ID (optional for dev)"
//	@Param			category	query		string	false	"Filter by category"
//	@Success		200			{object}	APIResponse[[]settingsapp.SettingResponse]
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *SettingHandler) List(c *gin.Context) {
	var filter settingsapp.ListSettingsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.settingService.List(c.Request.Context(), filter.Category)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// GetGrouped godoc
//
//	@ID				getGroupedSettings
//	@Summary		Get all settings grouped by category
//	@Description	Retrieve the tenant's settings folded into company, tax, invoice and system groups
//	@Tags			settings
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	false	"Tenant ID (optional for dev)"
//	@Success		200			{object}	APIResponse[settings.GroupedSettings]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings/all [get]
func (h *SettingHandler) GetGrouped(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	grouped, err := h.settingService.GetAllGrouped(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, grouped)
}

// GetByCategoryAndKey godoc
//
//	@ID				getSettingByCategoryAndKey
//	@Summary		Get a setting by category and key
//	@Description	Retrieve a single setting identified by its category and key
//	@Tags			settings
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	false	"Tenant ID (optional for dev)"
//	@Param			category	path		string	true	"Setting category"
//	@Param			key			path		string	true	"Setting key"
//	@Success		200			{object}	APIResponse[settingsapp.SettingResponse]
//	@Failure		404			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings/{category}/{key} [get]
func (h *SettingHandler) GetByCategoryAndKey(c *gin.Context) {
	category := c.Param("category")
	key := c.Param("key")

	setting, err := h.settingService.GetByCategoryAndKey(c.Request.Context(), category, key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, setting)
}

// Create godoc
//
//	@ID				createSetting
//	@Summary		Create a setting
//	@Description	Create a new setting scoped to the caller's tenant
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string								false	"Tenant ID (optional for dev)"
//	@Param			request		body		settingsapp.CreateSettingRequest	true	"Setting creation request"
//	@Success		201			{object}	APIResponse[settingsapp.SettingResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings [post]
func (h *SettingHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req settingsapp.CreateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	setting, err := h.settingService.Create(c.Request.Context(), &tenantID, actorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, setting)
}

// UpdateByID godoc
//
//	@ID				updateSetting
//	@Summary		Update a setting by ID
//	@Description	Update an existing setting's value and/or description
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string								false	"Tenant ID (optional for dev)"
//	@Param			id			path		string								true	"Setting ID"	format(uuid)
//	@Param			request		body		settingsapp.UpdateSettingRequest	true	"Setting update request"
//	@Success		200			{object}	APIResponse[settingsapp.SettingResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings/{id} [put]
func (h *SettingHandler) UpdateByID(c *gin.Context) {
	// The route is registered as /:category so it can share the tree with
	// /:category/:key; the single segment carries the setting ID here.
	settingID, err := uuid.Parse(c.Param("category"))
	if err != nil {
		h.BadRequest(c, "Invalid setting ID format")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req settingsapp.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	setting, err := h.settingService.Update(c.Request.Context(), settingID, actorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, setting)
}

// UpdateByKey godoc
//
//	@ID				updateSettingByCategoryAndKey
//	@Summary		Update a setting by category and key
//	@Description	Update the setting identified by category and key
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string								false	"Tenant ID (optional for dev)"
//	@Param			category	path		string								true	"Setting category"
//	@Param			key			path		string								true	"Setting key"
//	@Param			request		body		settingsapp.UpdateSettingRequest	true	"Setting update request"
//	@Success		200			{object}	APIResponse[settingsapp.SettingResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings/{category}/{key} [put]
func (h *SettingHandler) UpdateByKey(c *gin.Context) {
	category := c.Param("category")
	key := c.Param("key")

	actorID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req settingsapp.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	setting, err := h.settingService.UpdateByKey(c.Request.Context(), category, key, actorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, setting)
}

// UpdateCompany godoc
//
//	@ID				updateCompanySettings
//	@Summary		Update company settings
//	@Description	Bulk update the tenant's company profile settings; absent fields are left untouched
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string								false	"Tenant ID (optional for dev)"
//	@Param			request		body		settingsapp.CompanySettingsRequest	true	"Company settings"
//	@Success		200			{object}	APIResponse[settings.GroupedSettings]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings/company [put]
func (h *SettingHandler) UpdateCompany(c *gin.Context) {
	var req settingsapp.CompanySettingsRequest
	h.updateGroup(c, &req)
}

// UpdateTax godoc
//
//	@ID				updateTaxSettings
//	@Summary		Update tax settings
//	@Description	Bulk update the tenant's VAT and e-invoice settings; absent fields are left untouched
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string							false	"Tenant ID (optional for dev)"
//	@Param			request		body		settingsapp.TaxSettingsRequest	true	"Tax settings"
//	@Success		200			{object}	APIResponse[settings.GroupedSettings]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings/tax [put]
func (h *SettingHandler) UpdateTax(c *gin.Context) {
	var req settingsapp.TaxSettingsRequest
	h.updateGroup(c, &req)
}

// UpdateInvoice godoc
//
//	@ID				updateInvoiceSettings
//	@Summary		Update invoice settings
//	@Description	Bulk update the tenant's invoicing defaults; absent fields are left untouched
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string								false	"Tenant ID (optional for dev)"
//	@Param			request		body		settingsapp.InvoiceSettingsRequest	true	"Invoice settings"
//	@Success		200			{object}	APIResponse[settings.GroupedSettings]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings/invoice [put]
func (h *SettingHandler) UpdateInvoice(c *gin.Context) {
	var req settingsapp.InvoiceSettingsRequest
	h.updateGroup(c, &req)
}

// UpdateSystem godoc
//
//	@ID				updateSystemSettings
//	@Summary		Update system settings
//	@Description	Bulk update the tenant's locale and bookkeeping preferences; absent fields are left untouched
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string								false	"Tenant ID (optional for dev)"
//	@Param			request		body		settingsapp.SystemSettingsRequest	true	"System settings"
//	@Success		200			{object}	APIResponse[settings.GroupedSettings]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings/system [put]
func (h *SettingHandler) UpdateSystem(c *gin.Context) {
	var req settingsapp.SystemSettingsRequest
	h.updateGroup(c, &req)
}

// updateGroup binds a grouped settings payload and applies it
func (h *SettingHandler) updateGroup(c *gin.Context, req settingsapp.GroupUpdateRequest) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := c.ShouldBindJSON(req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	grouped, err := h.settingService.UpdateGroup(c.Request.Context(), tenantID, actorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, grouped)
}

// Delete godoc
//
//	@ID				deleteSetting
//	@Summary		Delete a setting
//	@Description	Delete a setting by its ID
//	@Tags			settings
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	false	"Tenant ID (optional for dev)"
//	@Param			id			path		string	true	"Setting ID"	format(uuid)
//	@Success		200			{object}	APIResponse[settingsapp.DeleteSettingResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings/{id} [delete]
func (h *SettingHandler) Delete(c *gin.Context) {
	settingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid setting ID format")
		return
	}

	result, err := h.settingService.Delete(c.Request.Context(), settingID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
