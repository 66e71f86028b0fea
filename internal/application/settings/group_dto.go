package settings

import (
	"strconv"

	"github.com/ketoan/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// GroupUpdateRequest is implemented by the four grouped-settings DTOs. Each
// DTO fixes the target category and reports which fields the caller actually
// supplied, coerced to their stored string form.
type GroupUpdateRequest interface {
	// Category returns the settings category this DTO writes to.
	Category() string
	// Fields returns the supplied fields as key to string-coerced value.
	// Absent (nil) fields are omitted entirely so they are never written.
	Fields() map[string]string
}

// CompanySettingsRequest updates the "company" settings group
type CompanySettingsRequest struct {
	CompanyName         *string `json:"companyName" binding:"omitempty,max=200"`
	TaxCode             *string `json:"taxCode" binding:"omitempty,max=20"`
	Address             *string `json:"address" binding:"omitempty,max=500"`
	City                *string `json:"city" binding:"omitempty,max=100"`
	Phone               *string `json:"phone" binding:"omitempty,max=20"`
	Email               *string `json:"email" binding:"omitempty,email"`
	Website             *string `json:"website" binding:"omitempty,max=200"`
	LegalRepresentative *string `json:"legalRepresentative" binding:"omitempty,max=200"`
	Logo                *string `json:"logo"`
}

func (r *CompanySettingsRequest) Category() string { return settings.CategoryCompany }

func (r *CompanySettingsRequest) Fields() map[string]string {
	fields := make(map[string]string)
	putString(fields, "companyName", r.CompanyName)
	putString(fields, "taxCode", r.TaxCode)
	putString(fields, "address", r.Address)
	putString(fields, "city", r.City)
	putString(fields, "phone", r.Phone)
	putString(fields, "email", r.Email)
	putString(fields, "website", r.Website)
	putString(fields, "legalRepresentative", r.LegalRepresentative)
	putString(fields, "logo", r.Logo)
	return fields
}

// TaxSettingsRequest updates the "tax" settings group
type TaxSettingsRequest struct {
	DefaultVatRate   *decimal.Decimal `json:"defaultVatRate"`
	VatMethod        *string          `json:"vatMethod" binding:"omitempty,oneof=deduction direct"`
	EInvoiceEnabled  *bool            `json:"eInvoiceEnabled"`
	EInvoiceProvider *string          `json:"eInvoiceProvider" binding:"omitempty,max=100"`
	ProviderUsername *string          `json:"providerUsername" binding:"omitempty,max=100"`
	ProviderPassword *string          `json:"providerPassword" binding:"omitempty,max=100"`
	InvoiceSeries    *string          `json:"invoiceSeries" binding:"omitempty,max=20"`
	TemplateCode     *string          `json:"templateCode" binding:"omitempty,max=50"`
}

func (r *TaxSettingsRequest) Category() string { return settings.CategoryTax }

func (r *TaxSettingsRequest) Fields() map[string]string {
	fields := make(map[string]string)
	if r.DefaultVatRate != nil {
		fields["defaultVatRate"] = r.DefaultVatRate.String()
	}
	putString(fields, "vatMethod", r.VatMethod)
	putBool(fields, "eInvoiceEnabled", r.EInvoiceEnabled)
	putString(fields, "eInvoiceProvider", r.EInvoiceProvider)
	putString(fields, "providerUsername", r.ProviderUsername)
	putString(fields, "providerPassword", r.ProviderPassword)
	putString(fields, "invoiceSeries", r.InvoiceSeries)
	putString(fields, "templateCode", r.TemplateCode)
	return fields
}

// InvoiceSettingsRequest updates the "invoice" settings group
type InvoiceSettingsRequest struct {
	InvoiceTemplate    *string `json:"invoiceTemplate" binding:"omitempty,max=50"`
	InvoicePrefix      *string `json:"invoicePrefix" binding:"omitempty,max=20"`
	InvoiceStartNumber *int    `json:"invoiceStartNumber" binding:"omitempty,min=1"`
	AutoSendEmail      *bool   `json:"autoSendEmail"`
	SignatureImage     *string `json:"signatureImage"`
	DefaultPaymentDays *int    `json:"defaultPaymentDays" binding:"omitempty,min=0,max=365"`
}

func (r *InvoiceSettingsRequest) Category() string { return settings.CategoryInvoice }

func (r *InvoiceSettingsRequest) Fields() map[string]string {
	fields := make(map[string]string)
	putString(fields, "invoiceTemplate", r.InvoiceTemplate)
	putString(fields, "invoicePrefix", r.InvoicePrefix)
	putInt(fields, "invoiceStartNumber", r.InvoiceStartNumber)
	putBool(fields, "autoSendEmail", r.AutoSendEmail)
	putString(fields, "signatureImage", r.SignatureImage)
	putInt(fields, "defaultPaymentDays", r.DefaultPaymentDays)
	return fields
}

// SystemSettingsRequest updates the "system" settings group
type SystemSettingsRequest struct {
	Currency        *string `json:"currency" binding:"omitempty,len=3"`
	Language        *string `json:"language" binding:"omitempty,oneof=vi en"`
	DateFormat      *string `json:"dateFormat" binding:"omitempty,max=20"`
	Timezone        *string `json:"timezone" binding:"omitempty,max=50"`
	FiscalYearStart *int    `json:"fiscalYearStart" binding:"omitempty,min=1,max=12"`
	DecimalPlaces   *int    `json:"decimalPlaces" binding:"omitempty,min=0,max=6"`
	AutoBackup      *bool   `json:"autoBackup"`
}

func (r *SystemSettingsRequest) Category() string { return settings.CategorySystem }

func (r *SystemSettingsRequest) Fields() map[string]string {
	fields := make(map[string]string)
	putString(fields, "currency", r.Currency)
	putString(fields, "language", r.Language)
	putString(fields, "dateFormat", r.DateFormat)
	putString(fields, "timezone", r.Timezone)
	putInt(fields, "fiscalYearStart", r.FiscalYearStart)
	putInt(fields, "decimalPlaces", r.DecimalPlaces)
	putBool(fields, "autoBackup", r.AutoBackup)
	return fields
}

func putString(fields map[string]string, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}

func putBool(fields map[string]string, key string, value *bool) {
	if value != nil {
		fields[key] = strconv.FormatBool(*value)
	}
}

func putInt(fields map[string]string, key string, value *int) {
	if value != nil {
		fields[key] = strconv.Itoa(*value)
	}
}
