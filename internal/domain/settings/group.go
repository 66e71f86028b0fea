package settings

// Grouped-settings categories. The dashboard edits settings in four fixed
// groups; rows in any other category are ignored by the grouped read.
const (
	CategoryCompany = "company"
	CategoryTax     = "tax"
	CategoryInvoice = "invoice"
	CategorySystem  = "system"
)

// GroupedCategories lists the categories included in the grouped structure,
// in presentation order.
var GroupedCategories = []string{
	CategoryCompany,
	CategoryTax,
	CategoryInvoice,
	CategorySystem,
}

// groupSchemas maps each grouped category to its recognized field names.
// The association is a fixed table, not reflection over request payloads.
var groupSchemas = map[string][]string{
	CategoryCompany: {
		"companyName", "taxCode", "address", "city", "phone",
		"email", "website", "legalRepresentative", "logo",
	},
	CategoryTax: {
		"defaultVatRate", "vatMethod", "eInvoiceEnabled", "eInvoiceProvider",
		"providerUsername", "providerPassword", "invoiceSeries", "templateCode",
	},
	CategoryInvoice: {
		"invoiceTemplate", "invoicePrefix", "invoiceStartNumber",
		"autoSendEmail", "signatureImage", "defaultPaymentDays",
	},
	CategorySystem: {
		"currency", "language", "dateFormat", "timezone",
		"fiscalYearStart", "decimalPlaces", "autoBackup",
	},
}

// IsGroupedCategory reports whether category is one of the four fixed groups.
func IsGroupedCategory(category string) bool {
	_, ok := groupSchemas[category]
	return ok
}

// GroupSchema returns the recognized field names for a grouped category,
// or nil when the category is not grouped.
func GroupSchema(category string) []string {
	fields, ok := groupSchemas[category]
	if !ok {
		return nil
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// IsGroupField reports whether key is a recognized field of category.
func IsGroupField(category, key string) bool {
	for _, f := range groupSchemas[category] {
		if f == key {
			return true
		}
	}
	return false
}

// GroupedSettings is the fixed four-category structure returned by the
// grouped read: each group maps setting key to its stored value.
type GroupedSettings struct {
	Company map[string]any `json:"company"`
	Tax     map[string]any `json:"tax"`
	Invoice map[string]any `json:"invoice"`
	System  map[string]any `json:"system"`
}

// NewGroupedSettings returns a grouped structure with empty (non-nil) maps
// so a fresh tenant serializes as {} per group rather than null.
func NewGroupedSettings() GroupedSettings {
	return GroupedSettings{
		Company: make(map[string]any),
		Tax:     make(map[string]any),
		Invoice: make(map[string]any),
		System:  make(map[string]any),
	}
}

// Group returns the map for the given category, or nil when the category is
// not one of the four groups.
func (g *GroupedSettings) Group(category string) map[string]any {
	switch category {
	case CategoryCompany:
		return g.Company
	case CategoryTax:
		return g.Tax
	case CategoryInvoice:
		return g.Invoice
	case CategorySystem:
		return g.System
	default:
		return nil
	}
}

// Fold adds the settings to the grouped structure. Settings whose category is
// outside the four groups are silently dropped.
func (g *GroupedSettings) Fold(items []Setting) {
	for i := range items {
		group := g.Group(items[i].Category)
		if group == nil {
			continue
		}
		value, err := items[i].DecodedValue()
		if err != nil {
			continue
		}
		group[items[i].Key] = value
	}
}
