package settings

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGroupedCategory(t *testing.T) {
	for _, category := range GroupedCategories {
		assert.True(t, IsGroupedCategory(category), category)
	}
	assert.False(t, IsGroupedCategory("email"))
	assert.False(t, IsGroupedCategory(""))
}

func TestGroupSchema(t *testing.T) {
	t.Run("returns fields for grouped category", func(t *testing.T) {
		fields := GroupSchema(CategoryTax)
		assert.Contains(t, fields, "defaultVatRate")
		assert.Contains(t, fields, "eInvoiceProvider")
	})

	t.Run("returns nil for unknown category", func(t *testing.T) {
		assert.Nil(t, GroupSchema("email"))
	})

	t.Run("returns a copy the caller cannot mutate", func(t *testing.T) {
		fields := GroupSchema(CategorySystem)
		require.NotEmpty(t, fields)
		fields[0] = "mutated"
		assert.NotContains(t, GroupSchema(CategorySystem), "mutated")
	})
}

func TestIsGroupField(t *testing.T) {
	assert.True(t, IsGroupField(CategoryCompany, "taxCode"))
	assert.True(t, IsGroupField(CategorySystem, "fiscalYearStart"))
	assert.False(t, IsGroupField(CategoryCompany, "defaultVatRate"))
	assert.False(t, IsGroupField("email", "smtpHost"))
}

func TestGroupedSettingsFold(t *testing.T) {
	tenantID := uuid.New()
	actorID := uuid.New()

	mustSetting := func(category, key, value string) Setting {
		s, err := NewSetting(&tenantID, category, key, json.RawMessage(value), "", actorID)
		require.NoError(t, err)
		return *s
	}

	t.Run("distributes settings into their groups", func(t *testing.T) {
		grouped := NewGroupedSettings()
		grouped.Fold([]Setting{
			mustSetting("company", "companyName", `"Công ty TNHH ABC"`),
			mustSetting("tax", "defaultVatRate", `"8"`),
			mustSetting("invoice", "autoSendEmail", `"true"`),
			mustSetting("system", "decimalPlaces", `2`),
		})

		assert.Equal(t, "Công ty TNHH ABC", grouped.Company["companyName"])
		assert.Equal(t, "8", grouped.Tax["defaultVatRate"])
		assert.Equal(t, "true", grouped.Invoice["autoSendEmail"])
		assert.Equal(t, float64(2), grouped.System["decimalPlaces"])
	})

	t.Run("drops categories outside the four groups", func(t *testing.T) {
		grouped := NewGroupedSettings()
		grouped.Fold([]Setting{
			mustSetting("email", "smtpHost", `"smtp.example.com"`),
		})

		assert.Empty(t, grouped.Company)
		assert.Empty(t, grouped.Tax)
		assert.Empty(t, grouped.Invoice)
		assert.Empty(t, grouped.System)
	})

	t.Run("empty input keeps non-nil groups", func(t *testing.T) {
		grouped := NewGroupedSettings()
		grouped.Fold(nil)

		assert.NotNil(t, grouped.Company)
		assert.NotNil(t, grouped.System)
	})

	t.Run("serializes empty groups as objects", func(t *testing.T) {
		grouped := NewGroupedSettings()
		raw, err := json.Marshal(grouped)
		require.NoError(t, err)
		assert.JSONEq(t, `{"company":{},"tax":{},"invoice":{},"system":{}}`, string(raw))
	})
}
