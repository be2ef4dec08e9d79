package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"accepts ASC", "ASC", "ASC"},
		{"accepts lowercase asc", "asc", "ASC"},
		{"accepts DESC", "DESC", "DESC"},
		{"trims whitespace", "  asc  ", "ASC"},
		{"defaults empty to DESC", "", "DESC"},
		{"defaults garbage to DESC", "sideways", "DESC"},
		{"defaults injection attempt to DESC", "ASC; DROP TABLE invoices", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted fields", func(t *testing.T) {
		assert.Equal(t, "to_date", ValidateSortField("to_date", InvoiceSortFields, "created_at"))
		assert.Equal(t, "price_per_day", ValidateSortField("price_per_day", NewsPaperSortFields, "name"))
	})

	t.Run("falls back to the default for unknown fields", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("password", InvoiceSortFields, "created_at"))
		assert.Equal(t, "name", ValidateSortField("name; DROP TABLE customers", CustomerSortFields, "name"))
	})

	t.Run("falls back to the default for empty input", func(t *testing.T) {
		assert.Equal(t, "date", ValidateSortField("  ", DeliverySortFields, "date"))
	})
}

func TestSortFieldWhitelists(t *testing.T) {
	t.Run("every whitelist carries the common base fields", func(t *testing.T) {
		whitelists := map[string]map[string]bool{
			"customers":     CustomerSortFields,
			"newspapers":    NewsPaperSortFields,
			"subscriptions": SubscriptionSortFields,
			"deliveries":    DeliverySortFields,
			"invoices":      InvoiceSortFields,
			"payments":      PaymentSortFields,
		}
		for name, fields := range whitelists {
			for common := range CommonSortFields {
				assert.True(t, fields[common], "%s missing %s", name, common)
			}
		}
	})
}
