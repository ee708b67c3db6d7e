package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencySymbolForCountry(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		expected string
	}{
		{"india", "India", "₹"},
		{"united states", "United States", "$"},
		{"case and whitespace insensitive", "  united KINGDOM ", "£"},
		{"eurozone", "Germany", "€"},
		{"unknown defaults to rupee", "Atlantis", "₹"},
		{"empty defaults to rupee", "", "₹"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CurrencySymbolForCountry(tt.country))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234.50", FormatAmount(1234.5, "united states"))
	assert.Equal(t, "0.00", FormatAmount(0, "united states"))
	assert.Equal(t, "999.99", FormatAmount(999.99, "india"))

	// Unknown countries format as en-US.
	assert.Equal(t, "1,234.50", FormatAmount(1234.5, "Atlantis"))
}

func TestFormatAmountIndianGrouping(t *testing.T) {
	// en-IN groups lakhs and crores.
	assert.Equal(t, "1,00,000.00", FormatAmount(100000, "india"))
}

func TestFormatAmountWithSymbol(t *testing.T) {
	assert.Equal(t, "500.00", FormatAmountWithSymbol(500, "₹"))
	assert.Equal(t, "1,234.50", FormatAmountWithSymbol(1234.5, "$"))

	// Unknown symbols fall back to en-IN.
	assert.Equal(t, "42.00", FormatAmountWithSymbol(42, "☂"))
}
