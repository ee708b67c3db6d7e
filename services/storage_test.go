package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStorageURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"valid delivery URL", "https://res.cloudinary.com/demo/raw/upload/v123/taxpal-reports/Income_Statement-1724900000000.pdf", true},
		{"wrong host", "https://example.com/raw/upload/v123/file.pdf", false},
		{"missing upload segment", "https://res.cloudinary.com/demo/raw/v123/file.pdf", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidStorageURL(tt.url))
		})
	}
}

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			"folder and extension preserved",
			"https://res.cloudinary.com/demo/raw/upload/v1724900000/taxpal-reports/Income_Statement-1724900000000.pdf",
			"taxpal-reports/Income_Statement-1724900000000.pdf",
		},
		{
			"no version segment after upload",
			"https://res.cloudinary.com/demo/raw/upload/v1/report.csv",
			"report.csv",
		},
		{"no upload segment", "https://res.cloudinary.com/demo/raw/v1/report.csv", ""},
		{"upload at end", "https://res.cloudinary.com/demo/raw/upload", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractPublicID(tt.url))
		})
	}
}
