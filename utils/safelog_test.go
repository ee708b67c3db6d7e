package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withProduction(t *testing.T, on bool) {
	t.Helper()
	old := IsProduction
	IsProduction = on
	t.Cleanup(func() { IsProduction = old })
}

func TestMaskStringProduction(t *testing.T) {
	withProduction(t, true)

	masked := MaskString("user alice@example.com spent 1500.50")
	assert.NotContains(t, masked, "alice@example.com")
	assert.NotContains(t, masked, "1500.50")
	assert.Contains(t, masked, "***@***.***")

	masked = MaskString("budget 123e4567-e89b-12d3-a456-426614174000 updated")
	assert.Contains(t, masked, "123e4567...")
	assert.NotContains(t, masked, "426614174000")
}

func TestMaskStringDevelopment(t *testing.T) {
	withProduction(t, false)

	input := "user alice@example.com spent 1500.50"
	assert.Equal(t, input, MaskString(input))
}

func TestMaskID(t *testing.T) {
	withProduction(t, true)
	assert.Equal(t, "123e4567...", MaskID("123e4567-e89b-12d3-a456-426614174000"))
	assert.Equal(t, "***", MaskID("short"))

	withProduction(t, false)
	assert.Equal(t, "short", MaskID("short"))
}

func TestMaskEmail(t *testing.T) {
	withProduction(t, true)
	assert.Equal(t, "***@***.***", MaskEmail("alice@example.com"))

	withProduction(t, false)
	assert.Equal(t, "alice@example.com", MaskEmail("alice@example.com"))
}
