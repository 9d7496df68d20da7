package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1.00"},
		{"100", "100.00"},
		{"19.999", "20.00"},
		{"1.005", "1.01"},
		{"2.345", "2.35"},
		{"2.344", "2.34"},
		{"0.005", "0.01"},
		{" 2.50 ", "2.50"},
		{"-5", "5.00"},
		{"-19.999", "20.00"},
		{"1e2", "100.00"},
		{"999999999999999.99", "999999999999999.99"},
		{"0.12345678901234567890123456789", "0.12"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.want, got.StringFixed(2), "input: %q", tt.input)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	badInputs := []string{
		"",
		"   ",
		"0",
		"0.00",
		"-0",
		"0.001",
		"abc",
		"1.2.3",
		"12,34",
		"1e16",
		"1e20000000",
		"1e2000000000",
		"-1e2000000000",
		"1e-2000000000",
		"1000000000000000",
		"999999999999999.999",
	}
	for _, input := range badInputs {
		_, err := ParseAmount(input)
		require.Error(t, err, "expected error for input: %q", input)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestNormalizeAmount(t *testing.T) {
	assert.True(t, NormalizeAmount(dec("-3.333")).Equal(dec("3.33")))
	assert.True(t, NormalizeAmount(dec("3.335")).Equal(dec("3.34")))
	assert.Equal(t, "20.00", NormalizeAmount(dec("19.999")).StringFixed(2))
}

func TestClampAmountInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-5", "5"},
		{"-12.50", "12.50"},
		{" -3 ", "3"},
		{"7", "7"},
		{"", ""},
		{"abc", "abc"},
		{"-", "-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampAmountInput(tt.input), "input: %q", tt.input)
	}
}
