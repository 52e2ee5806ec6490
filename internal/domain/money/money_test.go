package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₱0.00"},
		{"5", "₱5.00"},
		{"1234.5", "₱1,234.50"},
		{"1234567.891", "₱1,234,567.89"},
		{"999", "₱999.00"},
		{"1000", "₱1,000.00"},
		{"-5", "₱-5.00"},
		{"-1234.5", "₱-1,234.50"},
	}
	for _, tc := range tests {
		d := decimal.RequireFromString(tc.in)
		assert.Equal(t, tc.want, Format(d), "input %s", tc.in)
	}
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("  120,50 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("120.50")))

	_, err = ParseAmount("abc")
	assert.Error(t, err)

	_, err = ParseAmount("-3")
	assert.Error(t, err)

	_, err = ParseAmount("")
	assert.Error(t, err)
}

func TestParseOptionalAmount(t *testing.T) {
	assert.True(t, ParseOptionalAmount("12").Equal(decimal.NewFromInt(12)))
	// мусор и отрицательные значения молча уходят в ноль
	assert.True(t, ParseOptionalAmount("garbage").IsZero())
	assert.True(t, ParseOptionalAmount("-1").IsZero())
	assert.True(t, ParseOptionalAmount("").IsZero())
}
