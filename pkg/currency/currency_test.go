package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain integer", "1234", "1234", false},
		{"decimal comma", "1234,56", "1234.56", false},
		{"thousands separator", "1.234,56", "1234.56", false},
		{"millions", "1.234.567,89", "1234567.89", false},
		{"euro sign", "1.234,56 €", "1234.56", false},
		{"eur suffix", "99,00 EUR", "99", false},
		{"negative", "-12,50", "-12.5", false},
		{"zero", "0", "0", false},
		{"empty", "", "", true},
		{"bad grouping", "12.34,56", "", true},
		{"double comma", "1,2,3", "", true},
		{"garbage", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s want %s", got, want)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0,00 €"},
		{"1234.56", "1.234,56 €"},
		{"1234567.89", "1.234.567,89 €"},
		{"-12.5", "-12,50 €"},
		{"990", "990,00 €"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, Format(d))
	}
}

// Formatting then re-parsing must return the original cent-exact value.
func TestFormatParseRoundTrip(t *testing.T) {
	values := []string{"0", "0.01", "102", "1230", "5830.25", "-4500.10", "1234567.89"}

	for _, v := range values {
		d, err := decimal.NewFromString(v)
		require.NoError(t, err)

		back, err := Parse(Format(d))
		require.NoError(t, err)
		assert.True(t, back.Equal(d), "round trip of %s gave %s", d, back)
	}
}
