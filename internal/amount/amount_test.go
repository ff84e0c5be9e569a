package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAccepts(t *testing.T) {
	for _, s := range []string{"", "0", "12", "12.", "12.3", "12.345678", "123.456789", ".", ".5", "000.1"} {
		assert.True(t, Valid(s), "expected %q to be accepted", s)
	}
}

func TestValidRejects(t *testing.T) {
	for _, s := range []string{"123.4567890", "12.3.4", "-1", "1e6", "abc", " 1", "1,5", "+2"} {
		assert.False(t, Valid(s), "expected %q to be rejected", s)
	}
}

func TestFilterKeepsPreviousOnReject(t *testing.T) {
	assert.Equal(t, "123.456789", Filter("123.456789", "123.4567890"))
	assert.Equal(t, "12.3", Filter("12.3", "12.3."))
	assert.Equal(t, "12.", Filter("12", "12."))
	assert.Equal(t, "", Filter("1", ""))
}

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		in       string
		decimals int32
		want     string
	}{
		{"1", 6, "1000000"},
		{"0.5", 6, "500000"},
		{"12.", 6, "12000000"},
		{".25", 6, "250000"},
		{"123.456789", 6, "123456789"},
		{"1.5", 18, "1500000000000000000"},
		{"0.123456", 2, "12"},
		{"7", 0, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToBaseUnits(tt.in, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToBaseUnitsEmpty(t *testing.T) {
	_, err := ToBaseUnits("", 6)
	assert.ErrorIs(t, err, ErrEmptyAmount)

	_, err = ToBaseUnits(".", 6)
	assert.ErrorIs(t, err, ErrEmptyAmount)
}

func TestToBaseUnitsInvalid(t *testing.T) {
	_, err := ToBaseUnits("12.3.4", 6)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "1", FormatUnits(big.NewInt(1_000_000), 6))
	assert.Equal(t, "0.5", FormatUnits(big.NewInt(500_000), 6))
	assert.Equal(t, "0", FormatUnits(nil, 6))
	assert.Equal(t, "42", FormatUnits(big.NewInt(42), 0))
}
