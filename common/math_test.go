package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatStringToBig(t *testing.T) {
	tests := []struct {
		value   string
		decimal uint64
		want    string
	}{
		{"1.5", 18, "1500000000000000000"},
		{"0.000001", 6, "1"},
		{"42", 0, "42"},
		{".5", 1, "5"},
		{"-2.25", 2, "-225"},
		{" 3 ", 3, "3000"},
	}
	for _, tt := range tests {
		got, err := FloatStringToBig(tt.value, tt.decimal)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got.String(), tt.value)
	}

	_, err := FloatStringToBig("0.0000001", 6)
	require.Error(t, err)
	_, err = FloatStringToBig("abc", 6)
	require.Error(t, err)
}

func TestBigToFloatString(t *testing.T) {
	tests := []struct {
		value   *big.Int
		decimal uint64
		want    string
	}{
		{big.NewInt(1100), 3, "1.1"},
		{big.NewInt(1100), 2, "11"},
		{big.NewInt(1100), 5, "0.011"},
		{big.NewInt(0), 18, "0"},
		{big.NewInt(7), 18, "0.000000000000000007"},
		{big.NewInt(-1500), 3, "-1.5"},
		{big.NewInt(12), 0, "12"},
		{nil, 6, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BigToFloatString(tt.value, tt.decimal))
	}
}

func TestFloatStringRoundTrip(t *testing.T) {
	for _, s := range []string{"0.003", "2000", "123456789.987654321"} {
		v, err := FloatStringToBig(s, 18)
		require.NoError(t, err)
		assert.Equal(t, s, BigToFloatString(v, 18))
	}
}

func TestIsMaxUint256(t *testing.T) {
	assert.True(t, IsMaxUint256(new(big.Int).Set(MaxUint256)))
	assert.False(t, IsMaxUint256(big.NewInt(1)))
	assert.False(t, IsMaxUint256(nil))
}

func TestStringToBigInt(t *testing.T) {
	v, err := StringToBigInt("1000")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), v.Int64())

	_, err = StringToBigInt("0x10")
	require.Error(t, err)

	v, err = HexToBig("0x10")
	require.NoError(t, err)
	assert.Equal(t, int64(16), v.Int64())
}
