package trading

import (
	"testing"

	"github.com/ericlagergren/decimal"
	"github.com/stretchr/testify/require"
)

func TestExplicitQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{name: "integer", raw: "10"},
		{name: "four fractional digits", raw: "0.0001"},
		{name: "zero", raw: "0"},
		{name: "scientific notation", raw: "1e2"},
		{name: "negative", raw: "-1", err: ErrQuantityNegative},
		{name: "negative fraction", raw: "-0.5", err: ErrQuantityNegative},
		{name: "five fractional digits", raw: "0.00001", err: ErrQuantityPrecision},
		{name: "empty", raw: "", err: ErrQuantityMalformed},
		{name: "garbage", raw: "ten", err: ErrQuantityMalformed},
		{name: "nan", raw: "NaN", err: ErrQuantityMalformed},
		{name: "infinity", raw: "Inf", err: ErrQuantityMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ExplicitQuantity(tt.raw)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, q.explicit)
			require.False(t, q.all)
		})
	}
}

func TestUseAllBalance(t *testing.T) {
	q := UseAllBalance()
	require.True(t, q.all)
	require.Nil(t, q.explicit)
}

func TestFloorToScale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "3333.33333333", want: "3333.3333"},
		{in: "0.99999", want: "0.9999"},
		{in: "5", want: "5"},
		{in: "0.5", want: "0.5"},
		{in: "0", want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			in, ok := new(decimal.Big).SetString(tt.in)
			require.True(t, ok)
			want, ok := new(decimal.Big).SetString(tt.want)
			require.True(t, ok)

			got := floorToScale(in)
			require.Zero(t, want.Cmp(got), "expected %s, got %s", want, got)
			// input must stay untouched
			orig, _ := new(decimal.Big).SetString(tt.in)
			require.Zero(t, orig.Cmp(in))
		})
	}
}
