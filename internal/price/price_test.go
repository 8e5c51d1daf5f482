package price

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ExtractsEmbeddedNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"$6.50", "6.5"},
		{"6.50", "6.5"},
		{"USD 4.00", "4"},
		{"  $12.99 / each ", "12.99"},
		{"0", "0"},
		{"-5", "-5"},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"input %q: got %s want %s", tc.in, got, tc.want)
	}
}

func TestParse_Unparsable(t *testing.T) {
	for _, in := range []string{"", "free", "$", "-", "...", "1.2.3"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnparsable, "input %q", in)
		assert.True(t, ParseOrZero(in).IsZero(), "input %q", in)
	}
}

func TestParseOrZero_PassesThrough(t *testing.T) {
	assert.True(t, ParseOrZero("$4.50").Equal(decimal.RequireFromString("4.5")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$9.00", Format(decimal.RequireFromString("9")))
	assert.Equal(t, "$0.00", Format(decimal.Zero))
	assert.Equal(t, "$4.50", Format(decimal.RequireFromString("4.5")))
}

func TestMoneyDisplay(t *testing.T) {
	m := USD(decimal.RequireFromString("13.5"))
	assert.Equal(t, "$13.50", m.Display())
	assert.Equal(t, "USD", m.Currency.String())
}
