package price

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money pairs a decimal amount with its currency unit.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func USD(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: currency.USD}
}

func (m Money) Display() string {
	return Format(m.Amount)
}

var ErrUnparsable = errors.New("unparsable price")

// Parse extracts the numeric amount embedded in a display price such as
// "$6.50" or "6.50 USD". Every rune that is not a digit, period, or minus
// sign is discarded before parsing.
func Parse(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparsable, s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparsable, s)
	}
	return d, nil
}

// ParseOrZero applies the degrade-to-zero policy: absent or unparsable
// input yields exactly zero, never an error.
func ParseOrZero(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Format renders an amount as a display price with a fixed two-decimal
// currency prefix, e.g. "$9.00".
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
