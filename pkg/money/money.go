// Package money provides the monetary value type used across the service.
//
// Invariants:
//   - Amounts are rounded to two decimal places on construction.
//   - Amounts serialize as JSON strings with exactly two decimals ("15.99").
package money

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places kept for every amount.
const Places = 2

// ErrInvalidAmount is returned when an amount cannot be parsed or is negative.
var ErrInvalidAmount = fmt.Errorf("invalid amount")

// Amount is a non-negative monetary value with two decimal places.
type Amount struct {
	decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{decimal.Zero}

// New rounds d to two decimal places.
func New(d decimal.Decimal) Amount {
	return Amount{d.Round(Places)}
}

// NewFromFloat builds an Amount from a float, rounding to two places.
func NewFromFloat(f float64) Amount {
	return New(decimal.NewFromFloat(f))
}

// Parse parses a decimal string such as "15.99". Negative values are rejected.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return Zero, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	return New(d), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("money.MustParse(%q): %v", s, err))
	}
	return a
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return New(a.Decimal.Add(b.Decimal))
}

// Mul returns a multiplied by n.
func (a Amount) Mul(n int64) Amount {
	return New(a.Decimal.Mul(decimal.NewFromInt(n)))
}

// Equal reports whether both amounts hold the same value.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

// String returns the amount with exactly two decimals.
func (a Amount) String() string {
	return a.StringFixed(Places)
}

// Sum adds up all amounts.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both quoted strings and bare numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	*a = New(d)
	return nil
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*a = New(d)
	return nil
}
