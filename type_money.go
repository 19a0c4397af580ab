package barwatch

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value, kept as an exact decimal in major units.
// Fund metrics arrive as USD figures (total assets, spot silver price).
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// USD is a shorthand for M(value, "USD").
func USD[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return M(value, "USD")
}

// currency returns the money's currency metadata.
func (m Money) currency() money.Currency {
	// to get a never nil currency we go through the money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the formatted representation, e.g. "$38.42".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string { return m.cur }
func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsPositive() bool { return m.value.IsPositive() }

// DivPrice divides a money amount by a per-ounce price, yielding ounces.
// This is the fallback expected-holdings derivation: assets ÷ spot price.
func (m Money) DivPrice(price Money) Ounces {
	return Ounces{value: m.value.Div(price.value)}
}
