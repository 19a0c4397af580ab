package barwatch

import (
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Ounces is a troy-ounce weight. It keeps the exact decimal value parsed
// from a document so that totals and tolerance comparisons never drift.
type Ounces struct {
	value decimal.Decimal
}

func Oz[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Ounces {
	return Ounces{value: newDecimal(value)}
}

// ParseOunces parses a weight token such as "1,060.100" (comma thousands
// separators allowed). Empty and dash tokens report ok=false.
func ParseOunces(token string) (oz Ounces, ok bool) {
	token = cleanNumberToken(token)
	if token == "" {
		return Ounces{}, false
	}
	d, err := decimal.NewFromString(token)
	if err != nil {
		return Ounces{}, false
	}
	return Ounces{value: d}, true
}

func (o Ounces) Add(p Ounces) Ounces { return Ounces{value: o.value.Add(p.value)} }
func (o Ounces) Sub(p Ounces) Ounces { return Ounces{value: o.value.Sub(p.value)} }
func (o Ounces) Mul(r Ratio) Ounces { return Ounces{value: o.value.Mul(r.value)} }
func (o Ounces) Abs() Ounces { return Ounces{value: o.value.Abs()} }
func (o Ounces) Equal(p Ounces) bool { return o.value.Equal(p.value) }
func (o Ounces) LessThan(p Ounces) bool { return o.value.LessThan(p.value) }
func (o Ounces) GreaterThan(p Ounces) bool { return o.value.GreaterThan(p.value) }
func (o Ounces) IsZero() bool { return o.value.IsZero() }
func (o Ounces) IsPositive() bool { return o.value.IsPositive() }
func (o Ounces) IsNegative() bool { return o.value.IsNegative() }
func (o Ounces) String() string { return o.value.String() }
func (o Ounces) InexactFloat64() float64 { return o.value.InexactFloat64() }
func (o Ounces) Decimal() decimal.Decimal { return o.value }

// PercentOf returns o as a percentage of base: o / base × 100.
func (o Ounces) PercentOf(base Ounces) decimal.Decimal {
	return o.value.Div(base.value).Mul(decimal.NewFromInt(100))
}

// MarshalJSON writes the exact value as a bare JSON number, so stores and
// reports keep the numeric shape older readers expect.
func (o Ounces) MarshalJSON() ([]byte, error) {
	return []byte(o.value.String()), nil
}

func (o *Ounces) UnmarshalJSON(b []byte) error {
	return o.value.UnmarshalJSON(b)
}

// Ratio is a dimensionless decimal in [0,1], used for assay fineness.
type Ratio struct {
	value decimal.Decimal
}

func R[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Ratio {
	return Ratio{value: newDecimal(value)}
}

// ParseRatio parses a fineness token such as "0.9990".
func ParseRatio(token string) (r Ratio, ok bool) {
	token = cleanNumberToken(token)
	if token == "" {
		return Ratio{}, false
	}
	d, err := decimal.NewFromString(token)
	if err != nil {
		return Ratio{}, false
	}
	return Ratio{value: d}, true
}

// RatioFromAssay converts an integer assay such as 9990 into 0.9990.
func RatioFromAssay(assay int64) Ratio {
	return Ratio{value: decimal.NewFromInt(assay).Shift(-4)}
}

func (r Ratio) Equal(s Ratio) bool { return r.value.Equal(s.value) }
func (r Ratio) IsZero() bool { return r.value.IsZero() }
func (r Ratio) IsPositive() bool { return r.value.IsPositive() }
func (r Ratio) String() string { return r.value.String() }
func (r Ratio) InexactFloat64() float64 { return r.value.InexactFloat64() }

// Between reports lo <= r <= hi.
func (r Ratio) Between(lo, hi Ratio) bool {
	return r.value.GreaterThanOrEqual(lo.value) && r.value.LessThanOrEqual(hi.value)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	return []byte(r.value.String()), nil
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	return r.value.UnmarshalJSON(b)
}

// cleanNumberToken strips thousands separators and placeholder dashes.
func cleanNumberToken(raw string) string {
	token := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if token == "-" || token == "--" {
		return ""
	}
	return token
}
