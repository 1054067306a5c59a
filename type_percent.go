package fundledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage, 12.5 means 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// percentOf returns a/b*100 as a Percent. b must not be zero.
func percentOf(a, b decimal.Decimal) Percent {
	return Percent(a.Div(b).Mul(hundred).InexactFloat64())
}

var hundred = decimal.NewFromInt(100)
