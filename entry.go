package fundledger

import "github.com/shopspring/decimal"

// refreshInterval is the number of tracked days between two refreshes of the
// longer-horizon returns.
const refreshInterval = 10

// IsRefreshDay reports whether the entry of that day carries the longer-horizon returns.
func IsRefreshDay(day int) bool { return day%refreshInterval == 0 }

// Returns holds the longer-horizon returns of a fund.
type Returns struct {
	OneMonth    Percent
	ThreeMonths Percent
	SixMonths   Percent
	OneYear     Percent
}

// Entry is one day of a position ledger.
type Entry struct {
	// Day is the number of days elapsed since the opening of the position.
	Day int
	// Shares is the net number of shares bought (positive) or sold (negative) that day.
	Shares int64
	// PriceDelta is the price change since the previous entry, or since the opening price.
	PriceDelta decimal.Decimal
	// Return is the price change since the previous entry, in percent.
	Return Percent
	// Returns is set if and only if IsRefreshDay(Day).
	Returns *Returns
}

// clone returns a deep copy of e.
func (e Entry) clone() Entry {
	if e.Returns != nil {
		r := *e.Returns
		e.Returns = &r
	}
	return e
}
