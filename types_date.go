package fundledger

import "github.com/etnz/fundledger/date"

// Date is a calendar date with day granularity.
type Date = date.Date

// Today returns the current date.
func Today() Date { return date.Today() }

// NewDate returns a normalized Date for the given year, month, and day.
var NewDate = date.New

// ParseDate parses a date in the "2006-01-02" format.
func ParseDate(s string) (Date, error) { return date.Parse(s) }
