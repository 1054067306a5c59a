package fundledger

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// Position is the ownership of a single fund, tracked day after day.
//
// The ledger is append-only and in chronological order. A Position is not
// safe for concurrent use.
type Position struct {
	code         string
	label        string
	openingPrice decimal.Decimal
	openingDate  Date
	ledger       []Entry
}

// NormalizeCode returns the canonical form of a fund code.
func NormalizeCode(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }

// NewPosition creates a Position from its recorded state.
//
// The ledger is validated: days must be non-negative and strictly increasing,
// and longer-horizon returns must be present exactly on refresh days. The
// label is transliterated to ASCII.
func NewPosition(code, label string, openingPrice decimal.Decimal, openingDate Date, ledger ...Entry) (*Position, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty fund code", ErrInvalidRecord)
	}
	if openingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: %s: negative opening price %v", ErrInvalidRecord, code, openingPrice)
	}
	if openingDate.IsZero() {
		return nil, fmt.Errorf("%w: %s: missing opening date", ErrInvalidRecord, code)
	}
	p := &Position{
		code:         code,
		label:        Transliterate(label),
		openingPrice: openingPrice,
		openingDate:  openingDate,
		ledger:       make([]Entry, 0, len(ledger)),
	}
	for i, e := range ledger {
		if e.Day < 0 {
			return nil, fmt.Errorf("%w: %s: entry #%d has negative day %d", ErrInvalidRecord, code, i, e.Day)
		}
		if i > 0 && e.Day <= ledger[i-1].Day {
			return nil, fmt.Errorf("%w: %s: entry #%d day %d is not after day %d", ErrInvalidRecord, code, i, e.Day, ledger[i-1].Day)
		}
		if IsRefreshDay(e.Day) != (e.Returns != nil) {
			return nil, fmt.Errorf("%w: %s: entry #%d day %d: returns must be present only every %d days", ErrInvalidRecord, code, i, e.Day, refreshInterval)
		}
		p.ledger = append(p.ledger, e.clone())
	}
	return p, nil
}

// Open opens a new position on a fund, using the latest snapshot from src as
// opening price. The ledger starts empty.
func Open(ctx context.Context, src Source, code string, on Date) (*Position, error) {
	code = NormalizeCode(code)
	s, err := fetch(ctx, src, code)
	if err != nil {
		return nil, err
	}
	log.Printf("%v: opened %s %q at %v", on, code, s.Label, s.Price)
	return NewPosition(code, s.Label, s.Price, on)
}

func (p *Position) Code() string                  { return p.code }
func (p *Position) Label() string                 { return p.label }
func (p *Position) OpeningPrice() decimal.Decimal { return p.openingPrice }
func (p *Position) OpeningDate() Date             { return p.openingDate }

// Len returns the number of entries in the ledger.
func (p *Position) Len() int { return len(p.ledger) }

// Entries returns a copy of the ledger.
func (p *Position) Entries() []Entry {
	entries := make([]Entry, len(p.ledger))
	for i, e := range p.ledger {
		entries[i] = e.clone()
	}
	return entries
}

// LastEntry returns the last ledger entry, if any.
func (p *Position) LastEntry() (Entry, bool) {
	if len(p.ledger) == 0 {
		return Entry{}, false
	}
	return p.ledger[len(p.ledger)-1].clone(), true
}

// Price returns the last known price of the fund.
func (p *Position) Price() decimal.Decimal {
	price := p.openingPrice
	for _, e := range p.ledger {
		price = price.Add(e.PriceDelta)
	}
	return price
}

// DailyUpdate appends the ledger entry for the day 'on', fetching the fund
// snapshot from src.
//
// If the ledger already has an entry for that day, nothing is fetched nor
// appended. It returns true if an entry was appended.
func (p *Position) DailyUpdate(ctx context.Context, src Source, on Date) (bool, error) {
	day := on.DaysSince(p.openingDate)
	if day < 0 {
		return false, fmt.Errorf("%w: %s opened on %v, cannot update on %v", ErrDateOrder, p.code, p.openingDate, on)
	}
	if n := len(p.ledger); n > 0 {
		last := p.ledger[n-1].Day
		if last == day {
			return false, nil // already up to date
		}
		if last > day {
			return false, fmt.Errorf("%w: %s has day %d, cannot update on day %d", ErrDateOrder, p.code, last, day)
		}
	}

	s, err := fetch(ctx, src, p.code)
	if err != nil {
		return false, err
	}

	lastKnown := p.Price()
	if lastKnown.IsZero() {
		return false, fmt.Errorf("%w: %s on %v", ErrZeroPrice, p.code, on)
	}
	delta := s.Price.Sub(lastKnown)
	e := Entry{
		Day:        day,
		PriceDelta: delta,
		Return:     percentOf(delta, lastKnown),
	}
	if IsRefreshDay(day) {
		e.Returns = s.Returns()
	}
	p.ledger = append(p.ledger, e)
	log.Printf("%v: %s day %d price %v (%v)", on, p.code, day, s.Price, e.Return.SignedString())
	return true, nil
}

// RecordShareChange records that delta shares were bought (or sold if
// negative) on the day 'on'.
//
// The ledger is first updated for that day, so that several trades on the
// same day accumulate in a single entry. Selling more shares than held is
// rejected with ErrOversell.
func (p *Position) RecordShareChange(ctx context.Context, src Source, on Date, delta int64) error {
	if _, err := p.DailyUpdate(ctx, src, on); err != nil {
		return err
	}
	if held := p.TotalShares(); held+delta < 0 {
		return fmt.Errorf("%w: %s holds %d shares, cannot sell %d", ErrOversell, p.code, held, -delta)
	}
	last := &p.ledger[len(p.ledger)-1]
	last.Shares += delta
	log.Printf("%v: %s shares %+d", on, p.code, delta)
	return nil
}

// TotalShares returns the number of shares currently held.
func (p *Position) TotalShares() int64 {
	var shares int64
	for _, e := range p.ledger {
		shares += e.Shares
	}
	return shares
}

// ProfitSeries returns, for each entry, the profit made on that day by the
// shares held before that day's trade.
func (p *Position) ProfitSeries() []decimal.Decimal {
	series := make([]decimal.Decimal, len(p.ledger))
	var held int64
	for i, e := range p.ledger {
		series[i] = decimal.NewFromInt(held).Mul(e.PriceDelta)
		held += e.Shares
	}
	return series
}

// TotalProfit returns the sum of the profit series.
func (p *Position) TotalProfit() decimal.Decimal {
	return decimal.Sum(decimal.Zero, p.ProfitSeries()...)
}

// TotalCostBasis returns the net cash deployed in the position, each trade
// being valued at the price of its day. It is negative if the position is a
// net seller.
func (p *Position) TotalCostBasis() decimal.Decimal {
	cost := decimal.Zero
	price := p.openingPrice
	for _, e := range p.ledger {
		price = price.Add(e.PriceDelta)
		cost = cost.Add(decimal.NewFromInt(e.Shares).Mul(price))
	}
	return cost
}

// ProfitPercentage returns the total profit relative to the cost basis. It
// is zero when the cost basis is zero.
func (p *Position) ProfitPercentage() Percent {
	cost := p.TotalCostBasis()
	if cost.IsZero() {
		return 0
	}
	return percentOf(p.TotalProfit(), cost)
}

// ValueSeries returns the market value of the position after each entry.
func (p *Position) ValueSeries() []decimal.Decimal {
	series := make([]decimal.Decimal, len(p.ledger))
	var held int64
	price := p.openingPrice
	for i, e := range p.ledger {
		held += e.Shares
		price = price.Add(e.PriceDelta)
		series[i] = decimal.NewFromInt(held).Mul(price)
	}
	return series
}

// CurrentValue returns the last value of the position, or zero if the ledger is empty.
func (p *Position) CurrentValue() decimal.Decimal {
	series := p.ValueSeries()
	if len(series) == 0 {
		return decimal.Zero
	}
	return series[len(series)-1]
}
