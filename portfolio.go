package fundledger

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Portfolio is a named set of positions, keyed by fund code.
//
// Positions are kept in insertion order.
type Portfolio struct {
	name        string
	codes       []string
	positions   map[string]*Position
	parallelism int
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio(name string) *Portfolio {
	return &Portfolio{
		name:        name,
		positions:   make(map[string]*Position),
		parallelism: 1,
	}
}

func (p *Portfolio) Name() string { return p.name }

// Len returns the number of positions.
func (p *Portfolio) Len() int { return len(p.codes) }

// Codes returns the fund codes in insertion order.
func (p *Portfolio) Codes() []string { return append([]string(nil), p.codes...) }

// Position returns the position on that fund, or nil.
func (p *Portfolio) Position(code string) *Position { return p.positions[NormalizeCode(code)] }

// Positions returns the positions in insertion order.
func (p *Portfolio) Positions() []*Position {
	positions := make([]*Position, len(p.codes))
	for i, code := range p.codes {
		positions[i] = p.positions[code]
	}
	return positions
}

// SetParallelism sets the maximum number of positions updated concurrently
// by DailyUpdate. Values below 1 mean sequential updates.
func (p *Portfolio) SetParallelism(n int) {
	if n < 1 {
		n = 1
	}
	p.parallelism = n
}

// Add adds an existing position to the portfolio.
func (p *Portfolio) Add(pos *Position) error {
	if _, exists := p.positions[pos.Code()]; exists {
		return fmt.Errorf("%w: %s in portfolio %q", ErrDuplicatePosition, pos.Code(), p.name)
	}
	p.codes = append(p.codes, pos.Code())
	p.positions[pos.Code()] = pos
	return nil
}

// AddPosition opens a new position on a fund and adds it to the portfolio.
// Adding a fund already in the portfolio is an error.
func (p *Portfolio) AddPosition(ctx context.Context, src Source, code string, on Date) (*Position, error) {
	code = NormalizeCode(code)
	if _, exists := p.positions[code]; exists {
		return nil, fmt.Errorf("%w: %s in portfolio %q", ErrDuplicatePosition, code, p.name)
	}
	pos, err := Open(ctx, src, code, on)
	if err != nil {
		return nil, err
	}
	return pos, p.Add(pos)
}

// DailyUpdate updates every position for the day 'on'.
//
// A failing position does not prevent the others from being updated: all
// failures are returned joined together.
func (p *Portfolio) DailyUpdate(ctx context.Context, src Source, on Date) error {
	errs := make([]error, len(p.codes))
	var g errgroup.Group
	g.SetLimit(p.parallelism)
	for i, code := range p.codes {
		pos := p.positions[code]
		g.Go(func() error {
			if _, err := pos.DailyUpdate(ctx, src, on); err != nil {
				log.Printf("%v: %s: update failed: %v", on, code, err)
				errs[i] = fmt.Errorf("updating %s: %w", code, err)
			}
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}

// RecordShareChange records a trade on one of the positions.
func (p *Portfolio) RecordShareChange(ctx context.Context, src Source, code string, on Date, delta int64) error {
	pos := p.Position(code)
	if pos == nil {
		return fmt.Errorf("%w: %s in portfolio %q", ErrUnknownPosition, NormalizeCode(code), p.name)
	}
	return pos.RecordShareChange(ctx, src, on, delta)
}

// TotalShares returns the number of shares held across all positions.
func (p *Portfolio) TotalShares() int64 {
	var shares int64
	for _, pos := range p.positions {
		shares += pos.TotalShares()
	}
	return shares
}

// TotalProfit returns the profit across all positions.
func (p *Portfolio) TotalProfit() decimal.Decimal {
	return p.sum((*Position).TotalProfit)
}

// TotalCostBasis returns the cost basis across all positions.
func (p *Portfolio) TotalCostBasis() decimal.Decimal {
	return p.sum((*Position).TotalCostBasis)
}

// TotalValue returns the current value of all positions.
func (p *Portfolio) TotalValue() decimal.Decimal {
	return p.sum((*Position).CurrentValue)
}

// TotalProfitPercentage returns the total profit relative to the total cost
// basis. It is zero when the cost basis is zero.
func (p *Portfolio) TotalProfitPercentage() Percent {
	cost := p.TotalCostBasis()
	if cost.IsZero() {
		return 0
	}
	return percentOf(p.TotalProfit(), cost)
}

func (p *Portfolio) sum(f func(*Position) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, code := range p.codes {
		total = total.Add(f(p.positions[code]))
	}
	return total
}
