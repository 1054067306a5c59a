package fundledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Snapshot is the state of a fund as published by a market data source on a given day.
type Snapshot struct {
	Label       string
	Price       decimal.Decimal
	OneDay      Percent
	OneMonth    Percent
	ThreeMonths Percent
	SixMonths   Percent
	OneYear     Percent
}

// Returns extracts the longer-horizon returns of the snapshot.
func (s Snapshot) Returns() *Returns {
	return &Returns{
		OneMonth:    s.OneMonth,
		ThreeMonths: s.ThreeMonths,
		SixMonths:   s.SixMonths,
		OneYear:     s.OneYear,
	}
}

// Source provides the latest snapshot for a fund code.
type Source interface {
	Fetch(ctx context.Context, code string) (Snapshot, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, code string) (Snapshot, error)

func (f SourceFunc) Fetch(ctx context.Context, code string) (Snapshot, error) { return f(ctx, code) }

// fetch calls the source and checks the snapshot contract.
func fetch(ctx context.Context, src Source, code string) (Snapshot, error) {
	s, err := src.Fetch(ctx, code)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: fetching %s: %w", ErrDataSource, code, err)
	}
	if !s.Price.IsPositive() {
		return Snapshot{}, fmt.Errorf("%w: fetching %s: invalid price %v", ErrDataSource, code, s.Price)
	}
	return s, nil
}

// Quote returns the current snapshot of a fund, without recording it.
func Quote(ctx context.Context, src Source, code string) (Snapshot, error) {
	return fetch(ctx, src, NormalizeCode(code))
}
