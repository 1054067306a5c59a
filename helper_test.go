package fundledger

import (
	"context"
	"errors"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create decimals from const.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeSource is an in-memory Source with settable prices.
type fakeSource struct {
	mu     sync.Mutex
	quotes map[string]Snapshot
	fail   map[string]error
	calls  map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		quotes: make(map[string]Snapshot),
		fail:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

// set sets the price of a fund, and derives the horizon returns from it.
func (s *fakeSource) set(code, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := D(price)
	f := Percent(p.InexactFloat64() / 100)
	s.quotes[code] = Snapshot{
		Label:       code + " Fon",
		Price:       p,
		OneDay:      f,
		OneMonth:    2 * f,
		ThreeMonths: 3 * f,
		SixMonths:   6 * f,
		OneYear:     12 * f,
	}
}

func (s *fakeSource) Fetch(_ context.Context, code string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[code]++
	if err := s.fail[code]; err != nil {
		return Snapshot{}, err
	}
	q, ok := s.quotes[code]
	if !ok {
		return Snapshot{}, errors.New("404 Not Found")
	}
	return q, nil
}

func (s *fakeSource) count(code string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[code]
}

// decimalEqual lets cmp compare decimals by value.
var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
