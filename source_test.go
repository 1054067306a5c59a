package fundledger

import (
	"context"
	"errors"
	"testing"
)

func TestQuote(t *testing.T) {
	src := newFakeSource()
	src.set("YKT", "1.5")
	src.set("BAD", "0")

	s, err := Quote(context.Background(), src, " ykt ")
	if err != nil {
		t.Fatalf("Quote() unexpected error: %v", err)
	}
	if !s.Price.Equal(D("1.5")) {
		t.Errorf("Quote() price = %v, want 1.5", s.Price)
	}

	for _, code := range []string{"BAD", "NOPE"} {
		if _, err := Quote(context.Background(), src, code); !errors.Is(err, ErrDataSource) {
			t.Errorf("Quote(%s) error = %v, want %v", code, err, ErrDataSource)
		}
	}
}
