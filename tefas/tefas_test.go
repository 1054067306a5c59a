package tefas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/fundledger"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// newServer serves the fixture page for fund YKT and 404 for any other code.
func newServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	page, err := os.ReadFile("testdata/ykt.html")
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.URL.Query().Get("FonKod") != "YKT" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSource_Fetch(t *testing.T) {
	srv := newServer(t, nil)
	src := &Source{URL: srv.URL + "/FonAnaliz.aspx", Client: srv.Client()}

	got, err := src.Fetch(context.Background(), "ykt")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got.Label != "YAPI KREDİ PORTFÖY ALTIN FONU" {
		t.Errorf("Label = %q", got.Label)
	}
	if want := decimal.RequireFromString("1234.567891"); !got.Price.Equal(want) {
		t.Errorf("Price = %v, want %v", got.Price, want)
	}
	want := map[string]struct{ got, want fundledger.Percent }{
		"OneDay":      {got.OneDay, -0.4521},
		"OneMonth":    {got.OneMonth, 3.1224},
		"ThreeMonths": {got.ThreeMonths, 12.0079},
		"SixMonths":   {got.SixMonths, 21.5},
		"OneYear":     {got.OneYear, 55.0132},
	}
	for name, v := range want {
		if !v.got.Equal(v.want) {
			t.Errorf("%s = %v, want %v", name, v.got, v.want)
		}
	}
}

func TestSource_FetchErrors(t *testing.T) {
	srv := newServer(t, nil)
	src := &Source{URL: srv.URL, Client: srv.Client()}

	_, err := src.Fetch(context.Background(), "NOP")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Fetch(unknown fund) error = %v, want a 404 error", err)
	}

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><ul class="top-list"><li>Son Fiyat (TL)<span>1,5</span></li></ul></body></html>`))
	}))
	defer broken.Close()
	src = &Source{URL: broken.URL, Client: broken.Client()}
	if _, err := src.Fetch(context.Background(), "YKT"); err == nil {
		t.Error("Fetch(page without label) expected an error")
	}
}

func TestSource_FetchCanceled(t *testing.T) {
	srv := newServer(t, nil)
	src := &Source{
		URL:     srv.URL,
		Client:  srv.Client(),
		Limiter: rate.NewLimiter(rate.Every(time.Hour), 1),
	}
	if _, err := src.Fetch(context.Background(), "YKT"); err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := src.Fetch(ctx, "YKT"); err == nil {
		t.Error("Fetch() beyond the rate limit expected an error")
	}
}

func TestSource_DailyCache(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits)
	src := &Source{URL: srv.URL, Client: newDailyCachingClient(t.TempDir(), time.Second)}

	for i := 0; i < 3; i++ {
		if _, err := src.Fetch(context.Background(), "YKT"); err != nil {
			t.Fatalf("Fetch() #%d error = %v", i, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}

	// errors are not cached.
	for i := 0; i < 2; i++ {
		src.Fetch(context.Background(), "NOP")
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("server hits = %d, want 3", got)
	}
}

func TestNumber(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"1,5", "1.5"},
		{"%-0,4521", "-0.4521"},
		{"12,0079%", "12.0079"},
		{"1.234,567891", "1234.567891"},
		{" 42 ", "42"},
	}
	for _, tc := range testCases {
		got, err := number(map[string]string{"k": tc.in}, "k")
		if err != nil {
			t.Errorf("number(%q) error = %v", tc.in, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("number(%q) = %v, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := number(map[string]string{"k": "n/a"}, "k"); err == nil {
		t.Error("number(n/a) expected an error")
	}
	if _, err := number(nil, "k"); err == nil {
		t.Error("number(missing) expected an error")
	}
}
