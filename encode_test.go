package fundledger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodePosition(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePosition(&buf, ledgerFixture(t)); err != nil {
		t.Fatalf("EncodePosition() error = %v", err)
	}
	want := `{
    "code": "TST",
    "label": "Test",
    "openingPrice": 50,
    "openingDate": "2025-01-01",
    "ledger": [
        {
            "day": 0,
            "shares": 10,
            "priceDelta": 0,
            "return": 0,
            "oneMonth": 0,
            "threeMonths": 0,
            "sixMonths": 0,
            "oneYear": 0
        },
        {
            "day": 1,
            "shares": 5,
            "priceDelta": 2,
            "return": 4
        },
        {
            "day": 2,
            "shares": -3,
            "priceDelta": -1,
            "return": -1.923077
        }
    ]
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodePosition() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodePosition_Rounding(t *testing.T) {
	pos, err := NewPosition("RND", "Round", D("1.23456789"), day0,
		Entry{Day: 7, PriceDelta: D("0.1234567"), Return: 1.23456789},
	)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodePosition(&buf, pos); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"openingPrice": 1.234568`, `"priceDelta": 0.123457`, `"return": 1.234568`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("EncodePosition() = %s, want it to contain %s", buf.String(), want)
		}
	}
}

// buildPortfolio runs a portfolio with two funds over 12 days with a few trades.
func buildPortfolio(t *testing.T) *Portfolio {
	t.Helper()
	ctx := context.Background()
	src := newFakeSource()
	p := NewPortfolio("yapikredi")
	src.set("YKT", "1.234567")
	src.set("YAS", "25.5")
	for _, code := range []string{"YKT", "YAS"} {
		if _, err := p.AddPosition(ctx, src, code, day0); err != nil {
			t.Fatal(err)
		}
	}
	prices := []string{"1.25", "1.2411", "1.3", "1.333333", "1.29", "1.31", "1.4", "1.41", "1.39", "1.42", "1.5", "1.55"}
	for day, price := range prices {
		src.set("YKT", price)
		src.set("YAS", D(price).Mul(D("20")).String())
		on := day0.Add(day)
		if err := p.DailyUpdate(context.Background(), src, on); err != nil {
			t.Fatal(err)
		}
		switch day {
		case 0:
			p.RecordShareChange(ctx, src, "YKT", on, 1000)
			p.RecordShareChange(ctx, src, "YAS", on, 40)
		case 4:
			p.RecordShareChange(ctx, src, "YKT", on, -250)
		case 10:
			p.RecordShareChange(ctx, src, "YAS", on, 15)
		}
	}
	return p
}

func TestPortfolio_RoundTrip(t *testing.T) {
	p := buildPortfolio(t)

	var first bytes.Buffer
	if err := EncodePortfolio(&first, p); err != nil {
		t.Fatalf("EncodePortfolio() error = %v", err)
	}
	decoded, err := DecodePortfolio(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	var second bytes.Buffer
	if err := EncodePortfolio(&second, decoded); err != nil {
		t.Fatalf("EncodePortfolio() error = %v", err)
	}
	if diff := cmp.Diff(first.String(), second.String()); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}

	if got := strings.Join(decoded.Codes(), ","); got != "YKT,YAS" {
		t.Errorf("decoded Codes() = %s, want YKT,YAS", got)
	}
	for _, code := range p.Codes() {
		want, got := p.Position(code), decoded.Position(code)
		if got.Len() != 12 {
			t.Errorf("%s Len() = %d, want 12", code, got.Len())
		}
		if got.TotalShares() != want.TotalShares() || !got.TotalProfit().Equal(want.TotalProfit()) || !got.Price().Equal(want.Price()) {
			t.Errorf("%s decoded totals differ", code)
		}
		if got.OpeningDate() != want.OpeningDate() || got.Label() != want.Label() {
			t.Errorf("%s decoded header differs", code)
		}
	}
}

func TestDecodePosition_Strict(t *testing.T) {
	const entry0 = `{"day":0,"shares":1,"priceDelta":0,"return":0,"oneMonth":1,"threeMonths":2,"sixMonths":3,"oneYear":4}`
	testCases := []struct {
		name string
		json string
	}{
		{"unknown field", `{"code":"A","label":"a","openingPrice":1,"openingDate":"2025-01-01","ledger":[],"price":3}`},
		{"missing code", `{"label":"a","openingPrice":1,"openingDate":"2025-01-01","ledger":[]}`},
		{"missing ledger", `{"code":"A","label":"a","openingPrice":1,"openingDate":"2025-01-01"}`},
		{"null label", `{"code":"A","label":null,"openingPrice":1,"openingDate":"2025-01-01","ledger":[]}`},
		{"bad date", `{"code":"A","label":"a","openingPrice":1,"openingDate":"01/01/2025","ledger":[]}`},
		{"unknown entry field", `{"code":"A","label":"a","openingPrice":1,"openingDate":"2025-01-01","ledger":[{"day":1,"shares":1,"priceDelta":0,"return":0,"note":""}]}`},
		{"missing entry field", `{"code":"A","label":"a","openingPrice":1,"openingDate":"2025-01-01","ledger":[{"day":1,"shares":1,"return":0}]}`},
		{"partial returns", `{"code":"A","label":"a","openingPrice":1,"openingDate":"2025-01-01","ledger":[{"day":0,"shares":1,"priceDelta":0,"return":0,"oneMonth":1}]}`},
		{"returns off refresh day", `{"code":"A","label":"a","openingPrice":1,"openingDate":"2025-01-01","ledger":[{"day":1,"shares":1,"priceDelta":0,"return":0,"oneMonth":1,"threeMonths":2,"sixMonths":3,"oneYear":4}]}`},
		{"duplicate day", `{"code":"A","label":"a","openingPrice":1,"openingDate":"2025-01-01","ledger":[` + entry0 + `,` + entry0 + `]}`},
		{"trailing data", `{"code":"A","label":"a","openingPrice":1,"openingDate":"2025-01-01","ledger":[]} {}`},
		{"not an object", `[]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePosition(strings.NewReader(tc.json))
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("DecodePosition() error = %v, want %v", err, ErrInvalidRecord)
			}
		})
	}
}

func TestDecodePortfolio(t *testing.T) {
	const fund = `{"code":"YKT","label":"Yapı Kredi","openingPrice":1.5,"openingDate":"2025-01-01","ledger":[]}`

	t.Run("lower case key", func(t *testing.T) {
		p, err := DecodePortfolio(strings.NewReader(`{"name":"main","profit":0,"profitPercentage":0,"funds":{"ykt":` + fund + `}}`))
		if err != nil {
			t.Fatalf("DecodePortfolio() error = %v", err)
		}
		pos := p.Position("YKT")
		if pos == nil || pos.Label() != "Yapi Kredi" {
			t.Errorf("DecodePortfolio() position = %v", pos)
		}
	})

	t.Run("derived fields are optional", func(t *testing.T) {
		if _, err := DecodePortfolio(strings.NewReader(`{"name":"main","funds":{}}`)); err != nil {
			t.Errorf("DecodePortfolio() error = %v", err)
		}
	})

	testCases := []struct {
		name    string
		json    string
		wantErr error
	}{
		{"code mismatch", `{"name":"main","funds":{"YAS":` + fund + `}}`, ErrCodeMismatch},
		{"duplicate fund", `{"name":"main","funds":{"YKT":` + fund + `,"ykt":` + fund + `}}`, ErrDuplicatePosition},
		{"missing name", `{"funds":{}}`, ErrInvalidRecord},
		{"missing funds", `{"name":"main"}`, ErrInvalidRecord},
		{"funds not an object", `{"name":"main","funds":[]}`, ErrInvalidRecord},
		{"unknown field", `{"name":"main","funds":{},"owner":"me"}`, ErrInvalidRecord},
		{"invalid fund", `{"name":"main","funds":{"YKT":{"code":"YKT"}}}`, ErrInvalidRecord},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePortfolio(strings.NewReader(tc.json))
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("DecodePortfolio() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
