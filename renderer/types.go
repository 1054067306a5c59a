package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/etnz/fundledger"
	"github.com/shopspring/decimal"
)

// currency of all the funds.
const currency = money.TRY

// Amount is a value in the fund currency.
type Amount struct{ decimal.Decimal }

// String formats the amount with the currency symbol, rounded to its minor unit.
func (a Amount) String() string {
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, currency).Currency()
	return cur.Formatter().Format(a.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

// SignedString returns the amount with a sign, and "-" for zero.
func (a Amount) SignedString() string {
	if a.IsZero() {
		return "-"
	}
	if a.IsPositive() {
		return "+" + a.String()
	}
	return a.String()
}

// Price is a fund price, printed with all its digits.
type Price struct{ decimal.Decimal }

func (p Price) String() string { return p.StringFixed(6) }

// Report is the portfolio report.
type Report struct {
	Name                  string
	Date                  fundledger.Date
	Funds                 []Fund
	TotalShares           int64
	TotalValue            Amount
	TotalCostBasis        Amount
	TotalProfit           Amount
	TotalProfitPercentage fundledger.Percent
}

// Fund is a row of the portfolio report.
type Fund struct {
	Code             string
	Label            string
	Shares           int64
	Price            Price
	Value            Amount
	Profit           Amount
	ProfitPercentage fundledger.Percent
}

// NewReport computes the report of a portfolio.
func NewReport(p *fundledger.Portfolio, on fundledger.Date) *Report {
	r := &Report{
		Name:                  p.Name(),
		Date:                  on,
		TotalShares:           p.TotalShares(),
		TotalValue:            Amount{p.TotalValue()},
		TotalCostBasis:        Amount{p.TotalCostBasis()},
		TotalProfit:           Amount{p.TotalProfit()},
		TotalProfitPercentage: p.TotalProfitPercentage(),
	}
	for _, pos := range p.Positions() {
		r.Funds = append(r.Funds, Fund{
			Code:             pos.Code(),
			Label:            pos.Label(),
			Shares:           pos.TotalShares(),
			Price:            Price{pos.Price()},
			Value:            Amount{pos.CurrentValue()},
			Profit:           Amount{pos.TotalProfit()},
			ProfitPercentage: pos.ProfitPercentage(),
		})
	}
	return r
}

// History is the ledger of a position.
type History struct {
	Code         string
	Label        string
	OpeningDate  fundledger.Date
	OpeningPrice Price
	Rows         []Row
}

// Row is a ledger entry with its running values.
type Row struct {
	Date    fundledger.Date
	Price   Price
	Return  fundledger.Percent
	Shares  int64 // traded that day
	Held    int64
	Value   Amount
	Profit  Amount // made that day
	Returns *fundledger.Returns
}

// NewHistory computes the history of a position, limited to the last n entries if n > 0.
func NewHistory(pos *fundledger.Position, n int) *History {
	h := &History{
		Code:         pos.Code(),
		Label:        pos.Label(),
		OpeningDate:  pos.OpeningDate(),
		OpeningPrice: Price{pos.OpeningPrice()},
	}
	values := pos.ValueSeries()
	profits := pos.ProfitSeries()
	price := pos.OpeningPrice()
	var held int64
	for i, e := range pos.Entries() {
		price = price.Add(e.PriceDelta)
		held += e.Shares
		h.Rows = append(h.Rows, Row{
			Date:    pos.OpeningDate().Add(e.Day),
			Price:   Price{price},
			Return:  e.Return,
			Shares:  e.Shares,
			Held:    held,
			Value:   Amount{values[i]},
			Profit:  Amount{profits[i]},
			Returns: e.Returns,
		})
	}
	if n > 0 && len(h.Rows) > n {
		h.Rows = h.Rows[len(h.Rows)-n:]
	}
	return h
}
