package fundledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// precision is the number of decimal places of persisted reals.
const precision = 6

func round(d decimal.Decimal) decimal.Decimal { return d.Round(precision) }

func roundPercent(p Percent) decimal.Decimal {
	return decimal.NewFromFloat(float64(p)).Round(precision)
}

// MarshalJSON writes the entry with a stable field order. Horizon returns are
// only written on refresh days.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("day", e.Day).
		Append("shares", e.Shares).
		Append("priceDelta", round(e.PriceDelta)).
		Append("return", roundPercent(e.Return))
	if r := e.Returns; r != nil {
		w.Append("oneMonth", roundPercent(r.OneMonth)).
			Append("threeMonths", roundPercent(r.ThreeMonths)).
			Append("sixMonths", roundPercent(r.SixMonths)).
			Append("oneYear", roundPercent(r.OneYear))
	}
	return w.MarshalJSON()
}

func (p *Position) MarshalJSON() ([]byte, error) {
	ledger := p.ledger
	if ledger == nil {
		ledger = []Entry{}
	}
	var w jsonObjectWriter
	w.Append("code", p.code).
		Append("label", p.label).
		Append("openingPrice", round(p.openingPrice)).
		Append("openingDate", p.openingDate).
		Append("ledger", ledger)
	return w.MarshalJSON()
}

// MarshalJSON writes the portfolio, its derived profit figures and its
// positions in insertion order.
func (p *Portfolio) MarshalJSON() ([]byte, error) {
	var funds jsonObjectWriter
	for _, code := range p.codes {
		funds.Append(code, p.positions[code])
	}
	fundsBytes, err := funds.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var w jsonObjectWriter
	w.Append("name", p.name).
		Append("profit", round(p.TotalProfit())).
		Append("profitPercentage", roundPercent(p.TotalProfitPercentage())).
		AppendRaw("funds", fundsBytes)
	return w.MarshalJSON()
}

// EncodePosition writes p as an indented JSON record.
func EncodePosition(w io.Writer, p *Position) error { return encodeIndented(w, p) }

// EncodePortfolio writes p as an indented JSON record.
func EncodePortfolio(w io.Writer, p *Portfolio) error { return encodeIndented(w, p) }

func encodeIndented(w io.Writer, v json.Marshaler) error {
	raw, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

// entryRecord is the persisted form of an Entry. Pointers detect missing fields.
type entryRecord struct {
	Day         *int             `json:"day"`
	Shares      *int64           `json:"shares"`
	PriceDelta  *decimal.Decimal `json:"priceDelta"`
	Return      *Percent         `json:"return"`
	OneMonth    *Percent         `json:"oneMonth"`
	ThreeMonths *Percent         `json:"threeMonths"`
	SixMonths   *Percent         `json:"sixMonths"`
	OneYear     *Percent         `json:"oneYear"`
}

func (r entryRecord) entry() (Entry, error) {
	if r.Day == nil || r.Shares == nil || r.PriceDelta == nil || r.Return == nil {
		return Entry{}, errors.New("missing one of the required fields day, shares, priceDelta, return")
	}
	e := Entry{
		Day:        *r.Day,
		Shares:     *r.Shares,
		PriceDelta: *r.PriceDelta,
		Return:     *r.Return,
	}
	switch n := count(r.OneMonth, r.ThreeMonths, r.SixMonths, r.OneYear); n {
	case 0:
	case 4:
		e.Returns = &Returns{
			OneMonth:    *r.OneMonth,
			ThreeMonths: *r.ThreeMonths,
			SixMonths:   *r.SixMonths,
			OneYear:     *r.OneYear,
		}
	default:
		return Entry{}, fmt.Errorf("day %d has %d of the 4 horizon returns", e.Day, n)
	}
	return e, nil
}

func count(ps ...*Percent) (n int) {
	for _, p := range ps {
		if p != nil {
			n++
		}
	}
	return n
}

// positionRecord is the persisted form of a Position.
type positionRecord struct {
	Code         *string          `json:"code"`
	Label        *string          `json:"label"`
	OpeningPrice *decimal.Decimal `json:"openingPrice"`
	OpeningDate  *Date            `json:"openingDate"`
	Ledger       *[]entryRecord   `json:"ledger"`
}

func (r positionRecord) position() (*Position, error) {
	if r.Code == nil || r.Label == nil || r.OpeningPrice == nil || r.OpeningDate == nil || r.Ledger == nil {
		return nil, fmt.Errorf("%w: missing one of the required fields code, label, openingPrice, openingDate, ledger", ErrInvalidRecord)
	}
	entries := make([]Entry, 0, len(*r.Ledger))
	for i, er := range *r.Ledger {
		e, err := er.entry()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: entry #%d: %w", ErrInvalidRecord, *r.Code, i, err)
		}
		entries = append(entries, e)
	}
	return NewPosition(*r.Code, *r.Label, *r.OpeningPrice, *r.OpeningDate, entries...)
}

// fundRecord is one key-value pair of the portfolio funds object.
type fundRecord struct {
	key      string
	position *Position
}

// fundsRecord decodes the funds object keeping the order of its keys.
type fundsRecord []fundRecord

func (f *fundsRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil {
		return err
	} else if tok != json.Delim('{') {
		return fmt.Errorf("funds: want an object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string) // object keys are always strings
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		pos, err := decodePosition(raw)
		if err != nil {
			return fmt.Errorf("fund %q: %w", key, err)
		}
		*f = append(*f, fundRecord{key: key, position: pos})
	}
	_, err := dec.Token() // closing '}'
	return err
}

// portfolioRecord is the persisted form of a Portfolio.
type portfolioRecord struct {
	Name *string `json:"name"`
	// derived values, written for the reader, ignored on read.
	Profit           json.RawMessage `json:"profit"`
	ProfitPercentage json.RawMessage `json:"profitPercentage"`
	Funds            *fundsRecord    `json:"funds"`
}

// decodeStrict decodes a single JSON value into v, rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after the record")
	}
	return nil
}

// invalid marks err as an ErrInvalidRecord unless it is already a known record error.
func invalid(err error) error {
	if errors.Is(err, ErrInvalidRecord) || errors.Is(err, ErrCodeMismatch) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
}

func decodePosition(data []byte) (*Position, error) {
	var rec positionRecord
	if err := decodeStrict(data, &rec); err != nil {
		return nil, invalid(err)
	}
	pos, err := rec.position()
	if err != nil {
		return nil, invalid(err)
	}
	return pos, nil
}

// DecodePosition reads a Position record.
func DecodePosition(r io.Reader) (*Position, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodePosition(data)
}

// DecodePortfolio reads a Portfolio record.
//
// Each fund key must match the code of its position, otherwise
// ErrCodeMismatch is returned.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var rec portfolioRecord
	if err := decodeStrict(data, &rec); err != nil {
		return nil, invalid(err)
	}
	if rec.Name == nil || rec.Funds == nil {
		return nil, fmt.Errorf("%w: missing one of the required fields name, funds", ErrInvalidRecord)
	}
	p := NewPortfolio(*rec.Name)
	for _, f := range *rec.Funds {
		if NormalizeCode(f.key) != f.position.Code() {
			return nil, fmt.Errorf("%w: portfolio %q key %q holds fund %s", ErrCodeMismatch, p.name, f.key, f.position.Code())
		}
		if err := p.Add(f.position); err != nil {
			return nil, invalid(err)
		}
	}
	return p, nil
}
