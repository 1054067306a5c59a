package tefas

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/fundledger"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// Page markers of the fund analysis page.
const (
	labelID         = "MainContent_FormViewMainIndicators_LabelFund"
	topListClass    = "top-list"
	indicatorsClass = "price-indicators"

	keyPrice       = "Son Fiyat (TL)"
	keyOneDay      = "Günlük Getiri (%)"
	keyOneMonth    = "Son 1 Ay Getirisi"
	keyThreeMonths = "Son 3 Ay Getirisi"
	keySixMonths   = "Son 6 Ay Getirisi"
	keyOneYear     = "Son 1 Yıl Getirisi"
)

// parse reads a snapshot from a fund analysis page.
func parse(r io.Reader) (fundledger.Snapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return fundledger.Snapshot{}, err
	}

	labelNode := find(doc, func(n *html.Node) bool { return attr(n, "id") == labelID })
	if labelNode == nil {
		return fundledger.Snapshot{}, errors.New("fund label not found")
	}
	top, err := items(doc, topListClass)
	if err != nil {
		return fundledger.Snapshot{}, err
	}
	indicators, err := items(doc, indicatorsClass)
	if err != nil {
		return fundledger.Snapshot{}, err
	}

	var s fundledger.Snapshot
	s.Label = strings.TrimSpace(text(labelNode))
	if s.Price, err = number(top, keyPrice); err != nil {
		return fundledger.Snapshot{}, err
	}
	for _, f := range []struct {
		values map[string]string
		key    string
		dst    *fundledger.Percent
	}{
		{top, keyOneDay, &s.OneDay},
		{indicators, keyOneMonth, &s.OneMonth},
		{indicators, keyThreeMonths, &s.ThreeMonths},
		{indicators, keySixMonths, &s.SixMonths},
		{indicators, keyOneYear, &s.OneYear},
	} {
		v, err := number(f.values, f.key)
		if err != nil {
			return fundledger.Snapshot{}, err
		}
		*f.dst = fundledger.Percent(v.InexactFloat64())
	}
	return s, nil
}

// items returns the key/value pairs of the list with the given class. Each
// <li> holds the key as its first text and the value in a <span>.
func items(doc *html.Node, class string) (map[string]string, error) {
	list := find(doc, func(n *html.Node) bool { return hasClass(n, class) })
	if list == nil {
		return nil, fmt.Errorf("list %q not found", class)
	}
	values := make(map[string]string)
	isItem := func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "li" }
	for _, li := range findAll(list, isItem) {
		if li.FirstChild == nil || li.FirstChild.Type != html.TextNode {
			continue
		}
		span := find(li, func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "span" })
		if span == nil {
			continue
		}
		values[strings.TrimSpace(li.FirstChild.Data)] = strings.TrimSpace(text(span))
	}
	return values, nil
}

// number parses the value of key, written with a decimal comma and an optional percent sign.
func number(values map[string]string, key string) (decimal.Decimal, error) {
	s, ok := values[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("value %q not found", key)
	}
	s = strings.TrimSpace(strings.Trim(s, "% "))
	if strings.Contains(s, ",") {
		// "1.234,56" uses dots for thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value for %q: %w", key, err)
	}
	return d, nil
}

// find returns the first node of the tree rooted at n matching f, in depth-first order.
func find(n *html.Node, f func(*html.Node) bool) *html.Node {
	if f(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, f); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns all the nodes of the tree rooted at n matching f, in depth-first order.
func findAll(n *html.Node, f func(*html.Node) bool) (found []*html.Node) {
	if f(n) {
		found = append(found, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		found = append(found, findAll(c, f)...)
	}
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// text concatenates the text nodes under n.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
