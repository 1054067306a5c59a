// Package tefas fetches fund snapshots from the TEFAS fund analysis pages.
//
// See https://www.tefas.gov.tr/FonAnaliz.aspx?FonKod=YKT
package tefas

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/etnz/fundledger"
	"golang.org/x/time/rate"
)

const (
	// DefaultURL is the fund analysis page, the fund code is appended as FonKod parameter.
	DefaultURL = "https://www.tefas.gov.tr/FonAnaliz.aspx"
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second
)

// Source is a fundledger.Source reading the TEFAS fund analysis page.
type Source struct {
	// URL of the fund analysis page.
	URL string
	// Client is used for all requests.
	Client *http.Client
	// Limiter throttles requests, nil means no throttling.
	Limiter *rate.Limiter
}

// New returns a Source on the public TEFAS site, caching pages for the day in
// the temporary directory and sending at most one request per second.
func New() *Source {
	return &Source{
		URL:     DefaultURL,
		Client:  newDailyCachingClient(os.TempDir(), DefaultTimeout),
		Limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

var _ fundledger.Source = (*Source)(nil)

// Fetch returns the latest snapshot of the fund.
func (s *Source) Fetch(ctx context.Context, code string) (fundledger.Snapshot, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return fundledger.Snapshot{}, err
		}
	}

	u, err := url.Parse(s.URL)
	if err != nil {
		return fundledger.Snapshot{}, fmt.Errorf("invalid TEFAS url %q: %w", s.URL, err)
	}
	q := u.Query()
	q.Set("FonKod", fundledger.NormalizeCode(code))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fundledger.Snapshot{}, err
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fundledger.Snapshot{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fundledger.Snapshot{}, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	snap, err := parse(resp.Body)
	if err != nil {
		return fundledger.Snapshot{}, fmt.Errorf("cannot read %s page: %w", code, err)
	}
	return snap, nil
}
