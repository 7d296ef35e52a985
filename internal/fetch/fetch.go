// Package fetch is the page-fetcher collaborator: given a URL it returns a
// parsed document or fails with a transient error. Adapters query the
// document; the normalization core never sees markup.
package fetch

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	UserAgent = "artlinks-data/1.0 (+https://github.com/obstacleb/artlinks-data)"
	Timeout   = 30 * time.Second
)

// Client fetches and parses source pages.
type Client struct {
	client    *http.Client
	userAgent string
}

// New creates a Client with the default user agent and timeout.
func New() *Client {
	return NewWith(Timeout, UserAgent)
}

// NewWith creates a Client with an explicit timeout and user agent.
func NewWith(timeout time.Duration, userAgent string) *Client {
	return &Client{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get fetches a page and parses it into a queryable document. Any network
// error or non-200 status is returned as a transient fetch error; callers
// isolate it at the per-source boundary.
func (c *Client) Get(url string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
