package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bilgisen/tldr-relay/internal/models"
)

// ErrNotPublished is returned when the edition for a date is not online yet.
// The site redirects unknown editions to its homepage.
var ErrNotPublished = errors.New("edition not published yet")

const userAgent = "tldr-relay/1.0 (+https://github.com/bilgisen/tldr-relay)"

type Fetcher struct {
	client  *resty.Client
	baseURL  string
	basePath string
	parser   *Parser
}

func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	var basePath string
	if u, err := neturl.Parse(baseURL); err == nil {
		basePath = u.Path
	}
	return &Fetcher{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent),
		baseURL:  baseURL,
		basePath: basePath,
		parser:   NewParser(),
	}
}

// EditionURL returns the page address of a category edition.
func (f *Fetcher) EditionURL(category models.Category, date string) string {
	return fmt.Sprintf("%s/%s/%s", f.baseURL, category, date)
}

// FetchEdition retrieves the edition page of category for date and returns its
// raw entries. It returns ErrNotPublished when the site does not serve the
// edition at its expected path.
func (f *Fetcher) FetchEdition(ctx context.Context, category models.Category, date string) ([]models.RawEntry, error) {
	url := f.EditionURL(category, date)

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch edition from %s: %w", url, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotPublished
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode(), url)
	}

	expected := fmt.Sprintf("%s/%s/%s", f.basePath, category, date)
	if final := finalPath(resp); final != "" && final != expected {
		return nil, ErrNotPublished
	}

	entries, err := f.parser.ParseEntries(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse edition %s: %w", url, err)
	}
	return entries, nil
}

// finalPath is the request path after redirects were followed.
func finalPath(resp *resty.Response) string {
	if resp.RawResponse == nil || resp.RawResponse.Request == nil || resp.RawResponse.Request.URL == nil {
		return ""
	}
	p := resp.RawResponse.Request.URL.Path
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
