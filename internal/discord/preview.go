package discord

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Previewer looks up the preview image an article page advertises.
type Previewer struct {
	client *resty.Client
}

func NewPreviewer(timeout time.Duration) *Previewer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Previewer{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", "tldr-relay/1.0"),
	}
}

// Image returns the og:image (or twitter:image) URL of the page at link.
// Any failure yields an empty string.
func (p *Previewer) Image(ctx context.Context, link string) string {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(link)
	if err != nil || !resp.IsSuccess() {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return ""
	}

	for _, sel := range []string{`meta[property="og:image"]`, `meta[name="twitter:image"]`} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); strings.HasPrefix(content, "http") {
				return content
			}
		}
	}
	return ""
}
