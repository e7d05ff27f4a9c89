package feed

import (
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bilgisen/tldr-relay/internal/models"
)

var (
	// ErrMissingField marks an entry that lacks a title, summary or link.
	ErrMissingField = errors.New("missing required field")
	// ErrSponsored marks a sponsor placement.
	ErrSponsored = errors.New("sponsored placement")
)

// Parser extracts and cleans entries from an edition page
type Parser struct {
	htmlTagRegex *regexp.Regexp
}

func NewParser() *Parser {
	return &Parser{
		htmlTagRegex: regexp.MustCompile(`<[^>]*>`),
	}
}

// CleanHTML removes HTML tags and normalizes whitespace
func (p *Parser) CleanHTML(input string) string {
	cleaned := p.htmlTagRegex.ReplaceAllString(input, " ")
	cleaned = html.UnescapeString(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return strings.TrimSpace(cleaned)
}

// ParseEntries reads an edition page and returns its article blocks in page order.
// Blocks are returned as found; use ValidateEntry to drop unusable ones.
func (p *Parser) ParseEntries(r io.Reader) ([]models.RawEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var entries []models.RawEntry
	doc.Find("article").Each(func(_ int, s *goquery.Selection) {
		link, _ := s.Find("a").First().Attr("href")
		entries = append(entries, models.RawEntry{
			Title:   p.CleanHTML(s.Find("h3").First().Text()),
			Summary: p.CleanHTML(s.Find(".newsletter-html").First().Text()),
			Link:    strings.TrimSpace(link),
		})
	})

	return entries, nil
}

// ValidateEntry checks that the entry is publishable content
func (p *Parser) ValidateEntry(entry models.RawEntry) error {
	if entry.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if entry.Summary == "" {
		return fmt.Errorf("%w: summary", ErrMissingField)
	}
	if entry.Link == "" {
		return fmt.Errorf("%w: link", ErrMissingField)
	}
	if strings.Contains(strings.ToLower(entry.Link), "sponsor") {
		return ErrSponsored
	}
	return nil
}

// FilterEntries keeps the usable entries in their original order and reports
// why the others were dropped.
func (p *Parser) FilterEntries(entries []models.RawEntry) ([]models.RawEntry, []error) {
	var valid []models.RawEntry
	var errs []error

	for i, entry := range entries {
		if err := p.ValidateEntry(entry); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%q): %w", i, entry.Title, err))
			continue
		}
		valid = append(valid, entry)
	}

	return valid, errs
}
