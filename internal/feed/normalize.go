package feed

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/bilgisen/tldr-relay/internal/models"
)

// MaxSummarySentences bounds the number of sentences kept in a summary.
const MaxSummarySentences = 5

var (
	trackingParams = map[string]struct{}{
		"utm_source":   {},
		"utm_medium":   {},
		"utm_campaign": {},
		"utm_term":     {},
		"utm_content":  {},
		"ref":          {},
		"source":       {},
	}

	readTimeRegex = regexp.MustCompile(`(?i)\(\s*(\d+)\s+minutes?\s+read\s*\)`)
	sentenceRegex = regexp.MustCompile(`[^.!?]+[.!?]+`)

	repoRegex = regexp.MustCompile(`(?i)\(\s*github\s+repo\s*\)`)
	bookRegex = regexp.MustCompile(`(?i)\(\s*book\s*\)`)
	toolRegex = regexp.MustCompile(`(?i)\(\s*(tool|website)\s*\)`)
)

// NormalizeLink strips tracking query parameters from raw. Links that cannot be
// parsed as absolute URLs are returned unchanged.
func NormalizeLink(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	if u.RawQuery == "" {
		return raw
	}

	pairs := strings.Split(u.RawQuery, "&")
	kept := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key, _, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if _, drop := trackingParams[key]; drop {
			continue
		}
		kept = append(kept, pair)
	}
	if len(kept) == len(pairs) {
		return raw
	}

	u.RawQuery = strings.Join(kept, "&")
	u.ForceQuery = false
	return u.String()
}

// ExtractReadMinutes returns N from a "(N minute read)" annotation in title.
func ExtractReadMinutes(title string) (int, bool) {
	m := readTimeRegex.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// StripReadAnnotation removes the read-time annotation from title.
func StripReadAnnotation(title string) string {
	loc := readTimeRegex.FindStringIndex(title)
	if loc != nil {
		title = title[:loc[0]] + " " + title[loc[1]:]
	}
	return strings.Join(strings.Fields(title), " ")
}

// TruncateSummary keeps at most MaxSummarySentences sentences of summary,
// joined by single spaces. Trailing text without terminal punctuation counts
// as a sentence of its own.
func TruncateSummary(summary string) string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return ""
	}

	var sentences []string
	end := 0
	for _, loc := range sentenceRegex.FindAllStringIndex(summary, -1) {
		if s := strings.TrimSpace(summary[loc[0]:loc[1]]); s != "" {
			sentences = append(sentences, s)
		}
		end = loc[1]
	}
	if rest := strings.TrimSpace(summary[end:]); rest != "" {
		sentences = append(sentences, rest)
	}

	if len(sentences) > MaxSummarySentences {
		sentences = sentences[:MaxSummarySentences]
	}
	return strings.Join(sentences, " ")
}

// ClassifyKind picks a presentation style from the annotations the newsletter
// puts into titles.
func ClassifyKind(title string) models.ContentKind {
	switch {
	case repoRegex.MatchString(title):
		return models.KindRepository
	case bookRegex.MatchString(title):
		return models.KindBook
	case toolRegex.MatchString(title):
		return models.KindTool
	default:
		return models.KindDefault
	}
}

// Normalize derives the publishable form of a raw entry.
func Normalize(raw models.RawEntry) models.NormalizedEntry {
	minutes, _ := ExtractReadMinutes(raw.Title)
	return models.NormalizedEntry{
		Title:       StripReadAnnotation(raw.Title),
		Summary:     TruncateSummary(raw.Summary),
		Link:        NormalizeLink(strings.TrimSpace(raw.Link)),
		ReadMinutes: minutes,
		Kind:        ClassifyKind(raw.Title),
	}
}
