package feed

import (
	"testing"

	"github.com/bilgisen/tldr-relay/internal/models"
)

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tracking params removed", "https://example.com/a?utm_source=tldr&id=3&ref=news", "https://example.com/a?id=3"},
		{"empty query omitted", "https://example.com/a?utm_source=tldr&utm_medium=email&utm_campaign=x&utm_term=y&utm_content=z&source=s", "https://example.com/a"},
		{"fragment kept", "https://example.com/a?utm_source=tldr#section", "https://example.com/a#section"},
		{"order of kept params preserved", "https://example.com/?z=1&utm_source=t&a=2", "https://example.com/?z=1&a=2"},
		{"escaped key recognised", "https://example.com/a?utm%5Fsource=tldr", "https://example.com/a"},
		{"clean link untouched", "https://example.com/a?id=1", "https://example.com/a?id=1"},
		{"no query", "https://example.com/a", "https://example.com/a"},
		{"relative link untouched", "/sponsor?utm_source=x", "/sponsor?utm_source=x"},
		{"garbage untouched", "::not a url", "::not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLink(tt.in); got != tt.want {
				t.Errorf("NormalizeLink(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeLinkIdempotent(t *testing.T) {
	inputs := []string{
		"https://example.com/a?utm_source=tldr&id=3&ref=news",
		"https://example.com/a?utm_source=tldr",
		"https://example.com/a?&&id=1&",
		"https://example.com/path%20with%20space?q=a+b&source=x",
		"::not a url",
		"",
	}
	for _, in := range inputs {
		once := NormalizeLink(in)
		if twice := NormalizeLink(once); twice != once {
			t.Errorf("NormalizeLink not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestReadAnnotation(t *testing.T) {
	n, ok := ExtractReadMinutes("Foo (5 minute read)")
	if !ok || n != 5 {
		t.Fatalf("ExtractReadMinutes = %d, %v; want 5, true", n, ok)
	}
	if got := StripReadAnnotation("Foo (5 minute read)"); got != "Foo" {
		t.Fatalf("StripReadAnnotation = %q, want Foo", got)
	}

	n, ok = ExtractReadMinutes("Big launch (12 MINUTE READ) today")
	if !ok || n != 12 {
		t.Fatalf("case-insensitive match failed: %d, %v", n, ok)
	}
	if got := StripReadAnnotation("Big launch (12 MINUTE READ) today"); got != "Big launch today" {
		t.Fatalf("got %q", got)
	}

	if _, ok := ExtractReadMinutes("No annotation here"); ok {
		t.Fatal("expected no read time")
	}
	if got := StripReadAnnotation("  No annotation  "); got != "No annotation" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncateSummary(t *testing.T) {
	seven := "One is first. Two is second! Three is third? Four. Five. Six. Seven."
	want := "One is first. Two is second! Three is third? Four. Five."
	if got := TruncateSummary(seven); got != want {
		t.Fatalf("TruncateSummary = %q, want %q", got, want)
	}

	if got := TruncateSummary("One.   Two.\n\nThree."); got != "One. Two. Three." {
		t.Fatalf("got %q", got)
	}
	if got := TruncateSummary("Just a fragment"); got != "Just a fragment" {
		t.Fatalf("got %q", got)
	}
	if got := TruncateSummary("Done. And a tail"); got != "Done. And a tail" {
		t.Fatalf("got %q", got)
	}
	if got := TruncateSummary("   "); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestClassifyKind(t *testing.T) {
	tests := map[string]models.ContentKind{
		"Fast JSON parser (GitHub Repo)": models.KindRepository,
		"Designing Data Systems (Book)":  models.KindBook,
		"Excalidraw (Tool)":              models.KindTool,
		"Regex101 (Website)":             models.KindTool,
		"Apple ships M5 (4 minute read)": models.KindDefault,
	}
	for title, want := range tests {
		if got := ClassifyKind(title); got != want {
			t.Errorf("ClassifyKind(%q) = %v, want %v", title, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(models.RawEntry{
		Title:   "Fast parser (GitHub Repo) (2 minute read)",
		Summary: "A. B. C. D. E. F.",
		Link:    " https://github.com/x/y?utm_source=tldrnewsletter ",
	})
	want := models.NormalizedEntry{
		Title:       "Fast parser (GitHub Repo)",
		Summary:     "A. B. C. D. E.",
		Link:        "https://github.com/x/y",
		ReadMinutes: 2,
		Kind:        models.KindRepository,
	}
	if got != want {
		t.Fatalf("Normalize = %+v, want %+v", got, want)
	}
}
