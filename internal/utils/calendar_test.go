package utils

import (
	"regexp"
	"testing"
	"time"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func TestPublishingDateWeekdays(t *testing.T) {
	loc := mustLoad(t, "America/Los_Angeles")

	// 2025-06-02 is a Monday.
	for i := 0; i < 7; i++ {
		day := time.Date(2025, time.June, 2+i, 12, 0, 0, 0, loc)
		date, ok := PublishingDate(day, loc)

		weekend := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
		if weekend {
			if ok || date != "" {
				t.Errorf("%s: expected no publishing day, got %q", day.Weekday(), date)
			}
			continue
		}
		if !ok {
			t.Errorf("%s: expected a publishing day", day.Weekday())
			continue
		}
		if !dateRe.MatchString(date) {
			t.Errorf("%s: date %q does not match YYYY-MM-DD", day.Weekday(), date)
		}
		if date != day.Format(DateLayout) {
			t.Errorf("%s: got %q, want %q", day.Weekday(), date, day.Format(DateLayout))
		}
	}
}

func TestPublishingDateUsesReferenceTimezone(t *testing.T) {
	loc := mustLoad(t, "America/Los_Angeles")

	// Saturday 02:00 UTC is still Friday evening in Los Angeles.
	now := time.Date(2025, time.June, 7, 2, 0, 0, 0, time.UTC)
	date, ok := PublishingDate(now, loc)
	if !ok {
		t.Fatal("expected Friday in reference timezone to be a publishing day")
	}
	if date != "2025-06-06" {
		t.Fatalf("got %q, want 2025-06-06", date)
	}

	// Monday 03:00 UTC is Sunday evening in Los Angeles.
	now = time.Date(2025, time.June, 9, 3, 0, 0, 0, time.UTC)
	if _, ok := PublishingDate(now, loc); ok {
		t.Fatal("expected Sunday in reference timezone to be skipped")
	}
}

func TestFixedClock(t *testing.T) {
	if date, ok := FixedClock("2025-06-03")(); !ok || date != "2025-06-03" {
		t.Fatalf("got %q, %v", date, ok)
	}
	if _, ok := FixedClock("")(); ok {
		t.Fatal("empty fixed clock should report no publishing day")
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2025-06-03") {
		t.Error("2025-06-03 should be valid")
	}
	for _, s := range []string{"", "2025-6-3", "2025-13-01", "yesterday"} {
		if ValidDate(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}
