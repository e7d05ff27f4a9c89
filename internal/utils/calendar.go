package utils

import "time"

// DateLayout is the layout of a publishing date (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// PublishingDate returns the edition date for the instant now as seen in loc.
// The second result is false on Saturdays and Sundays in loc, when no edition
// is published.
func PublishingDate(now time.Time, loc *time.Location) (string, bool) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return "", false
	}
	return local.Format(DateLayout), true
}

// CurrentPublishingDate is PublishingDate evaluated against the wall clock.
func CurrentPublishingDate(loc *time.Location) (string, bool) {
	return PublishingDate(time.Now(), loc)
}

// Clock yields today's publishing date. The zero value of ok means no edition
// is published today.
type Clock func() (date string, ok bool)

// NewClock binds the calendar gate to a reference timezone.
func NewClock(loc *time.Location) Clock {
	return func() (string, bool) {
		return CurrentPublishingDate(loc)
	}
}

// FixedClock always reports the given date, or a weekend when date is empty.
func FixedClock(date string) Clock {
	return func() (string, bool) {
		return date, date != ""
	}
}

// ValidDate reports whether s is a well-formed publishing date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
