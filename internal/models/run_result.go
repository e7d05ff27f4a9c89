package models

import (
	"fmt"
	"strings"
	"time"
)

// RunStatus is the terminal state of one publishing run.
type RunStatus string

const (
	RunSkippedWeekend RunStatus = "skipped_weekend"
	RunNothingToDo    RunStatus = "nothing_to_do"
	RunCompleted      RunStatus = "completed"
)

// RunResult summarizes a publishing run.
type RunResult struct {
	ID     string    `json:"id"`
	Status RunStatus `json:"status"`
	Date   string    `json:"date,omitempty"`

	// Posted lists categories newly published during this run.
	Posted []Category `json:"posted"`
	// AlreadyPosted lists categories that had a marker before the run started.
	AlreadyPosted []Category `json:"already_posted"`
	// NotYetAvailable lists categories whose edition is not online yet.
	NotYetAvailable []Category `json:"not_yet_available"`
	// Empty lists categories whose edition had no usable entries.
	Empty []Category `json:"empty"`
	// Failed lists categories that hit a fetch, parse or post error.
	Failed []Category `json:"failed"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Pending returns the number of categories still without a marker after the run.
func (r RunResult) Pending() int {
	return len(r.NotYetAvailable) + len(r.Empty) + len(r.Failed)
}

// Summary renders the plain-text report returned to HTTP callers.
func (r RunResult) Summary() string {
	switch r.Status {
	case RunSkippedWeekend:
		return "Weekend - no newsletters."
	case RunNothingToDo:
		return fmt.Sprintf("All categories already posted for %s.", r.Date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Posted %d TLDR sections for %s; %d still pending.", len(r.Posted), r.Date, r.Pending())
	if len(r.NotYetAvailable) > 0 {
		fmt.Fprintf(&b, " Not yet available: %s.", joinCategories(r.NotYetAvailable))
	}
	if len(r.Empty) > 0 {
		fmt.Fprintf(&b, " Empty: %s.", joinCategories(r.Empty))
	}
	if len(r.Failed) > 0 {
		fmt.Fprintf(&b, " Failed: %s.", joinCategories(r.Failed))
	}
	return b.String()
}

func joinCategories(cs []Category) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
