package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRunResultSummary(t *testing.T) {
	r := RunResult{
		Status:          RunCompleted,
		Date:            "2025-06-03",
		Posted:          []Category{CategoryTech, CategoryAI},
		NotYetAvailable: []Category{CategoryDesign},
		Failed:          []Category{CategoryDevOps},
	}

	got := r.Summary()
	if !strings.HasPrefix(got, "Posted 2 TLDR sections for 2025-06-03; 2 still pending.") {
		t.Errorf("unexpected summary: %q", got)
	}
	if !strings.Contains(got, "Not yet available: design.") {
		t.Errorf("summary should name unavailable categories, got %q", got)
	}
	if !strings.Contains(got, "Failed: devops.") {
		t.Errorf("summary should name failed categories, got %q", got)
	}
}

func TestRunResultSummaryTerminalStates(t *testing.T) {
	if got := (RunResult{Status: RunSkippedWeekend}).Summary(); got != "Weekend - no newsletters." {
		t.Errorf("weekend summary = %q", got)
	}
	if got := (RunResult{Status: RunNothingToDo, Date: "2025-06-03"}).Summary(); !strings.Contains(got, "2025-06-03") {
		t.Errorf("nothing-to-do summary = %q", got)
	}
}

func TestRunResultJSONFields(t *testing.T) {
	data, err := json.Marshal(RunResult{Status: RunCompleted, Date: "2025-06-03", Posted: []Category{CategoryTech}})
	if err != nil {
		t.Fatalf("Failed to marshal RunResult: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if result["status"] != "completed" {
		t.Errorf("Expected status 'completed', got %v", result["status"])
	}
	posted, ok := result["posted"].([]interface{})
	if !ok || len(posted) != 1 || posted[0] != "tech" {
		t.Errorf("Expected posted [tech], got %v", result["posted"])
	}
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" InfoSec ")
	if !ok || c != CategoryInfoSec {
		t.Fatalf("ParseCategory(InfoSec) = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("sports"); ok {
		t.Fatal("unknown category should not parse")
	}
	if got := CategoryDesign.Info().Name; got != "TLDR Design" {
		t.Errorf("design name = %q", got)
	}
	if n := len(AllCategories()); n != 8 {
		t.Errorf("expected 8 categories, got %d", n)
	}
}
