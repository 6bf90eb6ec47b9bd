package report

import (
	"strings"
	"testing"
	"time"

	"EconDash/internal/model"
)

func TestFormatSummary(t *testing.T) {
	ds := model.NewEconomicDataset()
	ds.CPI = []model.ChartPoint{
		{Date: "2024-01-01", Value: 0.3, SequenceIndex: 0},
		{Date: "2024-03-01", Value: 0.1, SequenceIndex: 1},
	}
	ds.Unemployment = []model.ChartPoint{{Date: "Q1 2021", Value: 3.8, SequenceIndex: 0}}

	out := FormatSummary(ds, "live", time.Now())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 series lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "source: live") {
		t.Errorf("header missing source: %q", lines[0])
	}
	if !strings.Contains(lines[1], "2 pts") || !strings.Contains(lines[1], "2024-01-01 .. 2024-03-01") || !strings.Contains(lines[1], "latest 0.10") {
		t.Errorf("unexpected cpi line: %q", lines[1])
	}
	if !strings.Contains(lines[3], "no data") {
		t.Errorf("expected empty series to say no data: %q", lines[3])
	}
}

func TestFormatLoad(t *testing.T) {
	evt := &model.LoadEvent{
		ID:        "abc",
		Trigger:   model.TriggerProbe,
		StartedAt: time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Error:     "status 500",
	}
	got := FormatLoad(evt)
	if !strings.Contains(got, "2025-01-02 03:04:05") || !strings.Contains(got, "failed: status 500") || !strings.Contains(got, "1.5s") {
		t.Errorf("unexpected load line: %q", got)
	}
}
