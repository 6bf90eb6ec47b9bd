package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"EconDash/internal/model"
)

func TestSQLiteRecorder_RecordAndRecent(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history", "loads.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	ok := &model.LoadEvent{
		ID:        "load-1",
		Trigger:   model.TriggerRequest,
		StartedAt: base,
		Duration:  850 * time.Millisecond,
		OK:        true,
		Points: map[string]int{
			model.SeriesCPI:          56,
			model.SeriesUnemployment: 20,
			model.SeriesTreasury10Y:  54,
			model.SeriesTreasury3M:   54,
		},
	}
	failed := &model.LoadEvent{
		ID:        "load-2",
		Trigger:   model.TriggerProbe,
		StartedAt: base.Add(time.Minute),
		Duration:  20 * time.Millisecond,
		Error:     "fred DGS10: status 500: boom",
	}
	for _, evt := range []*model.LoadEvent{ok, failed} {
		if err := r.RecordLoad(evt); err != nil {
			t.Fatalf("record %s: %v", evt.ID, err)
		}
	}

	events, err := r.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "load-2" || events[1].ID != "load-1" {
		t.Errorf("expected newest first, got %s, %s", events[0].ID, events[1].ID)
	}
	if events[0].OK || events[0].Error == "" || events[0].Points != nil {
		t.Errorf("unexpected failed event: %+v", events[0])
	}
	if !events[1].OK || events[1].Points[model.SeriesUnemployment] != 20 {
		t.Errorf("unexpected ok event: %+v", events[1])
	}
	if events[1].Duration != 850*time.Millisecond || !events[1].StartedAt.Equal(base) {
		t.Errorf("timing not preserved: %+v", events[1])
	}

	limited, err := r.Recent(1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}
}

func TestNoopRecorder(t *testing.T) {
	r := NewNoopRecorder()
	if err := r.RecordLoad(&model.LoadEvent{ID: "x"}); err != nil {
		t.Fatal(err)
	}
	events, err := r.Recent(5)
	if err != nil || len(events) != 0 || events == nil {
		t.Errorf("expected empty history, got %v, %v", events, err)
	}
}
