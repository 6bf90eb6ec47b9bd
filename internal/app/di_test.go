package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"EconDash/internal/config"
	"EconDash/internal/recorder"
)

func TestProvideRecorder(t *testing.T) {
	cfg := &config.Config{}
	rec, cleanup, err := ProvideRecorder(cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	cleanup()
	if _, ok := rec.(*recorder.NoopRecorder); !ok {
		t.Errorf("expected noop recorder without sqlite path, got %T", rec)
	}

	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "loads.db")
	rec, cleanup, err = ProvideRecorder(cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if _, ok := rec.(*recorder.SQLiteRecorder); !ok {
		t.Errorf("expected sqlite recorder, got %T", rec)
	}
}

func TestProvideConfig_InvalidCron(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("probe:\n  cron: \"whenever\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROBE_CRON", "")
	if _, err := ProvideConfig(ConfigPath(path)); err == nil {
		t.Fatal("expected validation error")
	}
}
