package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"EconDash/internal/model"
)

// SQLiteRecorder persists load history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger zerolog.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dashboard_loads (
			id                  TEXT PRIMARY KEY,
			timestamp           INTEGER NOT NULL,
			load_trigger        TEXT,
			duration_ms         INTEGER,
			ok                  INTEGER,
			error               TEXT,
			cpi_points          INTEGER,
			unemployment_points INTEGER,
			treasury10y_points  INTEGER,
			treasury3m_points   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_ts ON dashboard_loads(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordLoad(evt *model.LoadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok := 0
	if evt.OK {
		ok = 1
	}
	_, err := r.db.Exec(`INSERT INTO dashboard_loads
		(id, timestamp, load_trigger, duration_ms, ok, error,
		 cpi_points, unemployment_points, treasury10y_points, treasury3m_points)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		evt.ID, evt.StartedAt.UnixMilli(), evt.Trigger, evt.Duration.Milliseconds(), ok, evt.Error,
		evt.Points[model.SeriesCPI], evt.Points[model.SeriesUnemployment],
		evt.Points[model.SeriesTreasury10Y], evt.Points[model.SeriesTreasury3M],
	)
	return err
}

func (r *SQLiteRecorder) Recent(limit int) ([]model.LoadEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT id, timestamp, load_trigger, duration_ms, ok, error,
		cpi_points, unemployment_points, treasury10y_points, treasury3m_points
		FROM dashboard_loads ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query loads: %w", err)
	}
	defer rows.Close()

	events := []model.LoadEvent{}
	for rows.Next() {
		var (
			evt                   model.LoadEvent
			ts, durationMs, ok    int64
			errText               sql.NullString
			cpi, unemp, t10y, t3m int
		)
		if err := rows.Scan(&evt.ID, &ts, &evt.Trigger, &durationMs, &ok, &errText, &cpi, &unemp, &t10y, &t3m); err != nil {
			return nil, fmt.Errorf("scan load: %w", err)
		}
		evt.StartedAt = time.UnixMilli(ts)
		evt.Duration = time.Duration(durationMs) * time.Millisecond
		evt.OK = ok == 1
		evt.Error = errText.String
		if evt.OK {
			evt.Points = map[string]int{
				model.SeriesCPI:          cpi,
				model.SeriesUnemployment: unemp,
				model.SeriesTreasury10Y:  t10y,
				model.SeriesTreasury3M:   t3m,
			}
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
