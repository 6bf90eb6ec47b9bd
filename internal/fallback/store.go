// Package fallback holds the static dataset substituted when live data is unavailable.
package fallback

import (
	_ "embed"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"EconDash/internal/model"
)

//go:embed fallback.yaml
var bundled []byte

// Bundled returns the dataset compiled into the binary.
func Bundled() (*model.EconomicDataset, error) {
	return Parse(bundled)
}

// Parse decodes a YAML (or JSON) fallback asset. Every series must be present and non-empty.
func Parse(data []byte) (*model.EconomicDataset, error) {
	var ds model.EconomicDataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse fallback dataset: %w", err)
	}
	for _, name := range model.SeriesNames {
		if len(ds.Series(name)) == 0 {
			return nil, fmt.Errorf("fallback dataset: series %q is empty", name)
		}
	}
	return &ds, nil
}

// Store serves the current fallback dataset. With a path it reads the asset
// from disk and can reload it; without one it serves the bundled asset.
type Store struct {
	mu       sync.RWMutex
	path     string
	dataset  *model.EconomicDataset
	loadedAt time.Time
}

// NewStore loads the asset at path, or the bundled asset when path is empty.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the asset. On failure the previous dataset stays in place.
func (s *Store) Reload() error {
	ds, err := s.read()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.dataset = ds
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return nil
}

func (s *Store) read() (*model.EconomicDataset, error) {
	if s.path == "" {
		return Bundled()
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read fallback dataset: %w", err)
	}
	return Parse(data)
}

// Dataset returns the current fallback dataset. Callers must not modify it.
func (s *Store) Dataset() *model.EconomicDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Source describes where the dataset comes from.
func (s *Store) Source() string {
	if s.path == "" {
		return "bundled"
	}
	return s.path
}

// LoadedAt returns when the current dataset was loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
