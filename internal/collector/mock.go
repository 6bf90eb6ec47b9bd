package collector

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"EconDash/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Observations map[string][]model.RawObservation
	Errors       map[string]error

	calls   atomic.Int64
	mu      sync.Mutex
	queries []model.SeriesQuery
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, q model.SeriesQuery) ([]model.RawObservation, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()

	if err, ok := m.Errors[q.SeriesID]; ok {
		return nil, err
	}
	obs, ok := m.Observations[q.SeriesID]
	if !ok {
		return nil, &UpstreamError{SeriesID: q.SeriesID, Status: 400, Message: fmt.Sprintf("unknown series %s", q.SeriesID)}
	}
	return obs, nil
}

// Calls returns the number of FetchSeries invocations.
func (m *MockFetcher) Calls() int { return int(m.calls.Load()) }

// Queries returns the queries received so far.
func (m *MockFetcher) Queries() []model.SeriesQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.SeriesQuery, len(m.queries))
	copy(out, m.queries)
	return out
}
