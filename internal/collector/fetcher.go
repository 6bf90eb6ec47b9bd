package collector

import (
	"context"

	"EconDash/internal/model"
)

// Fetcher retrieves raw observations for one series.
type Fetcher interface {
	FetchSeries(ctx context.Context, q model.SeriesQuery) ([]model.RawObservation, error)
	Name() string
}
