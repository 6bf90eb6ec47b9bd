package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"EconDash/internal/model"
	"EconDash/internal/transform"
)

// FRED series identifiers used by the dashboard.
const (
	SeriesIDCPI          = "CPIAUCSL" // CPI for All Urban Consumers: All Items in U.S. City Average
	SeriesIDUnemployment = "UNRATE"
	SeriesIDTreasury10Y  = "DGS10"  // 10-Year Treasury Constant Maturity Rate
	SeriesIDTreasury3M   = "DGS3MO" // 3-Month Treasury Constant Maturity Rate
)

// Reducer turns raw observations into chart points.
type Reducer func([]model.RawObservation) ([]model.ChartPoint, error)

// SeriesSpec ties a dataset series to its upstream query and reduction.
type SeriesSpec struct {
	Name   string
	Query  model.SeriesQuery
	Reduce Reducer
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// DefaultSeries returns the four series shown on the dashboard.
func DefaultSeries() []SeriesSpec {
	end := day(2024, time.December, 31)
	return []SeriesSpec{
		{
			Name: model.SeriesCPI,
			Query: model.SeriesQuery{
				SeriesID:  SeriesIDCPI,
				StartDate: day(2020, time.May, 1),
				EndDate:   end,
				Units:     model.UnitsPercentChange,
				Frequency: model.FrequencyMonthly,
			},
			Reduce: transform.ToChartPoints,
		},
		{
			// fetched monthly, reduced to quarter-end readings
			Name: model.SeriesUnemployment,
			Query: model.SeriesQuery{
				SeriesID:  SeriesIDUnemployment,
				StartDate: day(2020, time.January, 1),
				EndDate:   end,
				Frequency: model.FrequencyMonthly,
			},
			Reduce: transform.ToQuarterlyPoints,
		},
		{
			Name: model.SeriesTreasury10Y,
			Query: model.SeriesQuery{
				SeriesID:  SeriesIDTreasury10Y,
				StartDate: day(2020, time.July, 1),
				EndDate:   end,
				Frequency: model.FrequencyMonthly,
			},
			Reduce: transform.ToChartPoints,
		},
		{
			Name: model.SeriesTreasury3M,
			Query: model.SeriesQuery{
				SeriesID:  SeriesIDTreasury3M,
				StartDate: day(2020, time.July, 1),
				EndDate:   end,
				Frequency: model.FrequencyMonthly,
			},
			Reduce: transform.ToChartPoints,
		},
	}
}

// Collector fetches and normalizes every dashboard series.
type Collector struct {
	Fetcher Fetcher
	Series  []SeriesSpec
	Logger  zerolog.Logger
}

// NewCollector creates a Collector for the default series.
func NewCollector(fetcher Fetcher, logger zerolog.Logger) *Collector {
	return &Collector{Fetcher: fetcher, Series: DefaultSeries(), Logger: logger}
}

// Collect fetches all series concurrently. It fails as a whole if any series
// fails; no partial dataset is returned.
func (c *Collector) Collect(ctx context.Context) (*model.EconomicDataset, error) {
	tasks := make([]Task[[]model.ChartPoint], len(c.Series))
	for i, spec := range c.Series {
		tasks[i] = func(ctx context.Context) ([]model.ChartPoint, error) {
			return c.CollectSeries(ctx, spec)
		}
	}

	points, err := Join(ctx, tasks...).Result()
	if err != nil {
		return nil, err
	}

	ds := model.NewEconomicDataset()
	for i, spec := range c.Series {
		if !ds.SetSeries(spec.Name, points[i]) {
			return nil, fmt.Errorf("unknown dataset series %q", spec.Name)
		}
	}
	return ds, nil
}

// CollectSeries fetches and reduces a single series.
func (c *Collector) CollectSeries(ctx context.Context, spec SeriesSpec) ([]model.ChartPoint, error) {
	obs, err := c.Fetcher.FetchSeries(ctx, spec.Query)
	if err != nil {
		c.Logger.Error().Err(err).Str("series", spec.Name).Str("source", c.Fetcher.Name()).Msg("fetch series failed")
		return nil, err
	}
	points, err := spec.Reduce(obs)
	if err != nil {
		c.Logger.Error().Err(err).Str("series", spec.Name).Msg("normalize series failed")
		return nil, fmt.Errorf("normalize %s: %w", spec.Name, err)
	}
	return points, nil
}
