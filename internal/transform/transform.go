// Package transform turns raw FRED observations into chart points.
package transform

import (
	"fmt"
	"strconv"
	"time"

	"EconDash/internal/model"
)

// quarterEndMonths maps the closing month of each calendar quarter to its quarter number.
var quarterEndMonths = map[time.Month]int{
	time.March:     1,
	time.June:      2,
	time.September: 3,
	time.December:  4,
}

// ToChartPoints drops missing observations, parses the remaining values and
// numbers them 0..n-1 in input order.
func ToChartPoints(obs []model.RawObservation) ([]model.ChartPoint, error) {
	points := make([]model.ChartPoint, 0, len(obs))
	for _, o := range obs {
		if o.Value == model.MissingValue {
			continue
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse value for %s: %w", o.Date, err)
		}
		points = append(points, model.ChartPoint{
			Date:          o.Date,
			Value:         v,
			SequenceIndex: len(points),
		})
	}
	return points, nil
}

// ToQuarterlyPoints reduces monthly observations to one point per quarter by
// keeping the reading of the quarter's last month. Retained points are
// relabelled "Q{n} {year}" and renumbered from 0. Quarters whose closing month
// is absent produce no point.
func ToQuarterlyPoints(obs []model.RawObservation) ([]model.ChartPoint, error) {
	monthly, err := ToChartPoints(obs)
	if err != nil {
		return nil, err
	}

	quarterly := make([]model.ChartPoint, 0, len(monthly)/3+1)
	for _, p := range monthly {
		d, err := time.Parse(time.DateOnly, p.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", p.Date, err)
		}
		q, ok := quarterEndMonths[d.Month()]
		if !ok {
			continue
		}
		quarterly = append(quarterly, model.ChartPoint{
			Date:          QuarterLabel(q, d.Year()),
			Value:         p.Value,
			SequenceIndex: len(quarterly),
		})
	}
	return quarterly, nil
}

// QuarterLabel formats a quarter the way the dashboard displays it, e.g. "Q3 2022".
func QuarterLabel(quarter, year int) string {
	return fmt.Sprintf("Q%d %d", quarter, year)
}

// ToObservations re-serialises chart points into raw observations.
func ToObservations(points []model.ChartPoint) []model.RawObservation {
	obs := make([]model.RawObservation, len(points))
	for i, p := range points {
		obs[i] = model.RawObservation{
			Date:  p.Date,
			Value: strconv.FormatFloat(p.Value, 'f', -1, 64),
		}
	}
	return obs
}
