package model

// Series names, as used in the dataset JSON and in logs.
const (
	SeriesCPI          = "cpi"
	SeriesUnemployment = "unemployment"
	SeriesTreasury10Y  = "treasury10Y"
	SeriesTreasury3M   = "treasury3M"
)

// SeriesNames lists the dataset series in display order.
var SeriesNames = []string{SeriesCPI, SeriesUnemployment, SeriesTreasury10Y, SeriesTreasury3M}

// EconomicDataset is the aggregate handed to the presentation layer.
type EconomicDataset struct {
	CPI          []ChartPoint `json:"cpi" yaml:"cpi"`
	Unemployment []ChartPoint `json:"unemployment" yaml:"unemployment"`
	Treasury10Y  []ChartPoint `json:"treasury10Y" yaml:"treasury10Y"`
	Treasury3M   []ChartPoint `json:"treasury3M" yaml:"treasury3M"`
}

// NewEconomicDataset returns a dataset whose series are empty, non-nil slices
// so that they encode as [] rather than null.
func NewEconomicDataset() *EconomicDataset {
	return &EconomicDataset{
		CPI:          []ChartPoint{},
		Unemployment: []ChartPoint{},
		Treasury10Y:  []ChartPoint{},
		Treasury3M:   []ChartPoint{},
	}
}

// Series returns the points stored under name, or nil for an unknown name.
func (d *EconomicDataset) Series(name string) []ChartPoint {
	switch name {
	case SeriesCPI:
		return d.CPI
	case SeriesUnemployment:
		return d.Unemployment
	case SeriesTreasury10Y:
		return d.Treasury10Y
	case SeriesTreasury3M:
		return d.Treasury3M
	}
	return nil
}

// SetSeries stores points under name and reports whether the name is known.
func (d *EconomicDataset) SetSeries(name string, points []ChartPoint) bool {
	switch name {
	case SeriesCPI:
		d.CPI = points
	case SeriesUnemployment:
		d.Unemployment = points
	case SeriesTreasury10Y:
		d.Treasury10Y = points
	case SeriesTreasury3M:
		d.Treasury3M = points
	default:
		return false
	}
	return true
}

// Counts returns the number of points per series.
func (d *EconomicDataset) Counts() map[string]int {
	counts := make(map[string]int, len(SeriesNames))
	for _, name := range SeriesNames {
		counts[name] = len(d.Series(name))
	}
	return counts
}
