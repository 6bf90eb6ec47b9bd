// Package exporter writes a dataset to disk in one of several formats.
package exporter

import (
	"strings"

	"EconDash/internal/model"
)

// Saver writes a whole dataset to path.
type Saver interface {
	Save(ds *model.EconomicDataset, path string) error
	Extension() string
}

// NewSaver creates the implementation for format (json, yaml, csv, parquet).
// Returns nil if format is not supported.
func NewSaver(format string) Saver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONSaver{}
	case "yaml", "yml":
		return YAMLSaver{}
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	default:
		return nil
	}
}

// Formats lists the accepted format names.
func Formats() []string { return []string{"json", "yaml", "csv", "parquet"} }

// Row is the flat, one-point-per-row form used by tabular formats.
type Row struct {
	Series  string  `parquet:"series,dict"`
	Date    string  `parquet:"date"`
	Value   float64 `parquet:"value"`
	DateNum int64   `parquet:"date_num"`
}

// Rows flattens ds in series display order.
func Rows(ds *model.EconomicDataset) []Row {
	var rows []Row
	for _, name := range model.SeriesNames {
		for _, p := range ds.Series(name) {
			rows = append(rows, Row{Series: name, Date: p.Date, Value: p.Value, DateNum: int64(p.SequenceIndex)})
		}
	}
	return rows
}

// FromRows rebuilds a dataset from flattened rows. Rows of unknown series are ignored.
func FromRows(rows []Row) *model.EconomicDataset {
	ds := model.NewEconomicDataset()
	for _, r := range rows {
		p := model.ChartPoint{Date: r.Date, Value: r.Value, SequenceIndex: int(r.DateNum)}
		ds.SetSeries(r.Series, append(ds.Series(r.Series), p))
	}
	return ds
}
