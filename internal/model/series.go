package model

import "time"

// MissingValue is the placeholder FRED uses for an unavailable reading.
const MissingValue = "."

// Units selects the data transformation FRED applies before returning observations.
type Units string

const (
	UnitsLevel                   Units = "lin"
	UnitsChange                  Units = "chg"
	UnitsPercentChange           Units = "pch"
	UnitsPercentChangeAnnualized Units = "pca"
)

// Frequency selects the aggregation period of the returned observations.
type Frequency string

const (
	FrequencyMonthly   Frequency = "m"
	FrequencyQuarterly Frequency = "q"
	FrequencyAnnual    Frequency = "a"
)

// SeriesQuery describes one observations request. Zero-valued optional
// fields are not sent upstream.
type SeriesQuery struct {
	SeriesID  string
	StartDate time.Time
	EndDate   time.Time
	Units     Units
	Frequency Frequency
}

// RawObservation is one period as returned by FRED.
type RawObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// ChartPoint is a normalized observation. SequenceIndex gives charts an
// evenly spaced x-axis independent of calendar gaps.
type ChartPoint struct {
	Date          string  `json:"date" yaml:"date"`
	Value         float64 `json:"value" yaml:"value"`
	SequenceIndex int     `json:"dateNum" yaml:"dateNum"`
}
