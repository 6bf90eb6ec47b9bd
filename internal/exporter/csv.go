package exporter

import (
	"encoding/csv"
	"os"
	"strconv"

	"EconDash/internal/model"
)

// CSVSaver writes one row per point (header: series,date,value,dateNum).
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(ds *model.EconomicDataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)

	if err := w.Write([]string{"series", "date", "value", "dateNum"}); err != nil {
		return err
	}
	for _, r := range Rows(ds) {
		if err := w.Write([]string{
			r.Series,
			r.Date,
			strconv.FormatFloat(r.Value, 'f', -1, 64),
			strconv.FormatInt(r.DateNum, 10),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
