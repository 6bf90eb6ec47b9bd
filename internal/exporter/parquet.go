package exporter

import (
	"github.com/parquet-go/parquet-go"

	"EconDash/internal/model"
)

// ParquetSaver writes one row per point as Parquet.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(ds *model.EconomicDataset, path string) error {
	return parquet.WriteFile(path, Rows(ds))
}
