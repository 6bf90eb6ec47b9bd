package exporter

import (
	"encoding/json"
	"os"

	"EconDash/internal/model"
)

// JSONSaver writes the dataset in the /api/fred response shape.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(ds *model.EconomicDataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}
