package exporter

import (
	"os"

	"gopkg.in/yaml.v3"

	"EconDash/internal/model"
)

// YAMLSaver writes the dataset as a fallback asset.
type YAMLSaver struct{}

func (YAMLSaver) Extension() string { return "yaml" }

func (YAMLSaver) Save(ds *model.EconomicDataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return err
	}
	return enc.Close()
}
