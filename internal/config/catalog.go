package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dataset describes one draw history the analyzer can load
type Dataset struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	File        string `yaml:"file,omitempty"`
	URL         string `yaml:"url,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Catalog is the ordered list of known datasets
type Catalog struct {
	Datasets []Dataset `yaml:"datasets"`
}

// DefaultCatalog lists the bundled chart files
func DefaultCatalog() Catalog {
	entries := []struct{ id, name, file string }{
		{"KL", "Kalyan", "KL.html"},
		{"SHRD", "Shridevi", "SHRD.html"},
		{"TB", "Time Bazar", "TB.html"},
		{"MLD", "Milan Day", "MLD.html"},
		{"MLN", "Milan Night", "MLN.html"},
		{"MAIN", "Main Bazar", "MAIN.html"},
		{"MADHURI", "Madhuri", "MADHURI.html"},
		{"PUNA", "Pune", "PUNA.html"},
		{"SHRN", "Shridevi Night", "SHRN.html"},
		{"RJD", "Rajdhani Day", "RJD.html"},
		{"RJN", "Rajdhani Night", "RJN.html"},
		{"MADHURI NIGHT", "Madhuri Night", "MDHN.html"},
	}

	c := Catalog{Datasets: make([]Dataset, len(entries))}
	for i, e := range entries {
		c.Datasets[i] = Dataset{ID: e.id, Name: e.name, File: e.file}
	}
	return c
}

// LoadCatalog reads the dataset catalog from path. A missing file yields the
// default catalog.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultCatalog(), nil
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return c, nil
}

// Validate checks ids are present and unique and every entry has a source
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Datasets))
	for i, ds := range c.Datasets {
		if ds.ID == "" {
			return fmt.Errorf("dataset %d: empty id", i)
		}
		if seen[ds.ID] {
			return fmt.Errorf("dataset %q: duplicate id", ds.ID)
		}
		if ds.File == "" && ds.URL == "" {
			return fmt.Errorf("dataset %q: neither file nor url set", ds.ID)
		}
		seen[ds.ID] = true
	}
	return nil
}

// Lookup returns the dataset with the given id
func (c Catalog) Lookup(id string) (Dataset, bool) {
	for _, ds := range c.Datasets {
		if ds.ID == id {
			return ds, true
		}
	}
	return Dataset{}, false
}

// Select returns the datasets named by ids in order, or every dataset when
// ids is empty
func (c Catalog) Select(ids []string) ([]Dataset, error) {
	if len(ids) == 0 {
		return c.Datasets, nil
	}
	out := make([]Dataset, 0, len(ids))
	for _, id := range ids {
		ds, ok := c.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown dataset %q", id)
		}
		out = append(out, ds)
	}
	return out, nil
}
