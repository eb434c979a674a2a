package watch

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource reads normalized observations from a YAML drop file.
//
// External scrapers that live outside this process write their parsed
// results to a file; the poller re-reads it on every tick, so stock
// changes land in the ledger whenever the file is regenerated. The file
// looks like:
//
//	store: Walmart
//	observations:
//	  - product: Nintendo Switch Neon
//	    location: Main St
//	    quantity: 3
//	    price: 39999
//	  - product: Nintendo Switch Grey
//	    location: Main St
//	    quantity: 0
//
// Omitted quantity or price fields parse as unknown.
type FileSource struct {
	name string
	path string
}

type fileFeed struct {
	Store        string            `yaml:"store"`
	Observations []fileObservation `yaml:"observations"`
}

type fileObservation struct {
	Product  string `yaml:"product"`
	Location string `yaml:"location"`
	Quantity *int64 `yaml:"quantity"`
	Price    *int64 `yaml:"price"`
}

// NewFileSource creates a source reading from path.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

// Name identifies the source in logs and health messages.
func (f *FileSource) Name() string {
	return f.name
}

// Observe parses the drop file into a report.
func (f *FileSource) Observe(_ context.Context) (Report, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return Report{}, fmt.Errorf("read feed file: %w", err)
	}

	var feed fileFeed
	if err := yaml.Unmarshal(data, &feed); err != nil {
		return Report{}, fmt.Errorf("parse feed file %s: %w", f.path, err)
	}
	if feed.Store == "" {
		return Report{}, fmt.Errorf("feed file %s: missing store name", f.path)
	}

	report := Report{
		Store:        feed.Store,
		Observations: make([]Observation, 0, len(feed.Observations)),
	}
	for _, obs := range feed.Observations {
		report.Observations = append(report.Observations, Observation{
			Product:  obs.Product,
			Location: obs.Location,
			Quantity: obs.Quantity,
			Price:    obs.Price,
		})
	}

	return report, nil
}
