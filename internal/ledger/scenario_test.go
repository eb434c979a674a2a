package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// scenario is a YAML-defined observation sequence with the expected
// change signal per step. Scenarios live in testdata/scenarios.
type scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []scenarioStep `yaml:"steps"`
}

type scenarioStep struct {
	At       int64  `yaml:"at"`
	Store    string `yaml:"store"`
	Location string `yaml:"location"`
	Product  string `yaml:"product"`
	Quantity *int64 `yaml:"quantity"`
	Price    *int64 `yaml:"price"`
	Changed  bool   `yaml:"changed"`
}

func loadScenario(t *testing.T, path string) scenario {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var sc scenario
	require.NoError(t, yaml.Unmarshal(data, &sc))
	require.NotEmpty(t, sc.Name, "scenario %s: missing name", path)
	require.NotEmpty(t, sc.Steps, "scenario %s: no steps", path)
	return sc
}

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		sc := loadScenario(t, path)
		t.Run(sc.Name, func(t *testing.T) {
			lg, _ := newTestLedger(t)
			ctx := context.Background()

			storeIDs := make(map[string]int64)

			for i, step := range sc.Steps {
				id, ok := storeIDs[step.Store]
				if !ok {
					var err error
					id, err = lg.ResolveStore(ctx, step.Store)
					require.NoError(t, err, "step %d: resolve store", i)
					storeIDs[step.Store] = id
				}

				changed, err := lg.RecordObservation(ctx, Observation{
					RecordedAt: step.At,
					Product:    step.Product,
					StoreID:    id,
					Location:   step.Location,
					Quantity:   step.Quantity,
					Price:      step.Price,
				})
				require.NoError(t, err, "step %d", i)
				require.Equal(t, step.Changed, changed,
					"step %d (%s @ %s, t=%d): changed signal", i, step.Product, step.Location, step.At)
			}
		})
	}
}
