// Package watch drives observation sources through the ledger on an
// interval and forwards genuine stock changes to a notification sink.
//
// All network access, page parsing and availability-vocabulary mapping
// happens behind the Source interface; the poller only sees normalized
// observations.
package watch

import "context"

// Observation is one normalized availability reading for a product at a
// store location. Quantity and Price are nil when unknown; Price is in
// the smallest currency unit.
type Observation struct {
	Product  string
	Location string
	Quantity *int64
	Price    *int64
}

// Report is the outcome of one source run: the store the observations
// belong to plus the readings themselves.
type Report struct {
	Store        string
	Observations []Observation
}

// Source produces normalized stock observations for a single retailer.
//
// Observe owns its own fetch/parse failure handling and timeouts; the
// poller does not retry a failed run, it just reports it to the health
// sink and waits for the next tick.
type Source interface {
	// Name identifies the source in logs and health messages.
	Name() string

	// Observe performs one observation run.
	Observe(ctx context.Context) (Report, error)
}
