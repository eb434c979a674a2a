package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sdsmith/stockwatch/internal/ledger"
	"github.com/sdsmith/stockwatch/internal/notify"
)

// Clock supplies observation timestamps. The poller stamps every
// observation in a run with the same reading so a run is one logical
// point in time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// PollerOptions configures optional poller behavior. The zero value is
// usable: system clock, default logger, DefaultInterval.
type PollerOptions struct {
	// Interval between source runs. Defaults to DefaultInterval.
	Interval time.Duration

	// Clock overrides the timestamp source (for backfill and tests).
	Clock Clock

	// Logger overrides slog.Default().
	Logger *slog.Logger
}

// Poller runs each source on an interval and feeds its observations
// through the ledger. Sources run concurrently with each other; ordering
// within a triple is the ledger's job.
type Poller struct {
	ledger   *ledger.Ledger
	sink     notify.Sink
	sources  []Source
	interval time.Duration
	clock    Clock
	log      *slog.Logger
}

// NewPoller creates a poller over the given sources.
func NewPoller(lg *ledger.Ledger, sink notify.Sink, sources []Source, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Poller{
		ledger:   lg,
		sink:     sink,
		sources:  sources,
		interval: opts.Interval,
		clock:    opts.Clock,
		log:      opts.Logger,
	}
}

// Run polls every source once immediately and then on each interval
// tick, one goroutine per source, until the context is canceled.
func (p *Poller) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, src := range p.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			p.loop(ctx, src)
		}(src)
	}
	wg.Wait()
	return ctx.Err()
}

// RunOnce polls every source a single time, sequentially. Used by the
// one-shot CLI path. Source failures are joined, not short-circuited, so
// one broken feed does not starve the others.
func (p *Poller) RunOnce(ctx context.Context) error {
	var errs []error
	for _, src := range p.sources {
		if err := p.poll(ctx, src); err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", src.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (p *Poller) loop(ctx context.Context, src Source) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.poll(ctx, src); err != nil && ctx.Err() == nil {
			p.log.Error("poll failed", "source", src.Name(), "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// poll performs one source run: observe, resolve the store id up front,
// then record each observation and alert on genuine changes.
func (p *Poller) poll(ctx context.Context, src Source) error {
	run := uuid.Must(uuid.NewV7()).String()
	log := p.log.With("source", src.Name(), "run", run)

	p.health(ctx, log, fmt.Sprintf("Starting %s check...", src.Name()))

	report, err := src.Observe(ctx)
	if err != nil {
		p.health(ctx, log, fmt.Sprintf("%s check failed: %v", src.Name(), err))
		return fmt.Errorf("observe: %w", err)
	}

	storeID, err := p.ledger.ResolveStore(ctx, report.Store)
	if err != nil {
		return fmt.Errorf("resolve store %q: %w", report.Store, err)
	}

	recordedAt := p.clock.Now().Unix()

	var errs []error
	for _, obs := range report.Observations {
		changed, err := p.ledger.RecordObservation(ctx, ledger.Observation{
			RecordedAt: recordedAt,
			Product:    obs.Product,
			StoreID:    storeID,
			Location:   obs.Location,
			Quantity:   obs.Quantity,
			Price:      obs.Price,
		})
		if err != nil {
			// Visible failure per observation; the remaining readings in
			// the run still get recorded.
			log.Error("record observation failed",
				"product", obs.Product, "location", obs.Location, "error", err)
			errs = append(errs, err)
			continue
		}

		if !changed {
			log.Debug("no change", "product", obs.Product, "location", obs.Location)
			continue
		}

		text := formatAlert(report.Store, obs)
		log.Info("stock change", "product", obs.Product, "location", obs.Location, "alert", text)
		if err := p.sink.Notify(ctx, text); err != nil {
			// Alert delivery is best effort; the change is already in the
			// ledger and shows up in the snapshot regardless.
			log.Error("failed to deliver alert", "error", err)
		}
	}

	return errors.Join(errs...)
}

func (p *Poller) health(ctx context.Context, log *slog.Logger, text string) {
	if err := p.sink.Health(ctx, text); err != nil {
		log.Error("failed to deliver health message", "error", err)
	}
}

// formatAlert renders a human-facing stock alert line, e.g.
// "Nintendo Switch Neon: 3 in stock at Walmart, Main St ($399.99)".
func formatAlert(storeName string, obs Observation) string {
	var availability string
	switch {
	case obs.Quantity == nil:
		availability = "availability unknown"
	case *obs.Quantity == 0:
		availability = "out of stock"
	default:
		availability = fmt.Sprintf("%d in stock", *obs.Quantity)
	}

	text := fmt.Sprintf("%s: %s at %s, %s", obs.Product, availability, storeName, obs.Location)
	if obs.Price != nil {
		text += fmt.Sprintf(" ($%d.%02d)", *obs.Price/100, *obs.Price%100)
	}
	return text
}
