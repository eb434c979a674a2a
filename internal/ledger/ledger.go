package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/sdsmith/stockwatch/internal/store"
)

// Observation is one normalized availability reading handed to the
// ledger. The caller supplies the timestamp (epoch seconds) rather than
// the ledger reading a clock, which keeps backfill and tests honest.
// Quantity and Price are nil when the source reported them unknown.
type Observation struct {
	RecordedAt int64
	Product    string
	StoreID    int64
	Location   string
	Quantity   *int64
	Price      *int64
}

// Ledger is the append-only stock history ledger.
type Ledger struct {
	store *store.Store

	// mu guards triples. Each triple gets its own mutex held across the
	// read-latest-then-conditionally-append sequence, which is otherwise
	// a check-then-act race.
	mu      sync.Mutex
	triples map[tripleKey]*sync.Mutex
}

type tripleKey struct {
	product  string
	storeID  int64
	location string
}

// New creates a ledger backed by the given store.
func New(st *store.Store) *Ledger {
	return &Ledger{
		store:   st,
		triples: make(map[tripleKey]*sync.Mutex),
	}
}

// ResolveStore returns the stable id for a store name, creating the row
// on first use. Idempotent: the same name (case-insensitively) always
// resolves to the same id.
func (l *Ledger) ResolveStore(ctx context.Context, name string) (int64, error) {
	name = normalizeName(name)

	id, err := l.store.ResolveStore(ctx, name)
	if err != nil {
		return 0, &Error{
			Code:    ErrCodeStorageUnavailable,
			Message: "resolve store",
			Err:     err,
		}
	}

	return id, nil
}

// RecordObservation appends the observation to the ledger if it changed
// the known state of its triple, and reports whether it did.
//
// A first-ever sighting always persists a sample but only counts as a
// change when the quantity is positive: discovering that something is
// out of stock is not news. For a triple with history, any difference in
// (quantity, price) - either direction, including drops to zero - is a
// change and appends a new sample reusing the prior sample's location
// id. Identical (quantity, price) appends nothing. Comparison is exact;
// nil (unknown) equals only nil.
func (l *Ledger) RecordObservation(ctx context.Context, obs Observation) (bool, error) {
	product := normalizeName(obs.Product)
	location := normalizeName(obs.Location)

	unlock := l.lockTriple(product, obs.StoreID, location)
	defer unlock()

	prev, err := l.store.LatestSample(ctx, product, obs.StoreID, location)
	if err != nil {
		return false, l.storageError(obs, "read latest sample", err)
	}

	if prev == nil {
		// First sighting: create location and product rows alongside the
		// sample, then report a change only for positive stock.
		err := l.store.AppendFirstSample(ctx, obs.RecordedAt, product, obs.StoreID, location, obs.Quantity, obs.Price)
		if err != nil {
			return false, l.storageError(obs, "append first sample", err)
		}
		return obs.Quantity != nil && *obs.Quantity > 0, nil
	}

	if int64PtrEqual(obs.Quantity, prev.Quantity) && int64PtrEqual(obs.Price, prev.Price) {
		// Nothing new. The overwhelming majority of observations land
		// here: one read, zero writes.
		return false, nil
	}

	err = l.store.AppendNextSample(ctx, obs.RecordedAt, product, obs.StoreID, prev.LocationID, obs.Quantity, obs.Price)
	if errors.Is(err, store.ErrProductMissing) {
		return false, &Error{
			Code:     ErrCodeInternalConsistency,
			Message:  "product vanished between samples",
			Product:  product,
			StoreID:  obs.StoreID,
			Location: location,
			Err:      err,
		}
	}
	if err != nil {
		return false, l.storageError(obs, "append sample", err)
	}

	return true, nil
}

// CurrentlyInStock returns the current sample of every triple with
// nonzero quantity, ordered by store, location, then product. Each call
// is a fresh point-in-time read.
func (l *Ledger) CurrentlyInStock(ctx context.Context) ([]store.StockRow, error) {
	rows, err := l.store.InStock(ctx)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeStorageUnavailable,
			Message: "query in-stock snapshot",
			Err:     err,
		}
	}
	return rows, nil
}

// lockTriple acquires the mutex for a triple, creating it on first use.
// The key folds case so it cannot be finer-grained than the store's
// NOCASE comparison.
func (l *Ledger) lockTriple(product string, storeID int64, location string) (unlock func()) {
	key := tripleKey{
		product:  strings.ToLower(product),
		storeID:  storeID,
		location: strings.ToLower(location),
	}

	l.mu.Lock()
	m, ok := l.triples[key]
	if !ok {
		m = &sync.Mutex{}
		l.triples[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (l *Ledger) storageError(obs Observation, msg string, err error) *Error {
	return &Error{
		Code:     ErrCodeStorageUnavailable,
		Message:  msg,
		Product:  normalizeName(obs.Product),
		StoreID:  obs.StoreID,
		Location: normalizeName(obs.Location),
		Err:      err,
	}
}

// normalizeName puts a name into NFC so byte-different but canonically
// equal spellings share one identity. Case folding is left to the
// store's NOCASE collation.
func normalizeName(s string) string {
	return norm.NFC.String(s)
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
