// Package ledger implements the stock history ledger: an append-only,
// deduplicating record of product availability at retailer locations.
//
// The ledger decides, per observation, whether the visible state of a
// (product, store, location) triple changed. Unchanged observations cost
// one read and zero writes; genuine transitions append a new sample and
// report changed=true so the caller can alert a human. A triple's
// current state is always the sample with the greatest recorded_at -
// there is no mutable "latest" field to drift out of sync.
//
// Calls for the same triple are serialized with a per-triple mutex held
// across the read-latest-then-conditionally-append sequence; different
// triples proceed fully in parallel.
package ledger
