// Package store provides SQLite-backed durable storage for the stock
// history ledger.
//
// The store is an append-only time series with stable identities:
//   - Stores, Products: name-keyed rows, unique under COLLATE NOCASE
//   - Store Locations: label-keyed rows scoped to a store
//   - Stock Samples: one row per observed (quantity, price) state of a
//     (product, store, location) triple
//
// Insertion is the sole mutation. No method updates or deletes a row;
// history grows monotonically and the latest sample per triple is always
// derived by query, never maintained as a mutable field.
//
// Identity resolution uses a single INSERT ... ON CONFLICT DO NOTHING
// followed by a SELECT inside one transaction, so concurrent first-sight
// of the same name cannot mint two ids.
//
// The database runs in WAL mode with synchronous=NORMAL, a 5-second
// busy timeout, and foreign keys enforced.
package store
