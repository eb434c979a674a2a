package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrProductMissing indicates a product row that earlier samples reference
// no longer resolves by name. The ledger treats this as a consistency
// fault, not a normal lookup miss.
var ErrProductMissing = errors.New("product row missing for recorded triple")

// ResolveStore returns the id for a store name, inserting the row on
// first sight. Name comparison is case-insensitive (COLLATE NOCASE).
//
// Insert-or-select runs in a single transaction so two callers resolving
// the same new name cannot both insert.
func (s *Store) ResolveStore(ctx context.Context, name string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("resolve store: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	id, err := resolveStoreTx(ctx, tx, name)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("resolve store: commit: %w", err)
	}

	return id, nil
}

func resolveStoreTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO stores (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, name)
	if err != nil {
		return 0, fmt.Errorf("insert store: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM stores WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("select store: %w", err)
	}

	return id, nil
}

// resolveProductTx inserts the product row if absent and returns its id.
func resolveProductTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO products (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, name)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM products WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("select product: %w", err)
	}

	return id, nil
}

// lookupProductTx returns the id of an existing product. A product that
// earlier samples reference must still resolve; a miss is reported as
// ErrProductMissing.
func lookupProductTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM products WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup product %q: %w", name, ErrProductMissing)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup product: %w", err)
	}
	return id, nil
}

// resolveLocationTx inserts the (store_id, location) row if absent and
// returns its id. Labels are compared case-insensitively per store.
func resolveLocationTx(ctx context.Context, tx *sql.Tx, storeID int64, location string) (int64, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO store_locations (store_id, location) VALUES (?, ?)
		ON CONFLICT(store_id, location) DO NOTHING
	`, storeID, location)
	if err != nil {
		return 0, fmt.Errorf("insert location: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM store_locations WHERE store_id = ? AND location = ?
	`, storeID, location).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("select location: %w", err)
	}

	return id, nil
}
