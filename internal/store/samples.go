package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Sample is one recorded (quantity, price) state of a triple.
// Quantity and Price are nil when the observation reported them unknown.
type Sample struct {
	ID         int64
	RecordedAt int64
	ProductID  int64
	StoreID    int64
	LocationID int64
	Quantity   *int64
	Price      *int64
}

// LatestSample returns the most recent sample for the triple identified
// by product name, store id and location label. The match key is the
// label text, not a location id: a location id only exists once the
// triple has been sampled, so the historical lookup joins on the label.
//
// Returns nil when no sample exists for the triple.
func (s *Store) LatestSample(ctx context.Context, productName string, storeID int64, location string) (*Sample, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT ss.id, ss.recorded_at, ss.product_id, ss.store_id, ss.location_id, ss.quantity, ss.price
		FROM stock_samples AS ss
		INNER JOIN store_locations AS sl ON sl.id = ss.location_id
		INNER JOIN products AS p ON p.id = ss.product_id
		WHERE p.name = ? AND ss.store_id = ? AND sl.location = ?
		ORDER BY ss.recorded_at DESC, ss.id DESC
		LIMIT 1
	`, productName, storeID, location)

	var (
		sample   Sample
		quantity sql.NullInt64
		price    sql.NullInt64
	)
	err := row.Scan(&sample.ID, &sample.RecordedAt, &sample.ProductID, &sample.StoreID,
		&sample.LocationID, &quantity, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest sample: %w", err)
	}

	if quantity.Valid {
		sample.Quantity = &quantity.Int64
	}
	if price.Valid {
		sample.Price = &price.Int64
	}

	return &sample, nil
}

// AppendFirstSample records the first-ever sample for a triple. The
// location and product rows are created on demand inside the same
// transaction as the sample insert.
func (s *Store) AppendFirstSample(ctx context.Context, recordedAt int64, productName string, storeID int64, location string, quantity, price *int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append first sample: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	locationID, err := resolveLocationTx(ctx, tx, storeID, location)
	if err != nil {
		return fmt.Errorf("append first sample: %w", err)
	}

	productID, err := resolveProductTx(ctx, tx, productName)
	if err != nil {
		return fmt.Errorf("append first sample: %w", err)
	}

	if err := insertSampleTx(ctx, tx, recordedAt, productID, storeID, locationID, quantity, price); err != nil {
		return fmt.Errorf("append first sample: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append first sample: commit: %w", err)
	}

	return nil
}

// AppendNextSample records a state transition for a triple that already
// has history. The location id is inherited from the prior sample, not
// re-resolved; the product must already exist and a miss surfaces as
// ErrProductMissing.
func (s *Store) AppendNextSample(ctx context.Context, recordedAt int64, productName string, storeID, locationID int64, quantity, price *int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append next sample: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	productID, err := lookupProductTx(ctx, tx, productName)
	if err != nil {
		return fmt.Errorf("append next sample: %w", err)
	}

	if err := insertSampleTx(ctx, tx, recordedAt, productID, storeID, locationID, quantity, price); err != nil {
		return fmt.Errorf("append next sample: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append next sample: commit: %w", err)
	}

	return nil
}

func insertSampleTx(ctx context.Context, tx *sql.Tx, recordedAt, productID, storeID, locationID int64, quantity, price *int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO stock_samples (recorded_at, product_id, store_id, location_id, quantity, price)
		VALUES (?, ?, ?, ?, ?, ?)
	`, recordedAt, productID, storeID, locationID, nullableInt(quantity), nullableInt(price))
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
