package store

import (
	"context"
	"database/sql"
	"fmt"
)

// StockRow is one entry in the "currently in stock" snapshot.
type StockRow struct {
	RecordedAt int64
	Store      string
	Location   string
	Product    string
	Price      *int64
	Quantity   *int64
}

// InStock returns the current sample of every triple whose latest
// quantity is nonzero, ordered by store name, location label, then
// product name (all case-insensitive).
//
// The snapshot is a fresh point-in-time query on each call. The inner
// group-by relies on SQLite's bare-column guarantee: with a lone max()
// aggregate, the ungrouped id column comes from the max row.
func (s *Store) InStock(ctx context.Context) ([]StockRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ss.recorded_at, st.name, sl.location, p.name, ss.price, ss.quantity
		FROM stock_samples AS ss
		INNER JOIN stores AS st ON st.id = ss.store_id
		INNER JOIN store_locations AS sl ON sl.id = ss.location_id
		INNER JOIN products AS p ON p.id = ss.product_id
		INNER JOIN (
			SELECT id, max(recorded_at)
			FROM stock_samples
			GROUP BY store_id, location_id, product_id
		) latest ON latest.id = ss.id
		WHERE ss.quantity != 0
		ORDER BY st.name COLLATE NOCASE ASC, sl.location COLLATE NOCASE ASC, p.name COLLATE NOCASE ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query in stock: %w", err)
	}
	defer rows.Close()

	var result []StockRow
	for rows.Next() {
		var (
			r        StockRow
			price    sql.NullInt64
			quantity sql.NullInt64
		)
		if err := rows.Scan(&r.RecordedAt, &r.Store, &r.Location, &r.Product, &price, &quantity); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		if price.Valid {
			r.Price = &price.Int64
		}
		if quantity.Valid {
			r.Quantity = &quantity.Int64
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock rows: %w", err)
	}

	// Return empty slice instead of nil
	if result == nil {
		result = []StockRow{}
	}

	return result, nil
}
