package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdsmith/stockwatch/internal/ledger"
	"github.com/sdsmith/stockwatch/internal/store"
)

// StockOptions holds flags for the stock command.
type StockOptions struct {
	*RootOptions
	Database string
}

// NewStockCommand creates the stock command.
func NewStockCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StockOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Print everything currently in stock",
		Long: `Print the current in-stock snapshot: for every (product, store, location)
with a nonzero latest quantity, one line ordered by store, location,
then product.

Example:
  stockwatch stock --db ./stock.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStock(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runStock(cmd *cobra.Command, opts *StockOptions) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := ledger.New(st).CurrentlyInStock(cmd.Context())
	if err != nil {
		return err
	}

	renderStock(cmd.OutOrStdout(), rows)
	return nil
}

// renderStock writes one report line per row:
//
//	[2021-03-06 03:06:40] Walmart, Main St - Nintendo Switch Neon: 3 @ $399.99
//
// Unknown quantity or price renders as "?".
func renderStock(w io.Writer, rows []store.StockRow) {
	for _, r := range rows {
		ts := time.Unix(r.RecordedAt, 0).UTC().Format("2006-01-02 15:04:05")
		fmt.Fprintf(w, "[%s] %s, %s - %s: %s @ %s\n",
			ts, r.Store, r.Location, r.Product, formatQuantity(r.Quantity), formatPrice(r.Price))
	}
}

func formatQuantity(q *int64) string {
	if q == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *q)
}

func formatPrice(p *int64) string {
	if p == nil {
		return "$?"
	}
	return fmt.Sprintf("$%d.%02d", *p/100, *p%100)
}
