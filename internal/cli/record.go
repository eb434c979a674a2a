package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdsmith/stockwatch/internal/ledger"
	"github.com/sdsmith/stockwatch/internal/store"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Database string
	Quantity int64
	Price    int64
	At       int64
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <store> <location> <product>",
		Short: "Record a single stock observation",
		Long: `Record one availability observation for a product at a store location.

Unset --quantity or --price means the value was not observed. The ledger
appends a sample only when the observation changes the triple's known
state; the command prints "changed" or "no change" accordingly.

Example:
  stockwatch record --db ./stock.db --quantity 3 --price 39999 Walmart "Main St" "Nintendo Switch Neon"`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var quantity, price *int64
			if cmd.Flags().Changed("quantity") {
				quantity = &opts.Quantity
			}
			if cmd.Flags().Changed("price") {
				price = &opts.Price
			}
			at := opts.At
			if !cmd.Flags().Changed("at") {
				at = time.Now().Unix()
			}
			return runRecord(cmd, opts, args[0], args[1], args[2], at, quantity, price)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().Int64Var(&opts.Quantity, "quantity", 0, "observed quantity (omit if unknown)")
	cmd.Flags().Int64Var(&opts.Price, "price", 0, "observed price in cents (omit if unknown)")
	cmd.Flags().Int64Var(&opts.At, "at", 0, "observation time as epoch seconds (default: now)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRecord(cmd *cobra.Command, opts *RecordOptions, storeName, location, product string, at int64, quantity, price *int64) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	lg := ledger.New(st)

	storeID, err := lg.ResolveStore(cmd.Context(), storeName)
	if err != nil {
		return err
	}

	changed, err := lg.RecordObservation(cmd.Context(), ledger.Observation{
		RecordedAt: at,
		Product:    product,
		StoreID:    storeID,
		Location:   location,
		Quantity:   quantity,
		Price:      price,
	})
	if err != nil {
		return err
	}

	if changed {
		fmt.Fprintln(cmd.OutOrStdout(), "changed")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "no change")
	}

	return nil
}
