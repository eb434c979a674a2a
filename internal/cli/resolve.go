package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdsmith/stockwatch/internal/ledger"
	"github.com/sdsmith/stockwatch/internal/store"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Database string
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve <store>",
		Short: "Resolve a store name to its stable id",
		Long: `Resolve a store name to its stable integer id, creating the store on
first use. Resolution is case-insensitive and idempotent: the same name
always prints the same id.

Example:
  stockwatch resolve --db ./stock.db Walmart`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runResolve(cmd *cobra.Command, opts *ResolveOptions, storeName string) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := ledger.New(st).ResolveStore(cmd.Context(), storeName)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
