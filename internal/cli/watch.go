package cli

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sdsmith/stockwatch/internal/ledger"
	"github.com/sdsmith/stockwatch/internal/notify"
	"github.com/sdsmith/stockwatch/internal/store"
	"github.com/sdsmith/stockwatch/internal/watch"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Database string
	Config   string
	Once     bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll observation feeds and alert on stock changes",
		Long: `Poll the observation feeds named in the config file, record their
readings in the ledger, and deliver an alert for every genuine stock or
price change. Runs until interrupted, or once with --once.

Example:
  stockwatch watch --db ./stock.db --config ./watch.yaml
  stockwatch watch --db ./stock.db --config ./watch.yaml --once`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to watch config YAML (required)")
	cmd.Flags().BoolVar(&opts.Once, "once", false, "poll each feed once and exit")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions) error {
	cfg, err := watch.LoadConfig(opts.Config)
	if err != nil {
		return err
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var sink notify.Sink
	if cfg.Notify.WebhookURL != "" {
		sink = notify.NewWebhook(cfg.Notify.WebhookURL, cfg.Notify.HealthWebhookURL)
	} else {
		sink = notify.NewLogger(slog.Default())
	}

	sources := make([]watch.Source, 0, len(cfg.Feeds))
	for _, feed := range cfg.Feeds {
		sources = append(sources, watch.NewFileSource(feed.Name, feed.Path))
	}

	poller := watch.NewPoller(ledger.New(st), sink, sources, watch.PollerOptions{
		Interval: cfg.Interval,
	})

	if opts.Once {
		return poller.RunOnce(cmd.Context())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("watching feeds", "feeds", len(sources), "interval", cfg.Interval)
	if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
