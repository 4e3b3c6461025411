package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

// NewRootCommand builds the command tree: serve, generate-labels and
// detect-carrier.
func NewRootCommand(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "app",
		Short:         "Order fulfillment console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(logger),
		newGenerateLabelsCommand(logger),
		newDetectCarrierCommand(),
	)
	return root
}

func newServeCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the tracking refresh job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, logger)
		},
	}
}

func runServe(ctx context.Context, logger *slog.Logger) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	app, closeDB, err := openCompositionRoot(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	e, err := app.CreateRouter()
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.InfoContext(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

type generateLabelsOptions struct {
	ids       []string
	shipDate  string
	packaging string
}

func (o *generateLabelsOptions) bind(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.ids, "id", nil, "fulfillment id (repeatable or comma separated)")
	fs.StringVar(&o.shipDate, "ship-date", "", "ship date as YYYY-MM-DD (default: today)")
	fs.StringVar(&o.packaging, "packaging", "", "packaging type, e.g. FEDEX_PAK (default: configured)")
}

// command parses the flags into a GenerateLabelsCommand. The ship date is read
// in loc.
func (o *generateLabelsOptions) command(loc *time.Location) (commands.GenerateLabelsCommand, error) {
	ids, err := kernel.UUIDsFromStrings(o.ids)
	if err != nil {
		return commands.GenerateLabelsCommand{}, fmt.Errorf("--id: %w", err)
	}

	var shipDate time.Time
	if o.shipDate != "" {
		if shipDate, err = time.ParseInLocation(time.DateOnly, o.shipDate, loc); err != nil {
			return commands.GenerateLabelsCommand{}, fmt.Errorf("--ship-date: %w", err)
		}
	}

	return commands.NewGenerateLabelsCommand(ids, shipDate, o.packaging)
}

func newGenerateLabelsCommand(logger *slog.Logger) *cobra.Command {
	opts := &generateLabelsOptions{}

	c := &cobra.Command{
		Use:   "generate-labels",
		Short: "Buy shipping labels for the given fulfillments",
		Example: strings.TrimSpace(`
  app generate-labels --id 0b6c... --id 4f1e... --ship-date 2026-03-02 --packaging FEDEX_PAK`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.ShipDateLocation()
			if err != nil {
				return err
			}
			batch, err := opts.command(loc)
			if err != nil {
				return err
			}

			app, closeDB, err := openCompositionRoot(cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			result, err := app.CreateGenerateLabelsCommandHandler().Handle(cmd.Context(), batch)
			if err != nil {
				return err
			}
			return writeBatchResult(cmd.OutOrStdout(), result)
		},
	}
	opts.bind(c.Flags())
	_ = c.MarkFlagRequired("id")
	return c
}

// writeBatchResult prints one line per fulfillment and fails when any unit failed.
func writeBatchResult(out io.Writer, result commands.BatchResult) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range result.Results {
		if r.Err != nil {
			fmt.Fprintf(w, "FAILED\t%s\t%v\n", r.FulfillmentID, r.Err)
			continue
		}
		tracking := r.Fulfillment.Tracking()
		fmt.Fprintf(w, "OK\t%s\t%s\t%s\n", r.Fulfillment.Name(), tracking.Number(), tracking.LabelURL())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed := len(result.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d labels failed", failed, len(result.Results))
	}
	return nil
}

func newDetectCarrierCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect-carrier NUMBER",
		Short: "Guess the carrier of a tracking number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queries.NewDetectCarrierQuery(args[0])
			if err != nil {
				return err
			}
			res, err := queries.NewDetectCarrierQueryHandler(services.NewCarrierDetector()).Handle(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Carrier == "" {
				_, err = fmt.Fprintf(out, "%s\tunknown\n", res.TrackingNumber)
				return err
			}
			_, err = fmt.Fprintf(out, "%s\t%s\t%s\n", res.TrackingNumber, res.Carrier, res.TrackingURL)
			return err
		},
	}
}

func openCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, func(), error) {
	db, err := postgres.Open(cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	app, err := NewCompositionRoot(cfg, db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return app, closeDB, nil
}
