package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/petpy/config"
	"github.com/s0up4200/petpy/filter"
	"github.com/s0up4200/petpy/legacy"
	"github.com/s0up4200/petpy/petfinder"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	filters *filter.Manager

	// Global output flags
	outputFormat string
	columns      []string
	filterExpr   string
	preset       string
	strictFilter bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "petpy",
	Short: "Search the Petfinder database from the command line",
	Long: `petpy queries the Petfinder API for adoptable animals, animal welfare
organizations, animal types and breeds.

Results are flattened into tables and can be printed as text, CSV, JSON or
YAML, narrowed to selected columns and filtered with expressions:

  petpy animals search --type cat --location 98101 --filter 'age == "Baby"'
  petpy organizations search --state WA --output csv
  petpy legacy pets find --location 98101 --animal dog`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if filters == nil {
			return nil
		}
		return filters.Close(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.StringVarP(&outputFormat, "output", "o", "", "output format: table, csv, json, yaml or raw")
	flags.StringSliceVarP(&columns, "columns", "c", nil, "columns to print, in order")
	flags.StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to result rows")
	flags.StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	flags.BoolVar(&strictFilter, "strict-filter", false, "fail when a filter errors on a row instead of skipping it")
}

// initializeApp loads the configuration, logger and filter presets. API
// clients are created by the commands that need them.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Command line flags override the config file
	if cmd.Flags().Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if cmd.Flags().Changed("columns") {
		cfg.Output.Columns = columns
	}

	var evalOpts []filter.EvaluatorOption
	if strictFilter {
		evalOpts = append(evalOpts, filter.WithStrict())
	}
	filters = filter.NewManager(filter.WithEvaluator(filter.NewConcurrentEvaluator(evalOpts...)))
	if err := filters.RegisterPresets(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset in config: %w", err)
	}

	return nil
}

// newPetfinderClient creates the v2 client and fetches an access token
func newPetfinderClient() (*petfinder.Client, error) {
	client, err := petfinder.NewClient(cfg.Petfinder.Key, cfg.Petfinder.Secret, logger,
		petfinder.WithBaseURL(cfg.Petfinder.URL),
		petfinder.WithTimeout(cfg.Petfinder.Timeout),
		petfinder.WithRateLimit(cfg.Petfinder.RateLimit, 0),
		petfinder.WithConcurrency(cfg.Petfinder.Concurrency),
		petfinder.WithUserAgent("petpy/"+version),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Petfinder client: %w", err)
	}
	return client, nil
}

// newLegacyClient creates the v1 client
func newLegacyClient() (*legacy.Client, error) {
	client, err := legacy.NewClient(cfg.LegacyKey(), logger,
		legacy.WithBaseURL(cfg.Legacy.URL),
		legacy.WithTimeout(cfg.Legacy.Timeout),
		legacy.WithRateLimit(cfg.Legacy.RateLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Petfinder v1 client: %w", err)
	}
	return client, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
