package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/ardalan-sia/signal-sim/pkg/config"
	logutil "github.com/ardalan-sia/signal-sim/pkg/logging"
	"github.com/ardalan-sia/signal-sim/pkg/metrics"
	"github.com/ardalan-sia/signal-sim/pkg/report"
)

// Global flags
var (
	envFile     string
	logVerbose  int
	devLogging  bool
	noColor     bool
	storePath   string
	metricsAddr string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sim",
	Short: "Adaptive traffic light simulator",
	Long: `sim runs a row of intersection controllers that stretch or shrink their
green light from simulated traffic density readings, and raises an alert when
two adjacent intersections are congested at the same time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("store") {
			cfg.StorePath = storePath
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr = metricsAddr
		}
		if noColor {
			report.SetColor(false)
		}
		return cfg.Validate()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logutil.Fatal(logutil.NewLogger(logVerbose, devLogging), err, "Command failed", "command", os.Args[1:])
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional env file with SIGNALSIM_* settings")
	rootCmd.PersistentFlags().IntVarP(&logVerbose, "verbosity", "v", logutil.DEFAULT, "Number for the log level verbosity")
	rootCmd.PersistentFlags().BoolVar(&devLogging, "dev-logging", false, "Human readable development log output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured report output")
	rootCmd.PersistentFlags().StringVarP(&storePath, "store", "f", "", "Path to the intersection store (.yaml, .msgpack or .json)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// setup attaches a logger to the command context and, when configured,
// starts the metrics endpoint.
func setup(cmd *cobra.Command) (context.Context, metrics.Recorder) {
	logger := logutil.NewLogger(logVerbose, devLogging)
	ctx := logr.NewContext(cmd.Context(), logger)

	if cfg.MetricsAddr == "" {
		return ctx, metrics.Noop{}
	}
	rec := metrics.NewPrometheus()
	go func() {
		if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
			logger.Error(err, "Metrics server stopped")
		}
	}()
	return ctx, rec
}
