package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"traind/internal/config"
)

// envOr returns the environment value for key, or def when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// trainOpts collects everything the train command needs, merged from config
// file, environment and flags (flags win).
type trainOpts struct {
	configPath  string
	addr        string
	datasetsDir string
	dataset     string
	maxEpochs   int
	batchSize   int
	lr          float64
	patience    int
	tol         float64
	metric      string
	maximize    bool
	verbose     int
	seed        int64
	logLevel    string
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "traind",
		Short:         "Instrumented training-loop driver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts := &trainOpts{}
	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a model on a CSV dataset with early stopping",
		Example: "  traind train --datasets-dir ~/datasets --dataset housing.csv --max-epochs 100\n" +
			"  traind train --config traind.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigFile(cmd, opts)
			return runTrain(opts)
		},
	}
	trainCmd.Flags().StringVar(&opts.configPath, "config", envOr("TRAIND_CONFIG", ""), "Optional config file (.yaml/.json/.toml)")
	trainCmd.Flags().StringVar(&opts.addr, "addr", envOr("TRAIND_ADDR", ":8080"), "Monitor HTTP listen address (empty disables)")
	trainCmd.Flags().StringVar(&opts.datasetsDir, "datasets-dir", envOr("TRAIND_DATASETS_DIR", "~/datasets"), "Directory to scan for *.csv dataset files")
	trainCmd.Flags().StringVar(&opts.dataset, "dataset", "", "Dataset id to train on (defaults to the only/first dataset)")
	trainCmd.Flags().IntVar(&opts.maxEpochs, "max-epochs", envOrInt("TRAIND_MAX_EPOCHS", 100), "Maximum number of epochs")
	trainCmd.Flags().IntVar(&opts.batchSize, "batch-size", 32, "Mini-batch size")
	trainCmd.Flags().Float64Var(&opts.lr, "lr", 0.01, "Learning rate")
	trainCmd.Flags().IntVar(&opts.patience, "patience", 5, "Non-improving epochs tolerated before stopping")
	trainCmd.Flags().Float64Var(&opts.tol, "tol", 0, "Minimum improvement that resets patience")
	trainCmd.Flags().StringVar(&opts.metric, "metric", "loss", "Metric monitored for early stopping")
	trainCmd.Flags().BoolVar(&opts.maximize, "maximize", false, "Maximize the monitored metric instead of minimizing")
	trainCmd.Flags().IntVar(&opts.verbose, "verbose", 1, "Print a progress line every N batches")
	trainCmd.Flags().Int64Var(&opts.seed, "seed", 0, "Shuffle seed (0 = time-based)")
	trainCmd.Flags().StringVar(&opts.logLevel, "log-level", envOr("TRAIND_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")

	dsDir := ""
	datasetsCmd := &cobra.Command{
		Use:   "datasets",
		Short: "List discoverable datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasets(dsDir)
		},
	}
	datasetsCmd.Flags().StringVar(&dsDir, "datasets-dir", envOr("TRAIND_DATASETS_DIR", "~/datasets"), "Directory to scan for *.csv dataset files")

	root.AddCommand(trainCmd, datasetsCmd)
	return root
}

// applyConfigFile loads the optional config file and fills in every option
// the user did not set explicitly on the command line.
func applyConfigFile(cmd *cobra.Command, opts *trainOpts) {
	if opts.configPath == "" {
		return
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config %s: %v\n", opts.configPath, err)
		return
	}
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if !set("addr") && cfg.Addr != "" {
		opts.addr = cfg.Addr
	}
	if !set("datasets-dir") && cfg.DatasetsDir != "" {
		opts.datasetsDir = cfg.DatasetsDir
	}
	if !set("dataset") && cfg.Dataset != "" {
		opts.dataset = cfg.Dataset
	}
	if !set("max-epochs") && cfg.MaxEpochs > 0 {
		opts.maxEpochs = cfg.MaxEpochs
	}
	if !set("batch-size") && cfg.BatchSize > 0 {
		opts.batchSize = cfg.BatchSize
	}
	if !set("lr") && cfg.LearningRate > 0 {
		opts.lr = cfg.LearningRate
	}
	if !set("patience") && cfg.Patience > 0 {
		opts.patience = cfg.Patience
	}
	if !set("tol") && cfg.Tol > 0 {
		opts.tol = cfg.Tol
	}
	if !set("metric") && cfg.Metric != "" {
		opts.metric = cfg.Metric
	}
	if !set("maximize") {
		opts.maximize = opts.maximize || cfg.Maximize
	}
	if !set("verbose") && cfg.Verbose > 0 {
		opts.verbose = cfg.Verbose
	}
	if !set("seed") && cfg.Seed != 0 {
		opts.seed = cfg.Seed
	}
	if !set("log-level") && cfg.LogLevel != "" {
		opts.logLevel = cfg.LogLevel
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// shutdownServer gives the monitor a short grace period to drain.
func shutdownServer(srv *http.Server, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown")
	}
}
