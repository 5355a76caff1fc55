package main

import (
	"errors"
	"fmt"
	"net/http"

	"traind/internal/callback"
	"traind/internal/httpapi"
	"traind/internal/linreg"
	"traind/internal/registry"
	"traind/internal/trainer"
	"traind/pkg/types"
)

// monitorService adapts the trainer + registry for the HTTP monitor.
type monitorService struct {
	tr       *trainer.Trainer
	datasets []types.Dataset
}

func (m monitorService) Status() types.StatusResponse { return m.tr.Status() }
func (m monitorService) Datasets() []types.Dataset    { return m.datasets }
func (m monitorService) Ready() bool                  { return m.tr.Ready() }

func runTrain(opts *trainOpts) error {
	logger := newLogger(opts.logLevel)
	callback.SetLogger(logger)
	httpapi.SetLogger(logger)

	datasets, err := registry.LoadDir(opts.datasetsDir)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}
	if len(datasets) == 0 {
		return fmt.Errorf("no *.csv datasets in %s", opts.datasetsDir)
	}
	ds := datasets[0]
	if opts.dataset != "" {
		found := false
		for _, d := range datasets {
			if d.ID == opts.dataset {
				ds = d
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("dataset %q not found in %s", opts.dataset, opts.datasetsDir)
		}
	}

	features, targets, err := registry.LoadCSV(ds.Path)
	if err != nil {
		return fmt.Errorf("load %s: %w", ds.ID, err)
	}
	logger.Info().Str("dataset", ds.ID).Int("rows", len(features)).Int("features", len(features[0])).Msg("dataset loaded")

	model := linreg.New(len(features[0]))
	early := callback.NewEarlyStopping(callback.EarlyStoppingConfig{
		Metric:         opts.metric,
		Maximize:       opts.maximize,
		Tol:            opts.tol,
		Patience:       opts.patience,
		ValidateMetric: true,
	})
	tr := trainer.New(trainer.Config{
		Network: model,
		// Dispatch runs in attach order: the stopping monitor writes the
		// best epoch/value back at train end, so it must run before the
		// Metrics callback reads them.
		Callbacks: []callback.Callback{
			callback.NewHistory(opts.verbose),
			early,
			callback.NewMetrics(),
		},
		MaxEpochs:    opts.maxEpochs,
		BatchSize:    opts.batchSize,
		LearningRate: opts.lr,
		Seed:         opts.seed,
		Dataset:      ds.ID,
	})

	var srv *http.Server
	if opts.addr != "" {
		srv = &http.Server{Addr: opts.addr, Handler: httpapi.NewMux(monitorService{tr: tr, datasets: datasets})}
		go func() {
			logger.Info().Str("addr", opts.addr).Msg("monitor listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("monitor server")
			}
		}()
	}

	ctx, stop := signalContext()
	defer stop()

	fitErr := tr.Fit(ctx, features, targets)
	if srv != nil {
		shutdownServer(srv, logger)
	}
	if fitErr != nil && !errors.Is(fitErr, ctx.Err()) {
		return fitErr
	}

	st := tr.Status()
	logger.Info().
		Str("state", st.State).
		Int("best_epoch", st.BestEpoch).
		Float64("best_value", st.BestValue).
		Int("steps", st.Steps).
		Msg("training finished")
	return nil
}

func runDatasets(dir string) error {
	datasets, err := registry.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}
	if len(datasets) == 0 {
		fmt.Println("no datasets found")
		return nil
	}
	for _, d := range datasets {
		fmt.Printf("%s\t%s\n", d.ID, d.Path)
	}
	return nil
}
