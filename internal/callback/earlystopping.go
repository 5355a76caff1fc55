package callback

import (
	"fmt"
	"math"

	"traind/pkg/types"
)

// EarlyStoppingConfig encapsulates all tunables for EarlyStopping construction.
type EarlyStoppingConfig struct {
	// Metric is the name of the epoch-end metric to monitor.
	Metric string
	// Maximize selects the improvement direction for Metric.
	Maximize bool
	// Tol is the minimum change beyond the current best that counts as an
	// improvement. Values inside this dead zone do not reset patience.
	Tol float64
	// Patience is the number of consecutive non-improving epochs to wait
	// before requesting a stop.
	Patience int
	// ValidateMetric rejects a Metric unknown to the trainer at train begin
	// instead of silently never stopping.
	ValidateMetric bool
}

// EarlyStopping monitors a metric across epochs and asks the trainer to exit
// the loop when it stops improving. While armed it keeps a deep snapshot of
// the best-seen parameters; at train end that snapshot is restored whether
// or not the stop was triggered.
type EarlyStopping struct {
	Base

	metric   string
	maximize bool
	tol      float64
	patience int
	validate bool

	bestValue    float64
	bestEpoch    int
	wait         int
	bestParams   ParamState
	stoppedEpoch int
}

// Defaults applied when corresponding EarlyStoppingConfig fields are unset.
const (
	defaultPatience = 1
)

// NewEarlyStopping constructs an EarlyStopping callback from its config.
func NewEarlyStopping(cfg EarlyStoppingConfig) *EarlyStopping {
	e := &EarlyStopping{
		metric:   cfg.Metric,
		maximize: cfg.Maximize,
		tol:      cfg.Tol,
		patience: cfg.Patience,
		validate: cfg.ValidateMetric,
	}
	if e.patience <= 0 {
		e.patience = defaultPatience
	}
	if e.tol < 0 {
		e.tol = 0
	}
	e.bestValue = math.Inf(1)
	if e.maximize {
		e.bestValue = math.Inf(-1)
	}
	return e
}

// OnTrainBegin optionally validates the configured metric against the
// trainer's known metric names and fails fast on a typo.
func (e *EarlyStopping) OnTrainBegin(*types.TrainBeginLogs) error {
	if !e.validate {
		return nil
	}
	t := e.Trainer()
	if t == nil {
		return nil
	}
	names := t.MetricNames()
	for _, name := range names {
		if name == e.metric {
			return nil
		}
	}
	return fmt.Errorf("early stopping metric %q is not available, choose in %v", e.metric, names)
}

// OnEpochEnd runs the stopping decision procedure for one epoch.
func (e *EarlyStopping) OnEpochEnd(epoch int, logs *types.EpochEndLogs) error {
	current, ok := logs.Metric(e.metric)
	if !ok {
		// The metric was not reported this epoch (e.g. validation skipped).
		// An unjudgeable epoch never counts against patience.
		return nil
	}

	delta := current - e.bestValue
	improved := (e.maximize && delta > e.tol) || (!e.maximize && -delta > e.tol)
	if improved {
		if t := e.Trainer(); t != nil {
			if live := t.Params(); live != nil {
				// Copy first, assign only on success: a failed clone must not
				// leave a partial snapshot behind.
				snap, err := live.Clone()
				if err != nil {
					return fmt.Errorf("snapshot parameters: %w", err)
				}
				e.bestParams = snap
			}
		}
		e.bestValue = current
		e.bestEpoch = epoch
		e.wait = 0
		return nil
	}

	e.wait++
	if e.wait >= e.patience {
		if t := e.Trainer(); t != nil {
			t.RequestStop()
		}
		if e.stoppedEpoch == 0 {
			e.stoppedEpoch = epoch
		}
	}
	return nil
}

// OnTrainEnd writes the best epoch/value back to the trainer, restores the
// best-seen parameters when a snapshot exists, and logs a run summary.
func (e *EarlyStopping) OnTrainEnd(*types.TrainEndLogs) error {
	t := e.Trainer()
	if t == nil {
		return nil
	}
	t.SetBest(e.bestEpoch, e.bestValue)
	if e.bestParams != nil {
		t.RestoreParams(e.bestParams)
	}
	if e.stoppedEpoch > 0 {
		logInfo("early stopping occurred at epoch %d with best_epoch = %d and best_%s = %.6f",
			e.stoppedEpoch, e.bestEpoch, e.metric, e.bestValue)
	} else {
		logInfo("stop training because you reached max_epochs = %d with best_epoch = %d and best_%s = %.6f",
			t.MaxEpochs(), e.bestEpoch, e.metric, e.bestValue)
	}
	if e.bestParams != nil {
		logInfo("best weights from best epoch are automatically used")
	}
	return nil
}

// BestValue returns the best monitored value accepted so far.
func (e *EarlyStopping) BestValue() float64 { return e.bestValue }

// BestEpoch returns the epoch at which BestValue was observed.
func (e *EarlyStopping) BestEpoch() int { return e.bestEpoch }

// Wait returns the count of consecutive non-improving epochs since the last
// accepted improvement.
func (e *EarlyStopping) Wait() int { return e.wait }

// StoppedEpoch returns the epoch at which the stop was triggered, 0 when the
// monitor never fired.
func (e *EarlyStopping) StoppedEpoch() int { return e.stoppedEpoch }
