// Package callback implements the training-loop instrumentation protocol:
// lifecycle hooks dispatched in registration order, the early-stopping
// decision procedure, and progress recording. The driver owns one Container,
// builds a log record at each lifecycle point and forwards it; callbacks act
// by mutating driver state through the Trainer back-reference.
package callback

import (
	"traind/pkg/types"
)

// ParamState is an opaque handle to a model's live parameter state. Clone
// must produce a deep, driver-independent copy; mutating the live state
// afterwards must not affect the copy.
type ParamState interface {
	Clone() (ParamState, error)
}

// Trainer is the surface a driver exposes to its callbacks. Callbacks hold
// the reference for their entire lifetime; it is set exactly once before the
// loop starts.
type Trainer interface {
	// RequestStop latches the cooperative stop flag. The driver polls it
	// between epochs; it is never cleared during a run.
	RequestStop()
	StopRequested() bool

	// SetBest records the best epoch/value pair picked by a stopping monitor.
	SetBest(epoch int, value float64)
	Best() (epoch int, value float64)

	// Params returns the live parameter handle for snapshotting.
	Params() ParamState
	// RestoreParams overwrites the live parameter state with a stored snapshot.
	RestoreParams(state ParamState)

	MaxEpochs() int
	// MetricNames lists the metric names the driver can report, for eager
	// validation of configured monitor metrics.
	MetricNames() []string
}

// Callback receives lifecycle events from a Container. A returned error is
// not swallowed by the dispatcher; it propagates to the driver and aborts
// the training call.
type Callback interface {
	SetTrainer(t Trainer)
	OnTrainBegin(logs *types.TrainBeginLogs) error
	OnTrainEnd(logs *types.TrainEndLogs) error
	OnEpochBegin(epoch int, logs *types.EpochBeginLogs) error
	OnEpochEnd(epoch int, logs *types.EpochEndLogs) error
	OnBatchBegin(batch int, logs *types.BatchBeginLogs) error
	OnBatchEnd(batch int, logs *types.BatchEndLogs) error
}

// Base is a no-op Callback. Concrete callbacks embed it and override the
// hooks they care about.
type Base struct {
	trainer Trainer
}

// SetTrainer stores the driver back-reference.
func (b *Base) SetTrainer(t Trainer) { b.trainer = t }

// Trainer returns the bound driver, or nil before binding.
func (b *Base) Trainer() Trainer { return b.trainer }

func (b *Base) OnTrainBegin(*types.TrainBeginLogs) error        { return nil }
func (b *Base) OnTrainEnd(*types.TrainEndLogs) error            { return nil }
func (b *Base) OnEpochBegin(int, *types.EpochBeginLogs) error   { return nil }
func (b *Base) OnEpochEnd(int, *types.EpochEndLogs) error       { return nil }
func (b *Base) OnBatchBegin(int, *types.BatchBeginLogs) error   { return nil }
func (b *Base) OnBatchEnd(int, *types.BatchEndLogs) error       { return nil }
