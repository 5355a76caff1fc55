package trainer

import (
	"sync"
	"time"

	"traind/internal/callback"
)

// State is the trainer lifecycle state reported by Status.
type State string

const (
	StateIdle     State = "idle"
	StateTraining State = "training"
	StateStopped  State = "stopped"
	StateDone     State = "done"
	StateError    State = "error"
)

// Network is the optimizer/model collaborator the trainer drives. Its
// internals are opaque to the loop; only these shapes are required.
type Network interface {
	// TrainBatch runs one optimization step and returns the batch loss.
	TrainBatch(features [][]float64, targets []float64, lr float64) (float64, error)
	// Metrics evaluates the dataset and returns metric values by name.
	Metrics(features [][]float64, targets []float64) map[string]float64
	// MetricNames lists every metric Metrics can report.
	MetricNames() []string
	// StateDict returns the live parameter handle.
	StateDict() callback.ParamState
	// SetStateDict overwrites the live parameters with a stored state.
	SetStateDict(state callback.ParamState)
}

// Trainer drives the fit loop and implements callback.Trainer. Fields below
// the mutex are shared with the HTTP monitor, which reads Status()
// concurrently; callbacks themselves only run on the Fit goroutine.
type Trainer struct {
	net       Network
	callbacks *callback.Container
	maxEpochs int
	batchSize int
	lr        float64
	seed      int64
	datasetID string

	mu           sync.RWMutex
	state        State
	stopTraining bool
	bestEpoch    int
	bestCost     float64
	curEpoch     int
	steps        int
	lastLoss     float64
	startTime    time.Time
	err          string
}

// Callbacks returns the trainer's container, for appending observers before
// Fit is called.
func (t *Trainer) Callbacks() *callback.Container { return t.callbacks }

// RequestStop latches the cooperative stop flag. Polled between epochs.
func (t *Trainer) RequestStop() {
	t.mu.Lock()
	t.stopTraining = true
	t.mu.Unlock()
}

// StopRequested reports whether a stop has been requested for this run.
func (t *Trainer) StopRequested() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stopTraining
}

// SetBest records the best epoch/value pair chosen by a stopping monitor.
func (t *Trainer) SetBest(epoch int, value float64) {
	t.mu.Lock()
	t.bestEpoch = epoch
	t.bestCost = value
	t.mu.Unlock()
}

// Best returns the recorded best epoch/value pair.
func (t *Trainer) Best() (int, float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bestEpoch, t.bestCost
}

// Params returns the live parameter handle of the network.
func (t *Trainer) Params() callback.ParamState {
	if t.net == nil {
		return nil
	}
	return t.net.StateDict()
}

// RestoreParams overwrites the network's live parameters.
func (t *Trainer) RestoreParams(state callback.ParamState) {
	if t.net == nil || state == nil {
		return
	}
	t.net.SetStateDict(state)
}

// MaxEpochs returns the configured epoch limit.
func (t *Trainer) MaxEpochs() int { return t.maxEpochs }

// MetricNames returns the names the network can report, empty without a network.
func (t *Trainer) MetricNames() []string {
	if t.net == nil {
		return nil
	}
	return t.net.MetricNames()
}
