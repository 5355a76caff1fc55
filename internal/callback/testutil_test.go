package callback

import (
	"errors"
)

// fakeParams implements ParamState with a plain float64 vector.
type fakeParams struct {
	vals     []float64
	cloneErr error
}

func (p *fakeParams) Clone() (ParamState, error) {
	if p.cloneErr != nil {
		return nil, p.cloneErr
	}
	cp := make([]float64, len(p.vals))
	copy(cp, p.vals)
	return &fakeParams{vals: cp}, nil
}

// fakeTrainer implements Trainer for callback tests.
type fakeTrainer struct {
	stop        bool
	bestEpoch   int
	bestValue   float64
	params      *fakeParams
	restored    ParamState
	maxEpochs   int
	metricNames []string
}

func (f *fakeTrainer) RequestStop()        { f.stop = true }
func (f *fakeTrainer) StopRequested() bool { return f.stop }

func (f *fakeTrainer) SetBest(epoch int, value float64) {
	f.bestEpoch = epoch
	f.bestValue = value
}
func (f *fakeTrainer) Best() (int, float64) { return f.bestEpoch, f.bestValue }

func (f *fakeTrainer) Params() ParamState {
	if f.params == nil {
		return nil
	}
	return f.params
}

func (f *fakeTrainer) RestoreParams(state ParamState) { f.restored = state }

func (f *fakeTrainer) MaxEpochs() int        { return f.maxEpochs }
func (f *fakeTrainer) MetricNames() []string { return f.metricNames }

var errCloneBoom = errors.New("out of memory")
