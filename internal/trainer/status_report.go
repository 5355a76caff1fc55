package trainer

import (
	"traind/pkg/types"
)

// Status builds a detailed status response for /status.
func (t *Trainer) Status() types.StatusResponse {
	t.mu.RLock()
	defer t.mu.RUnlock()
	resp := types.StatusResponse{
		State:         string(t.state),
		Dataset:       t.datasetID,
		Epoch:         t.curEpoch,
		MaxEpochs:     t.maxEpochs,
		Steps:         t.steps,
		LastLoss:      t.lastLoss,
		BestEpoch:     t.bestEpoch,
		BestValue:     t.bestCost,
		StopRequested: t.stopTraining,
		Error:         t.err,
	}
	if !t.startTime.IsZero() {
		resp.StartedUnix = t.startTime.Unix()
	}
	return resp
}

// Ready reports whether the trainer can serve status, i.e. it exists and is
// not in an error state.
func (t *Trainer) Ready() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state != StateError
}
