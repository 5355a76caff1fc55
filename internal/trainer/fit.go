package trainer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"traind/pkg/types"
)

// Fit runs the training loop over the dataset. Lifecycle events are
// dispatched synchronously to the callback container; the first callback
// error aborts the run. The stop flag and ctx cancellation are polled
// between epochs only, and OnTrainEnd is always dispatched for a loop that
// started, so stopping monitors get to restore their snapshot.
func (t *Trainer) Fit(ctx context.Context, features [][]float64, targets []float64) error {
	if t.net == nil {
		return noNetworkError{}
	}
	if len(features) == 0 {
		return emptyDatasetError{}
	}
	if len(features) != len(targets) {
		return fmt.Errorf("dataset mismatch: %d feature rows vs %d targets", len(features), len(targets))
	}

	t.mu.Lock()
	if t.state == StateTraining {
		t.mu.Unlock()
		return fitInProgressError{}
	}
	t.state = StateTraining
	t.stopTraining = false
	t.bestEpoch = 0
	t.bestCost = 0
	t.curEpoch = 0
	t.steps = 0
	t.lastLoss = 0
	t.err = ""
	t.startTime = time.Now()
	start := t.startTime
	t.mu.Unlock()

	// Bind the driver before any hook fires.
	t.callbacks.SetTrainer(t)

	if err := t.callbacks.OnTrainBegin(&types.TrainBeginLogs{StartTime: start}); err != nil {
		t.fail(err)
		return err
	}

	seed := t.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	n := len(features)
	stopped := false
	var ctxErr error

	for epoch := 0; epoch < t.maxEpochs; epoch++ {
		t.mu.Lock()
		t.curEpoch = epoch
		t.mu.Unlock()

		if err := t.callbacks.OnEpochBegin(epoch, nil); err != nil {
			t.fail(err)
			return err
		}

		perm := rng.Perm(n)
		batch := 0
		for lo := 0; lo < n; lo += t.batchSize {
			hi := lo + t.batchSize
			if hi > n {
				hi = n
			}
			if err := t.callbacks.OnBatchBegin(batch, nil); err != nil {
				t.fail(err)
				return err
			}

			readerStart := time.Now()
			bx := make([][]float64, 0, hi-lo)
			by := make([]float64, 0, hi-lo)
			for _, idx := range perm[lo:hi] {
				bx = append(bx, features[idx])
				by = append(by, targets[idx])
			}
			readerCost := time.Since(readerStart).Seconds()

			runStart := time.Now()
			loss, err := t.net.TrainBatch(bx, by, t.lr)
			if err != nil {
				err = fmt.Errorf("train batch %d of epoch %d: %w", batch, epoch, err)
				t.fail(err)
				return err
			}
			runCost := time.Since(runStart).Seconds()

			t.mu.Lock()
			t.steps++
			t.lastLoss = loss
			steps := t.steps
			t.mu.Unlock()

			logs := &types.BatchEndLogs{
				BatchSize:  hi - lo,
				Loss:       loss,
				Epoch:      epoch,
				MaxEpochs:  t.maxEpochs,
				Steps:      steps,
				LR:         t.lr,
				ReaderCost: &readerCost,
				RunCost:    &runCost,
			}
			if err := t.callbacks.OnBatchEnd(batch, logs); err != nil {
				t.fail(err)
				return err
			}
			batch++
		}

		metrics := t.net.Metrics(features, targets)
		if err := t.callbacks.OnEpochEnd(epoch, &types.EpochEndLogs{Metrics: metrics}); err != nil {
			t.fail(err)
			return err
		}

		// Cooperative cancellation: stop flag and ctx checked between epochs,
		// never mid-epoch.
		if t.StopRequested() {
			stopped = true
			break
		}
		if err := ctx.Err(); err != nil {
			ctxErr = err
			stopped = true
			break
		}
	}

	if err := t.callbacks.OnTrainEnd(&types.TrainEndLogs{}); err != nil {
		t.fail(err)
		return err
	}

	t.mu.Lock()
	if stopped {
		t.state = StateStopped
	} else {
		t.state = StateDone
	}
	t.mu.Unlock()
	return ctxErr
}

func (t *Trainer) fail(err error) {
	t.mu.Lock()
	t.state = StateError
	t.err = err.Error()
	t.mu.Unlock()
}
