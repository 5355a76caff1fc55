package callback

import (
	"fmt"
	"sort"
	"time"

	"traind/pkg/types"
)

// History records per-epoch loss/lr series and prints progress lines. It is
// purely presentational: the only arithmetic is the running weighted-average
// loss across the batches of the current epoch.
type History struct {
	Base

	verbose int

	startTime   time.Time
	epochLoss   float64
	samplesSeen float64
	lastLR      float64

	lossSeries []float64
	lrSeries   []float64
}

// NewHistory constructs a History that prints every verbose batches
// (verbose <= 0 means every batch).
func NewHistory(verbose int) *History {
	if verbose <= 0 {
		verbose = 1
	}
	return &History{verbose: verbose}
}

func (h *History) OnTrainBegin(logs *types.TrainBeginLogs) error {
	h.startTime = logs.StartTime
	if h.startTime.IsZero() {
		h.startTime = time.Now()
	}
	h.lossSeries = nil
	h.lrSeries = nil
	h.epochLoss = 0
	return nil
}

func (h *History) OnEpochBegin(int, *types.EpochBeginLogs) error {
	h.epochLoss = 0
	h.samplesSeen = 0
	return nil
}

func (h *History) OnBatchEnd(batch int, logs *types.BatchEndLogs) error {
	// Running weighted average of the epoch loss. A record with no samples
	// (defaulted logs) contributes nothing rather than dividing by zero.
	n := float64(logs.BatchSize)
	if h.samplesSeen+n > 0 {
		h.epochLoss = (h.samplesSeen*h.epochLoss + n*logs.Loss) / (h.samplesSeen + n)
		h.samplesSeen += n
	}
	h.lastLR = logs.LR

	if logs.Steps%h.verbose != 0 {
		return nil
	}

	msg := fmt.Sprintf("[Train] [Epoch %d/%d], Step: %d, lr: %.6f, loss: %.6f, samples: %d",
		logs.Epoch, logs.MaxEpochs, logs.Steps, logs.LR, logs.Loss, logs.BatchSize)
	if logs.ReaderCost != nil {
		msg += fmt.Sprintf(", reader_cost: %.6f sec", *logs.ReaderCost)
	}
	if logs.RunCost != nil && *logs.RunCost > 0 {
		ips := float64(logs.BatchSize) / *logs.RunCost
		msg += fmt.Sprintf(", batch_cost: %.6f sec, ips: %.6f rows/sec", *logs.RunCost, ips)
	}
	if logs.MaxMemReserved != nil {
		msg += fmt.Sprintf(", max_mem_reserved: %s", formatMem(*logs.MaxMemReserved))
	}
	if logs.MaxMemAllocated != nil {
		msg += fmt.Sprintf(", max_mem_allocated: %s", formatMem(*logs.MaxMemAllocated))
	}
	elapsed := time.Since(h.startTime).Truncate(time.Second)
	msg += fmt.Sprintf(" | %s", elapsed)
	logInfo("%s", msg)
	return nil
}

func (h *History) OnEpochEnd(epoch int, logs *types.EpochEndLogs) error {
	h.lossSeries = append(h.lossSeries, h.epochLoss)
	h.lrSeries = append(h.lrSeries, h.lastLR)

	msg := fmt.Sprintf("[Train] [Epoch %03d], loss: %.6f", epoch, h.epochLoss)
	names := make([]string, 0, len(logs.Metrics))
	for name := range logs.Metrics {
		if name != "loss" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		msg += fmt.Sprintf(", %s: %.6f", name, logs.Metrics[name])
	}
	logInfo("%s", msg)
	return nil
}

// EpochLoss returns the running weighted-average loss of the current epoch.
func (h *History) EpochLoss() float64 { return h.epochLoss }

// LossSeries returns the per-epoch average losses recorded so far.
func (h *History) LossSeries() []float64 { return h.lossSeries }

// LRSeries returns the last learning rate seen in each finished epoch.
func (h *History) LRSeries() []float64 { return h.lrSeries }

func formatMem(b uint64) string {
	const mb = 1 << 20
	if b < mb {
		return fmt.Sprintf("%d KB", b>>10)
	}
	return fmt.Sprintf("%d MB", b>>20)
}
