package callback

import (
	"math"
	"testing"
	"time"

	"traind/pkg/types"
)

func TestHistoryWeightedAverageLoss(t *testing.T) {
	h := NewHistory(1)
	if err := h.OnTrainBegin(&types.TrainBeginLogs{StartTime: time.Now()}); err != nil {
		t.Fatalf("OnTrainBegin: %v", err)
	}
	if err := h.OnEpochBegin(0, nil); err != nil {
		t.Fatalf("OnEpochBegin: %v", err)
	}

	batches := []struct {
		size int
		loss float64
	}{
		{10, 2.0},
		{30, 1.0},
		{20, 4.0},
	}
	steps := 0
	for i, b := range batches {
		steps++
		err := h.OnBatchEnd(i, &types.BatchEndLogs{
			BatchSize: b.size, Loss: b.loss, Epoch: 0, MaxEpochs: 1, Steps: steps, LR: 0.01,
		})
		if err != nil {
			t.Fatalf("batch %d: %v", i, err)
		}
	}

	// (10*2 + 30*1 + 20*4) / 60
	want := (10*2.0 + 30*1.0 + 20*4.0) / 60.0
	if math.Abs(h.EpochLoss()-want) > 1e-12 {
		t.Fatalf("epoch loss %v, want %v", h.EpochLoss(), want)
	}

	if err := h.OnEpochEnd(0, &types.EpochEndLogs{Metrics: map[string]float64{"loss": want}}); err != nil {
		t.Fatalf("OnEpochEnd: %v", err)
	}
	if got := h.LossSeries(); len(got) != 1 || math.Abs(got[0]-want) > 1e-12 {
		t.Fatalf("loss series %v", got)
	}
	if got := h.LRSeries(); len(got) != 1 || got[0] != 0.01 {
		t.Fatalf("lr series %v", got)
	}
}

func TestHistoryResetsPerEpoch(t *testing.T) {
	h := NewHistory(1)
	if err := h.OnTrainBegin(&types.TrainBeginLogs{}); err != nil {
		t.Fatalf("OnTrainBegin: %v", err)
	}

	for epoch := 0; epoch < 2; epoch++ {
		if err := h.OnEpochBegin(epoch, nil); err != nil {
			t.Fatalf("OnEpochBegin: %v", err)
		}
		loss := float64(epoch + 1)
		err := h.OnBatchEnd(0, &types.BatchEndLogs{BatchSize: 8, Loss: loss, Steps: epoch + 1, MaxEpochs: 2})
		if err != nil {
			t.Fatalf("batch: %v", err)
		}
		if h.EpochLoss() != loss {
			t.Fatalf("epoch %d loss %v, want %v (stale state carried over)", epoch, h.EpochLoss(), loss)
		}
		if err := h.OnEpochEnd(epoch, nil); err != nil {
			t.Fatalf("OnEpochEnd: %v", err)
		}
	}
	if got := h.LossSeries(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("loss series %v", got)
	}
}

func TestHistoryOptionalTelemetry(t *testing.T) {
	h := NewHistory(1)
	if err := h.OnTrainBegin(&types.TrainBeginLogs{}); err != nil {
		t.Fatalf("OnTrainBegin: %v", err)
	}
	if err := h.OnEpochBegin(0, nil); err != nil {
		t.Fatalf("OnEpochBegin: %v", err)
	}
	rc, runc := 0.002, 0.013
	mem := uint64(12 << 20)
	err := h.OnBatchEnd(0, &types.BatchEndLogs{
		BatchSize: 16, Loss: 0.5, Steps: 1, MaxEpochs: 1, LR: 0.1,
		ReaderCost: &rc, RunCost: &runc, MaxMemReserved: &mem,
	})
	if err != nil {
		t.Fatalf("batch with telemetry: %v", err)
	}
	// Absent telemetry must be tolerated on the next batch.
	if err := h.OnBatchEnd(1, &types.BatchEndLogs{BatchSize: 16, Loss: 0.4, Steps: 2, MaxEpochs: 1}); err != nil {
		t.Fatalf("batch without telemetry: %v", err)
	}
}

func TestHistoryZeroSizeBatchKeepsLossFinite(t *testing.T) {
	h := NewHistory(1)
	if err := h.OnTrainBegin(&types.TrainBeginLogs{}); err != nil {
		t.Fatalf("OnTrainBegin: %v", err)
	}
	if err := h.OnEpochBegin(0, nil); err != nil {
		t.Fatalf("OnEpochBegin: %v", err)
	}
	// A defaulted record carries no samples; it must not poison the average.
	if err := h.OnBatchEnd(0, &types.BatchEndLogs{Steps: 1, MaxEpochs: 1}); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	if math.IsNaN(h.EpochLoss()) {
		t.Fatal("epoch loss became NaN after a zero-sample record")
	}
	if err := h.OnBatchEnd(1, &types.BatchEndLogs{BatchSize: 8, Loss: 0.5, Steps: 2, MaxEpochs: 1}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if h.EpochLoss() != 0.5 {
		t.Fatalf("epoch loss %v, want 0.5", h.EpochLoss())
	}
}

func TestFormatMem(t *testing.T) {
	if got := formatMem(512 << 10); got != "512 KB" {
		t.Fatalf("got %q", got)
	}
	if got := formatMem(3 << 20); got != "3 MB" {
		t.Fatalf("got %q", got)
	}
}
