package types

import "time"

// TrainBeginLogs is the record passed to OnTrainBegin hooks.
type TrainBeginLogs struct {
	// Wall-clock time at which the fit loop started.
	StartTime time.Time `json:"start_time"`
}

// TrainEndLogs is the record passed to OnTrainEnd hooks. It carries no
// required fields; callbacks read their own accumulated state instead.
type TrainEndLogs struct{}

// EpochBeginLogs is the record passed to OnEpochBegin hooks.
type EpochBeginLogs struct{}

// EpochEndLogs is the record passed to OnEpochEnd hooks. Metrics holds the
// values computed for the epoch keyed by metric name (e.g. "loss"). Any
// metric may be absent on any epoch and consumers must tolerate that.
type EpochEndLogs struct {
	Metrics map[string]float64 `json:"metrics"`
}

// Metric returns the named metric value and whether it was reported this
// epoch. Safe to call with a nil Metrics map.
func (l *EpochEndLogs) Metric(name string) (float64, bool) {
	v, ok := l.Metrics[name]
	return v, ok
}

// BatchBeginLogs is the record passed to OnBatchBegin hooks.
type BatchBeginLogs struct{}

// BatchEndLogs is the record passed to OnBatchEnd hooks. The plain fields are
// always set by the driver; pointer fields are optional telemetry that may be
// absent when the corresponding collaborator did not report.
type BatchEndLogs struct {
	BatchSize int     `json:"batch_size"`
	Loss      float64 `json:"loss"`
	Epoch     int     `json:"epoch"`
	MaxEpochs int     `json:"max_epochs"`
	Steps     int     `json:"steps"`
	LR        float64 `json:"lr"`

	// Seconds spent assembling the batch, when measured.
	ReaderCost *float64 `json:"train_reader_cost,omitempty"`
	// Seconds spent inside the train step, when measured.
	RunCost *float64 `json:"train_run_cost,omitempty"`
	// Device memory counters in bytes, when a device collaborator reports them.
	MaxMemReserved  *uint64 `json:"max_mem_reserved,omitempty"`
	MaxMemAllocated *uint64 `json:"max_mem_allocated,omitempty"`
}
