package trainer

import (
	"traind/internal/callback"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxEpochs    = 10
	defaultBatchSize    = 32
	defaultLearningRate = 0.01
)

// Config encapsulates all tunables for Trainer construction.
type Config struct {
	Network      Network
	Callbacks    []callback.Callback
	MaxEpochs    int
	BatchSize    int
	LearningRate float64
	// Seed for the per-epoch shuffle; 0 picks a time-based seed.
	Seed int64
	// Dataset id reported by Status; informational only.
	Dataset string
}

// New constructs a Trainer from Config.
func New(cfg Config) *Trainer {
	t := &Trainer{
		net:       cfg.Network,
		callbacks: callback.NewContainer(cfg.Callbacks...),
		maxEpochs: cfg.MaxEpochs,
		batchSize: cfg.BatchSize,
		lr:        cfg.LearningRate,
		seed:      cfg.Seed,
		datasetID: cfg.Dataset,
		state:     StateIdle,
	}
	// Apply defaults if unset
	if t.maxEpochs <= 0 {
		t.maxEpochs = defaultMaxEpochs
	}
	if t.batchSize <= 0 {
		t.batchSize = defaultBatchSize
	}
	if t.lr <= 0 {
		t.lr = defaultLearningRate
	}
	return t
}
