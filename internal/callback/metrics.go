package callback

import (
	"github.com/prometheus/client_golang/prometheus"

	"traind/pkg/types"
)

var (
	epochsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "traind",
			Subsystem: "training",
			Name:      "epochs_total",
			Help:      "Total number of finished training epochs",
		},
	)

	batchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "traind",
			Subsystem: "training",
			Name:      "batches_total",
			Help:      "Total number of finished training batches",
		},
	)

	samplesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "traind",
			Subsystem: "training",
			Name:      "samples_total",
			Help:      "Total number of training samples consumed",
		},
	)

	earlyStopsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "traind",
			Subsystem: "training",
			Name:      "early_stops_total",
			Help:      "Total number of runs ended by an early-stop request",
		},
	)

	epochLossGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "traind",
			Subsystem: "training",
			Name:      "epoch_loss",
			Help:      "Loss reported at the most recent epoch end",
		},
	)

	learningRateGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "traind",
			Subsystem: "training",
			Name:      "learning_rate",
			Help:      "Learning rate of the most recent batch",
		},
	)

	bestValueGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "traind",
			Subsystem: "training",
			Name:      "best_value",
			Help:      "Best monitored metric value at train end",
		},
	)

	batchCost = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "traind",
			Subsystem: "training",
			Name:      "batch_cost_seconds",
			Help:      "Duration of individual train steps in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(epochsTotal, batchesTotal, samplesTotal, earlyStopsTotal,
		epochLossGauge, learningRateGauge, bestValueGauge, batchCost)
}

// Metrics exports training progress as Prometheus series. Pure observer: it
// shares the dispatch contract but never mutates driver state.
type Metrics struct {
	Base
}

// NewMetrics constructs the Prometheus instrumentation callback. All
// instances feed the same package-level collectors.
func NewMetrics() *Metrics { return &Metrics{} }

func (m *Metrics) OnEpochEnd(_ int, logs *types.EpochEndLogs) error {
	epochsTotal.Inc()
	if loss, ok := logs.Metric("loss"); ok {
		epochLossGauge.Set(loss)
	}
	return nil
}

func (m *Metrics) OnBatchEnd(_ int, logs *types.BatchEndLogs) error {
	batchesTotal.Inc()
	samplesTotal.Add(float64(logs.BatchSize))
	learningRateGauge.Set(logs.LR)
	if logs.RunCost != nil {
		batchCost.Observe(*logs.RunCost)
	}
	return nil
}

func (m *Metrics) OnTrainEnd(*types.TrainEndLogs) error {
	t := m.Trainer()
	if t == nil {
		return nil
	}
	if t.StopRequested() {
		earlyStopsTotal.Inc()
	}
	_, best := t.Best()
	bestValueGauge.Set(best)
	return nil
}
