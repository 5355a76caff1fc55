// Package linreg provides the reference training collaborator: a linear
// model fitted by mini-batch SGD on squared error. It exists so the loop
// instrumentation has a real optimizer to drive; anything implementing
// trainer.Network can replace it.
package linreg

import (
	"fmt"
	"math"

	"traind/internal/callback"
)

// Weights is the flat parameter vector: one weight per feature plus a
// trailing bias term. It is the live parameter handle the trainer exposes.
type Weights []float64

// Clone returns a deep copy. Never fails for an in-memory vector.
func (w Weights) Clone() (callback.ParamState, error) {
	cp := make(Weights, len(w))
	copy(cp, w)
	return cp, nil
}

// Model is a linear regressor y = w·x + b.
type Model struct {
	w Weights
}

// New constructs a model for dim input features, parameters zeroed.
func New(dim int) *Model {
	return &Model{w: make(Weights, dim+1)}
}

// Predict returns the model output for one feature row.
func (m *Model) Predict(x []float64) float64 {
	out := m.w[len(m.w)-1] // bias
	for i, v := range x {
		out += m.w[i] * v
	}
	return out
}

// TrainBatch runs one SGD step over the batch and returns the mean squared
// error observed before the update.
func (m *Model) TrainBatch(features [][]float64, targets []float64, lr float64) (float64, error) {
	if len(features) == 0 {
		return 0, fmt.Errorf("empty batch")
	}
	if len(features) != len(targets) {
		return 0, fmt.Errorf("batch size mismatch: %d features vs %d targets", len(features), len(targets))
	}
	dim := len(m.w) - 1
	grad := make([]float64, len(m.w))
	var loss float64
	for i, x := range features {
		if len(x) != dim {
			return 0, fmt.Errorf("row %d has %d features, model expects %d", i, len(x), dim)
		}
		err := m.Predict(x) - targets[i]
		loss += err * err
		for j, v := range x {
			grad[j] += err * v
		}
		grad[dim] += err
	}
	n := float64(len(features))
	for j := range m.w {
		m.w[j] -= lr * 2 * grad[j] / n
	}
	return loss / n, nil
}

// Metrics evaluates the full dataset and reports loss (MSE) and mae.
func (m *Model) Metrics(features [][]float64, targets []float64) map[string]float64 {
	if len(features) == 0 {
		return map[string]float64{}
	}
	var mse, mae float64
	for i, x := range features {
		err := m.Predict(x) - targets[i]
		mse += err * err
		mae += math.Abs(err)
	}
	n := float64(len(features))
	return map[string]float64{
		"loss": mse / n,
		"mae":  mae / n,
	}
}

// MetricNames lists the metrics Metrics reports.
func (m *Model) MetricNames() []string { return []string{"loss", "mae"} }

// StateDict returns the live parameter handle.
func (m *Model) StateDict() callback.ParamState { return m.w }

// SetStateDict overwrites the live parameters with the given state. States
// from a different model shape are ignored rather than corrupting the vector.
func (m *Model) SetStateDict(state callback.ParamState) {
	w, ok := state.(Weights)
	if !ok || len(w) != len(m.w) {
		return
	}
	copy(m.w, w)
}
