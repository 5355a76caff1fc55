package types

// DatasetsResponse wraps the list of datasets returned by GET /datasets.
type DatasetsResponse struct {
	// List of discoverable datasets.
	Datasets []Dataset `json:"datasets"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: failed to encode response
	Error string `json:"error" example:"failed to encode response"`
	// HTTP status code.
	// example: 500
	Code int `json:"code" example:"500"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Current lifecycle state of the trainer (idle, training, stopped, done, error).
	// example: training
	State string `json:"state" example:"training"`
	// Dataset the trainer is fitting against.
	// example: housing.csv
	Dataset string `json:"dataset,omitempty" example:"housing.csv"`
	// Zero-based index of the epoch currently running (or last finished).
	// example: 7
	Epoch int `json:"epoch" example:"7"`
	// Configured maximum number of epochs.
	// example: 100
	MaxEpochs int `json:"max_epochs" example:"100"`
	// Total train steps executed so far.
	// example: 2240
	Steps int `json:"steps" example:"2240"`
	// Loss of the most recent batch.
	// example: 0.042
	LastLoss float64 `json:"last_loss" example:"0.042"`
	// Epoch at which the best monitored value was observed.
	// example: 5
	BestEpoch int `json:"best_epoch" example:"5"`
	// Best monitored value observed so far.
	// example: 0.0391
	BestValue float64 `json:"best_value" example:"0.0391"`
	// Whether an early-stop request latched for this run.
	// example: false
	StopRequested bool `json:"stop_requested" example:"false"`
	// Unix seconds at which the current fit started (0 when idle).
	// example: 1700000000
	StartedUnix int64 `json:"started_unix,omitempty" example:"1700000000"`
	// Optional top-level error message.
	Error string `json:"error,omitempty"`
}
