// Package trainer implements the training driver: it owns the callback
// container, runs the epoch/batch loop over a dataset, dispatches lifecycle
// events, and exposes the mutable state callbacks act on (stop flag, best
// epoch/value, live parameters). The numeric work is delegated to a Network
// collaborator.
package trainer
