package trainer

// noNetworkError signals Fit was called without a Network collaborator.
type noNetworkError struct{}

func (noNetworkError) Error() string { return "no network configured" }

// IsNoNetwork reports whether err indicates a missing network.
func IsNoNetwork(err error) bool {
	_, ok := err.(noNetworkError)
	return ok
}

// emptyDatasetError signals Fit was called with no rows.
type emptyDatasetError struct{}

func (emptyDatasetError) Error() string { return "empty dataset" }

// IsEmptyDataset reports whether err indicates an empty dataset.
func IsEmptyDataset(err error) bool {
	_, ok := err.(emptyDatasetError)
	return ok
}

// fitInProgressError signals a second concurrent Fit call.
type fitInProgressError struct{}

func (fitInProgressError) Error() string { return "fit already in progress" }

// IsFitInProgress reports whether err indicates an overlapping Fit call.
func IsFitInProgress(err error) bool {
	_, ok := err.(fitInProgressError)
	return ok
}
