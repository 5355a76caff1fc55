package types

// Dataset represents a discoverable CSV dataset on disk.
type Dataset struct {
	// Stable identifier for the dataset (the filename).
	// example: housing.csv
	ID string `json:"id" example:"housing.csv"`
	// Human-friendly name.
	// example: housing.csv
	Name string `json:"name" example:"housing.csv"`
	// Absolute path to the dataset file on disk.
	// example: /home/user/datasets/housing.csv
	Path string `json:"path" example:"/home/user/datasets/housing.csv"`
}
