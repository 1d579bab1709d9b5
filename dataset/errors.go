package dataset

import "errors"

var (
	// ErrNoHeader is returned when the input contains no header row.
	ErrNoHeader = errors.New("no header row")

	// ErrNilDataset is returned when writing a nil dataset.
	ErrNilDataset = errors.New("dataset is nil")
)
