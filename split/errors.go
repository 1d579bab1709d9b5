package split

import "errors"

var (
	// ErrInvalidFraction is returned when the test fraction is not strictly between 0 and 1.
	ErrInvalidFraction = errors.New("test fraction must be between 0 and 1 exclusive")

	// ErrEmptySubset is returned when a split would leave the train or test subset empty.
	ErrEmptySubset = errors.New("split leaves an empty subset")
)
