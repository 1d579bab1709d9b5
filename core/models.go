package core

import (
	"encoding/hex"
	"slices"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored entities.
// Run IDs come from a database sequence.
type ID uint64

// Digest returns the hex encoded 256-bit BLAKE2b digest of data.
func Digest(data []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Dataset is an in-memory table loaded from delimited text.
// Header holds the column names; every row has len(Header) fields.
// A Dataset is treated as read-only once loaded: transformations
// such as Subset return new values and never touch the receiver.
type Dataset struct {
	Header []string
	Rows   [][]string
}

// Shape returns the number of rows and columns.
func (d *Dataset) Shape() (rows, cols int) {
	return len(d.Rows), len(d.Header)
}

// Len returns the number of data rows (the header is not counted).
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Head returns a dataset with at most the first n rows.
func (d *Dataset) Head(n int) *Dataset {
	if n < 0 {
		n = 0
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return &Dataset{
		Header: slices.Clone(d.Header),
		Rows:   d.Rows[:n:n],
	}
}

// Subset returns a dataset holding the rows at the given indices, in the
// order the indices are listed. Row slices are shared with the receiver.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	rows := make([][]string, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(d.Rows) {
			return nil, ErrIndexOutOfRange
		}
		rows[i] = d.Rows[idx]
	}
	return &Dataset{
		Header: slices.Clone(d.Header),
		Rows:   rows,
	}, nil
}

// Run records the outcome of a single completed ingestion.
type Run struct {
	Id           ID        `json:"id"`
	Source       string    `json:"source"`
	SourceDigest string    `json:"source_digest"` // BLAKE2b-256 of the source bytes
	RawPath      string    `json:"raw_path"`
	TrainPath    string    `json:"train_path"`
	TestPath     string    `json:"test_path"`
	Rows         int       `json:"rows"`
	Columns      int       `json:"columns"`
	TrainRows    int       `json:"train_rows"`
	TestRows     int       `json:"test_rows"`
	Seed         uint64    `json:"seed"`
	TestFraction float64   `json:"test_fraction"`
	Shuffled     bool      `json:"shuffled"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	InsertedAt   time.Time `json:"inserted_at"` // When the record was inserted into the run log
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
