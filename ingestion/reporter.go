package ingestion

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/poiesic/dataprep/core"
)

// previewRows is how many rows the reporter prints after loading.
const previewRows = 5

// Reporter writes human-readable diagnostics about an ingestion run.
// It is separate from logging: output goes to a plain writer (stdout by default).
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a reporter writing to w. A nil writer discards output.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{writer: w}
}

// Shape prints the dataset dimensions as (rows, columns).
func (r *Reporter) Shape(ds *core.Dataset) {
	rows, cols := ds.Shape()
	fmt.Fprintf(r.writer, "Dataset Shape: (%d, %d)\n", rows, cols)
}

// Preview prints the header and first n rows as an aligned table,
// prefixed with a zero-based row number.
func (r *Reporter) Preview(ds *core.Dataset, n int) {
	head := ds.Head(n)
	fmt.Fprintf(r.writer, "First %d rows:\n", head.Len())

	tw := tabwriter.NewWriter(r.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(head.Header, "\t"))
	for i, row := range head.Rows {
		fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// ArtifactsDir notes the artifacts directory is ready.
func (r *Reporter) ArtifactsDir(dir string) {
	fmt.Fprintf(r.writer, "Artifacts Directory Created: %s\n", dir)
}

// Saved notes that an output file has been written.
func (r *Reporter) Saved(label, path string) {
	fmt.Fprintf(r.writer, "%s data saved at: %s\n", label, path)
}
