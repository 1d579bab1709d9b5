// Package dataset reads and writes delimited text tables.
//
// Files are expected to carry a header row that names the columns. Fields are
// kept as the exact strings found in the source, and no types are inferred,
// so writing a dataset back out reproduces its values verbatim. Output files
// never include a row-index column.
//
// WriteFile replaces its target atomically: data goes to a temporary file in
// the same directory, which is synced and then renamed over the destination.
package dataset
