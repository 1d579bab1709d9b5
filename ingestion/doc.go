// Package ingestion turns a raw delimited source file into the artifacts a
// training pipeline consumes.
//
// The Ingestor runs a single linear sequence:
//   - Verify the source exists and parse it into a core.Dataset
//   - Copy the full dataset to the raw artifact path
//   - Split it into train and test subsets with a seeded shuffle
//   - Write both subsets and return their paths
//
// Every failure aborts the run and is returned as an *Error whose Kind is one
// of ErrSourceNotFound, ErrParse, ErrSplit or ErrWrite. Files written before
// the failure are left in place.
package ingestion
