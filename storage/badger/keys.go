package badger

import (
	"fmt"

	"github.com/poiesic/dataprep/core"
	"github.com/poiesic/dataprep/storage"
)

// Key prefixes for different data types
const (
	runRecordPrefix = "runrec:"
	runIDSeq        = "runseq"
)

// makeRunKey generates a key for a run record by ID.
// Format: prefix + big-endian ID, so keys sort in insertion order.
func makeRunKey(id core.ID) []byte {
	prefixBytes := []byte(runRecordPrefix)
	buf := make([]byte, 0, len(prefixBytes)+8)
	buf = append(buf, prefixBytes...)
	return append(buf, storage.MarshalID(id)...)
}

// makeRunSeekKey generates a key sorting after every run record key.
// Used as the starting point for reverse iteration.
func makeRunSeekKey() []byte {
	return append([]byte(runRecordPrefix), 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
}

// parseRunKey extracts the run ID from a key built by makeRunKey.
func parseRunKey(key []byte) (core.ID, error) {
	if len(key) < len(runRecordPrefix) || string(key[:len(runRecordPrefix)]) != runRecordPrefix {
		return 0, fmt.Errorf("not a run key: %q", key)
	}
	return storage.UnmarshalID(key[len(runRecordPrefix):])
}
