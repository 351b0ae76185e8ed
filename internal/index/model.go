package index

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// IndexEntry points at the live record for a key: which segment version
// holds it, and the byte offset within that segment where the record's
// line begins. It is the only metadata the Index keeps per key - the
// key's value is never cached here, only its address on disk.
type IndexEntry struct {
	// Version identifies the segment file holding the record. Versions
	// are monotonically increasing; a greater version shadows a lesser
	// one for the same key.
	Version uint64

	// Offset is the byte position, within that segment, where the
	// record's line begins.
	Offset int64
}

// Index is the in-memory mapping from key to IndexEntry. It is the sole
// source of truth for which record is live; it is rebuilt on open by
// replaying segments in ascending version order, and mutated in place
// by the writer on every Set/Remove and by the compactor after a
// compaction pass.
type Index struct {
	dataDir string                // Filesystem directory containing segment files, for diagnostics.
	log     *zap.SugaredLogger    // Structured logging for index lifecycle events.
	entries map[string]IndexEntry // Core mapping from key to its disk location.
	mu      sync.RWMutex          // Protects concurrent access to entries.
	closed  atomic.Bool           // Indicates whether the index has been closed.
}

// Config encapsulates the configuration parameters required to initialize an Index.
type Config struct {
	DataDir string             // Specifies the filesystem directory containing segment files.
	Logger  *zap.SugaredLogger // Provides structured logging capabilities for Index operations.
}
