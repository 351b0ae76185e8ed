// Package index provides the in-memory hash table implementation for the
// ignite key-value store. This package embodies the core Bitcask
// architectural principle: keep all keys in memory with minimal metadata
// while the actual values stay on disk.
//
// The Index never stores a value, only an IndexEntry (segment version +
// byte offset). Every mutation goes through the single writer that owns
// the active segment; many readers consult the Index concurrently under
// its RWMutex.
package index

import (
	"context"
	stdErrors "errors"

	"github.com/ignitedb/ignite/pkg/errors"
)

var (
	ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")
)

// New creates and initializes a new Index instance configured according to the
// provided parameters. The returned Index is immediately ready for concurrent
// use and includes optimizations like pre-allocated map capacity.
func New(ctx context.Context, config *Config) (*Index, error) {
	if config == nil || config.DataDir == "" || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "Index configuration is required",
		).WithField("config").WithRule("required").WithProvided(config)
	}

	return &Index{
		log:     config.Logger,
		dataDir: config.DataDir,
		entries: make(map[string]IndexEntry, 2046),
	}, nil
}

// Get returns the IndexEntry for key and whether it is present. The
// returned bool mirrors a Go map's comma-ok idiom rather than an error,
// since key absence is an ordinary, expected outcome for a reader.
func (idx *Index) Get(key string) (IndexEntry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	entry, ok := idx.entries[key]
	return entry, ok
}

// Put records (or overwrites) the IndexEntry for key. Called by the
// writer after a Set record has been durably appended, and by the
// compactor while rewriting entries into their new segment.
func (idx *Index) Put(key string, entry IndexEntry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[key] = entry
}

// Delete removes key from the Index and reports whether it was present.
// Called by the writer after a Remove record has been durably appended.
func (idx *Index) Delete(key string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.entries[key]; !ok {
		return false
	}
	delete(idx.entries, key)
	return true
}

// Len returns the number of live keys currently tracked.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Snapshot returns a point-in-time copy of every key and its IndexEntry.
// Used by the compactor to decide which sealed-segment records are still
// live without holding the Index lock for the whole compaction pass.
func (idx *Index) Snapshot() map[string]IndexEntry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	snapshot := make(map[string]IndexEntry, len(idx.entries))
	for k, v := range idx.entries {
		snapshot[k] = v
	}
	return snapshot
}

// Close gracefully shuts down the Index, cleaning up resources and ensuring
// that the index cannot be used after closure.
func (idx *Index) Close() error {
	// Use atomic compare-and-swap to safely check and update the closed state.
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.log.Infow("Closing index system")

	idx.mu.Lock()
	defer idx.mu.Unlock()

	clear(idx.entries)
	idx.entries = nil

	idx.log.Infow("Index system closed successfully")
	return nil
}
