package bitcask

import (
	"context"
	"os"

	"github.com/ignitedb/ignite/internal/index"
	"github.com/ignitedb/ignite/pkg/errors"
)

// Handle is the per-caller view of a Store: cheap to duplicate, it
// shares the Store's writer and Index but owns a private cache of
// read-only file handles to sealed segments (spec §4.4, §9). A Handle
// satisfies internal/engine.Engine and internal/engine.Duplicable.
type Handle struct {
	store   *Store
	readers map[uint64]*os.File
}

// NewHandle returns the first Handle onto store.
func NewHandle(store *Store) *Handle {
	return &Handle{store: store, readers: make(map[uint64]*os.File)}
}

// Duplicate returns a new Handle sharing this Handle's Store but with
// its own empty reader cache.
func (h *Handle) Duplicate() *Handle {
	return NewHandle(h.store)
}

// Set appends a Set record to the active segment and updates the
// Index, rotating (and possibly compacting) the active segment if it
// has crossed its byte threshold.
func (h *Handle) Set(ctx context.Context, key, value string) error {
	s := h.store
	if s.closed.Load() {
		return ErrStoreClosed
	}

	rec := NewSetRecord(key, value)
	data, err := rec.encode()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offset := s.activeBytes
	n, err := s.activeFile.Write(data)
	if err != nil {
		return errors.NewIOError(err, "failed to append set record").
			WithSegmentID(s.activeVersion.Load()).
			WithOffset(offset)
	}
	s.activeBytes += int64(n)

	version := s.activeVersion.Load()
	s.index.Put(key, index.IndexEntry{Version: version, Offset: offset})

	s.metrics.sets.Inc()
	s.metrics.activeBytes.Set(float64(s.activeBytes))
	s.metrics.liveKeys.Set(float64(s.index.Len()))

	if s.activeBytes >= int64(s.activeThreshold) {
		if err := s.rotate(); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes key from the Index after durably appending a Remove
// record, or fails with ErrorCodeKeyNotFound if key is already absent.
func (h *Handle) Remove(ctx context.Context, key string) error {
	s := h.store
	if s.closed.Load() {
		return ErrStoreClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index.Get(key); !ok {
		return errors.ErrKeyNotFound
	}

	rec := NewRemoveRecord(key)
	data, err := rec.encode()
	if err != nil {
		return err
	}

	offset := s.activeBytes
	n, err := s.activeFile.Write(data)
	if err != nil {
		return errors.NewIOError(err, "failed to append remove record").
			WithSegmentID(s.activeVersion.Load()).
			WithOffset(offset)
	}
	s.activeBytes += int64(n)
	s.index.Delete(key)

	s.metrics.removes.Inc()
	s.metrics.activeBytes.Set(float64(s.activeBytes))
	s.metrics.liveKeys.Set(float64(s.index.Len()))

	if s.activeBytes >= int64(s.activeThreshold) {
		if err := s.rotate(); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value for key and true, or "" and false if key is
// absent from the Index. Absence is never an error (spec §4.1).
//
// A read against an entry.Version that a concurrent compaction has just
// superseded can race: the index lookup above happens before compaction
// publishes minLiveVersion and removes the old segment, so the file can
// vanish out from under fileFor/readRecordAt. That is narrowed, not
// closed, by retrying once against a freshly re-read index entry when
// the read fails and minLiveVersion has since moved past the version
// this Get was reading
// - the key's current record is always reachable through the refreshed
// entry, since compact() only ever rewrites live keys forward, never
// drops them (spec §5/§9, best-effort per §9).
func (h *Handle) Get(ctx context.Context, key string) (string, bool, error) {
	s := h.store
	if s.closed.Load() {
		return "", false, ErrStoreClosed
	}
	s.metrics.gets.Inc()

	entry, ok := s.index.Get(key)
	if !ok {
		return "", false, nil
	}

	h.pruneStale(s.minLiveVersion.Load())

	value, found, err := h.readEntry(entry)
	if err != nil && entry.Version < s.minLiveVersion.Load() {
		if retryEntry, ok := s.index.Get(key); ok {
			h.pruneStale(s.minLiveVersion.Load())
			return h.readEntry(retryEntry)
		}
		return "", false, nil
	}
	return value, found, err
}

// readEntry opens (or reuses) the segment for entry.Version and decodes
// the record at entry.Offset.
func (h *Handle) readEntry(entry index.IndexEntry) (string, bool, error) {
	file, err := h.fileFor(entry.Version)
	if err != nil {
		return "", false, err
	}

	rec, err := readRecordAt(h.store.segmentDir, file, entry.Version, entry.Offset)
	if err != nil {
		return "", false, err
	}
	if rec.Set == nil {
		return "", false, errors.NewCorruptionError(nil, "index entry does not point at a Set record").
			WithSegmentID(entry.Version).
			WithOffset(entry.Offset)
	}

	return rec.Set.Value, true, nil
}

// Close releases this handle's private reader cache. It does not close
// the underlying Store - callers share one Store across many Handles
// and close it exactly once.
func (h *Handle) Close() error {
	for version, file := range h.readers {
		file.Close()
		delete(h.readers, version)
	}
	return nil
}

// fileFor returns a read handle for version, opening and caching one if
// necessary.
func (h *Handle) fileFor(version uint64) (*os.File, error) {
	if file, ok := h.readers[version]; ok {
		return file, nil
	}

	file, err := openSegmentForRead(h.store.segmentDir, version)
	if err != nil {
		return nil, err
	}
	h.readers[version] = file
	return file, nil
}

// pruneStale closes and evicts cached handles to segment versions
// strictly below minLiveVersion, the version published by the most
// recent compaction (spec §4.4 step 4, §4.6).
func (h *Handle) pruneStale(minLiveVersion uint64) {
	for version, file := range h.readers {
		if version < minLiveVersion {
			file.Close()
			delete(h.readers, version)
		}
	}
}
