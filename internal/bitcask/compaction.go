package bitcask

import (
	"os"

	"github.com/ignitedb/ignite/internal/index"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/seginfo"
)

// rotate seals the active segment and opens a new one, invoking
// compaction first if sealed-segment bytes have crossed the compaction
// threshold (spec §4.2, §4.5). Called with s.mu held.
func (s *Store) rotate() error {
	sealedVersion := s.activeVersion.Load()

	if err := s.activeFile.Sync(); err != nil {
		return errors.ClassifySyncError(err, seginfo.GenerateName(sealedVersion), s.segmentDir, s.activeBytes)
	}
	if err := s.activeFile.Close(); err != nil {
		return errors.NewIOError(err, "failed to close active segment before rotation").WithSegmentID(sealedVersion)
	}

	s.oldLogBytes += s.activeBytes
	s.metrics.rotations.Inc()
	s.metrics.oldLogBytes.Set(float64(s.oldLogBytes))

	if s.oldLogBytes >= int64(s.compactThreshold) {
		return s.compact()
	}

	nextVersion := sealedVersion + 1
	file, _, err := openSegmentForAppend(s.segmentDir, nextVersion)
	if err != nil {
		return err
	}

	s.activeVersion.Store(nextVersion)
	s.activeFile = file
	s.activeBytes = 0
	return nil
}

// compact rewrites every key the Index still considers live into a
// fresh segment, deletes the superseded sealed segments, and opens a
// new empty active segment for subsequent writes (spec §4.5 steps
// 1-10). Called with s.mu held; the Index is only ever mutated by this
// writer, so Snapshot reflects exactly the keys compaction must carry
// forward - no separate replay-to-a-dict pass is needed to rediscover
// what is live.
func (s *Store) compact() error {
	sealedVersions, err := seginfo.ListVersions(s.segmentDir)
	if err != nil {
		return errors.NewLogLoadError(err, "failed to enumerate sealed segments for compaction").WithPath(s.segmentDir)
	}

	compactedVersion := s.activeVersion.Load() + 1
	s.activeVersion.Store(compactedVersion)

	compactedFile, _, err := openSegmentForAppend(s.segmentDir, compactedVersion)
	if err != nil {
		return err
	}

	readers := make(map[uint64]*os.File)
	defer func() {
		for _, f := range readers {
			f.Close()
		}
	}()

	live := s.index.Snapshot()
	var offset int64
	for key, entry := range live {
		file, ok := readers[entry.Version]
		if !ok {
			file, err = openSegmentForRead(s.segmentDir, entry.Version)
			if err != nil {
				compactedFile.Close()
				return err
			}
			readers[entry.Version] = file
		}

		rec, err := readRecordAt(s.segmentDir, file, entry.Version, entry.Offset)
		if err != nil {
			compactedFile.Close()
			return err
		}
		if rec.Set == nil {
			compactedFile.Close()
			return errors.NewCorruptionError(nil, "index entry does not point at a Set record during compaction").
				WithSegmentID(entry.Version).
				WithOffset(entry.Offset)
		}

		out := NewSetRecord(key, rec.Set.Value)
		data, err := out.encode()
		if err != nil {
			compactedFile.Close()
			return err
		}

		n, err := compactedFile.Write(data)
		if err != nil {
			compactedFile.Close()
			return errors.NewIOError(err, "failed to write compacted record").WithSegmentID(compactedVersion)
		}

		s.index.Put(key, index.IndexEntry{Version: compactedVersion, Offset: offset})
		offset += int64(n)
	}

	if err := compactedFile.Sync(); err != nil {
		compactedFile.Close()
		return errors.ClassifySyncError(err, seginfo.GenerateName(compactedVersion), s.segmentDir, offset)
	}
	if err := compactedFile.Close(); err != nil {
		return errors.NewIOError(err, "failed to close compacted segment").WithSegmentID(compactedVersion)
	}

	for _, version := range sealedVersions {
		if err := os.Remove(segmentPath(s.segmentDir, version)); err != nil && !os.IsNotExist(err) {
			s.log.Warnw("failed to remove superseded segment", "version", version, "error", err)
		}
	}

	s.minLiveVersion.Store(compactedVersion)

	freshVersion := compactedVersion + 1
	freshFile, _, err := openSegmentForAppend(s.segmentDir, freshVersion)
	if err != nil {
		return err
	}

	s.activeVersion.Store(freshVersion)
	s.activeFile = freshFile
	s.activeBytes = 0
	s.oldLogBytes = 0

	s.metrics.compactions.Inc()
	s.metrics.oldLogBytes.Set(0)
	s.metrics.liveKeys.Set(float64(s.index.Len()))

	s.log.Infow("compaction complete", "compactedVersion", compactedVersion, "freshVersion", freshVersion, "liveKeys", len(live))
	return nil
}
