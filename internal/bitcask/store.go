// Package bitcask implements the core log-structured storage engine: a
// segmented, append-only on-disk log, an in-memory Index, and a
// compaction procedure that reclaims space by merging live records into
// a fresh segment.
//
// A Store owns the shared, exclusive-writer state (the active segment,
// its byte counters, the Index, and the published minimum live
// version). Callers never talk to a Store directly; they duplicate a
// Handle from it, which is cheap to copy, shares the Store's writer and
// Index, but carries its own private reader cache - mirroring the
// source's clonable engine handle (spec §5, §9).
package bitcask

import (
	"context"
	stdErrors "errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/ignitedb/ignite/internal/index"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/filesys"
	"github.com/ignitedb/ignite/pkg/options"
	"github.com/ignitedb/ignite/pkg/seginfo"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrStoreClosed = stdErrors.New("operation failed: cannot access closed store")

// Config configures a new Store.
type Config struct {
	Options    *options.Options
	Logger     *zap.SugaredLogger
	Registerer prometheus.Registerer // optional; nil disables metric registration
}

// Store is the shared mutable engine state: the single writer and the
// shared Index. activeFile, activeBytes and oldLogBytes are guarded by
// mu; the Index carries its own RWMutex; minLiveVersion, activeVersion
// and closed are atomic so readers consult them without blocking the
// writer.
type Store struct {
	log        *zap.SugaredLogger
	metrics    *metrics
	segmentDir string

	activeThreshold  uint64
	compactThreshold uint64

	index *index.Index

	mu          sync.Mutex
	activeFile  *os.File
	activeBytes int64
	oldLogBytes int64

	activeVersion  atomic.Uint64
	minLiveVersion atomic.Uint64

	closed atomic.Bool
}

// Open replays every segment under opts.DataDir/opts.SegmentOptions.Directory
// to rebuild the Index, then opens a fresh active segment, following the
// open procedure of spec §4.2.
func Open(ctx context.Context, config *Config) (*Store, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "bitcask store configuration is required",
		).WithField("config").WithRule("required")
	}

	opts := config.Options
	segmentDir := segmentDirPath(opts)

	config.Logger.Infow(
		"opening bitcask store",
		"dataDir", opts.DataDir,
		"segmentDir", segmentDir,
		"activeThreshold", opts.SegmentOptions.ActiveThreshold,
		"compactThreshold", opts.SegmentOptions.CompactThreshold,
	)

	if err := filesys.CreateDir(segmentDir, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, segmentDir)
	}

	idx, err := index.New(ctx, &index.Config{DataDir: segmentDir, Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	versions, err := seginfo.ListVersions(segmentDir)
	if err != nil {
		return nil, errors.NewLogLoadError(err, "failed to enumerate existing segments").WithPath(segmentDir)
	}

	store := &Store{
		log:              config.Logger,
		metrics:          newMetrics(config.Registerer),
		segmentDir:       segmentDir,
		index:            idx,
		activeThreshold:  opts.SegmentOptions.ActiveThreshold,
		compactThreshold: opts.SegmentOptions.CompactThreshold,
	}

	var oldLogBytes int64
	for _, version := range versions {
		if err := replaySegment(segmentDir, version, func(r replayRecord) error {
			switch {
			case r.rec.Set != nil:
				idx.Put(r.rec.Set.Key, index.IndexEntry{Version: version, Offset: r.offset})
			case r.rec.Remove != nil:
				idx.Delete(r.rec.Remove.Key)
			}
			return nil
		}); err != nil {
			return nil, err
		}

		if info, statErr := seginfo.GetFileInfo(segmentPath(segmentDir, version)); statErr == nil {
			oldLogBytes += info.Size()
		}
	}
	store.oldLogBytes = oldLogBytes

	activeVersion := uint64(1)
	if len(versions) > 0 {
		activeVersion = versions[len(versions)-1] + 1
		store.minLiveVersion.Store(versions[0])
	} else {
		store.minLiveVersion.Store(activeVersion)
	}
	store.activeVersion.Store(activeVersion)

	file, offset, err := openSegmentForAppend(segmentDir, activeVersion)
	if err != nil {
		return nil, err
	}
	store.activeFile = file
	store.activeBytes = offset

	store.metrics.oldLogBytes.Set(float64(store.oldLogBytes))
	store.metrics.activeBytes.Set(float64(store.activeBytes))
	store.metrics.liveKeys.Set(float64(idx.Len()))

	config.Logger.Infow("bitcask store opened", "activeVersion", activeVersion, "liveKeys", idx.Len())
	return store, nil
}

func segmentDirPath(opts *options.Options) string {
	if opts.SegmentOptions.Directory == "" {
		return opts.DataDir
	}
	if filepath.IsAbs(opts.SegmentOptions.Directory) {
		return opts.SegmentOptions.Directory
	}
	return filepath.Join(opts.DataDir, opts.SegmentOptions.Directory)
}

// Close seals the active segment and closes the Index. Safe to call once.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrStoreClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var closeErr error
	if s.activeFile != nil {
		if err := s.activeFile.Sync(); err != nil {
			closeErr = multierr.Append(closeErr, errors.ClassifySyncError(err, seginfo.GenerateName(s.activeVersion.Load()), s.segmentDir, s.activeBytes))
		}
		closeErr = multierr.Append(closeErr, s.activeFile.Close())
	}
	closeErr = multierr.Append(closeErr, s.index.Close())

	if closeErr != nil {
		return errors.NewIOError(closeErr, "failed to close bitcask store")
	}
	return nil
}
