// Package options provides data structures and functions for configuring
// the Ignite database. It defines the parameters that control storage
// layout, segment rotation/compaction thresholds and which engine
// backend a store opens with.
package options

import (
	"strings"
)

// EngineName selects which internal/engine.Engine implementation a store
// opens with. It is persisted to the data directory's meta file so a
// restart can refuse to reopen a store with a different engine.
type EngineName string

const (
	// EngineKVS is the core log-structured (Bitcask-style) engine,
	// internal/bitcask.
	EngineKVS EngineName = "kvs"

	// EngineBolt is the bbolt-backed alternative engine,
	// internal/boltengine.
	EngineBolt EngineName = "bolt"
)

// Defines configurable parameters for segment rotation and compaction.
// It provides fine-grained control over write-amplification and how
// much stale data a store is willing to retain on disk before reclaiming
// it.
type segmentOptions struct {
	// ActiveThreshold is T_active: the byte length the active segment
	// must cross before the writer seals it and opens a new one. Must
	// stay strictly greater than the largest single record the store
	// will be asked to write.
	//
	//  - Default: 1 MiB
	ActiveThreshold uint64 `json:"activeThreshold"`

	// CompactThreshold is T_compact: the cumulative byte length of
	// sealed, non-active segments that must be crossed before rotation
	// triggers a compaction pass.
	//
	//  - Default: 4 MiB
	CompactThreshold uint64 `json:"compactThreshold"`

	// Directory is where segment files are stored, relative to DataDir
	// unless given as an absolute path.
	//
	// Default: "log"
	Directory string `json:"directory"`
}

// Defines the configuration parameters for Ignite DB.
// It provides control over storage, the engine backend, and maintenance
// aspects.
type Options struct {
	// Specifies the base path where files will be stored.
	//
	// Default: "/var/lib/ignitedb"
	DataDir string `json:"dataDir"`

	// Engine selects which backend a store opens with: EngineKVS (the
	// core log-structured engine) or EngineBolt (the bbolt-backed
	// alternative). Persisted to <DataDir>/meta on first open.
	//
	// Default: EngineKVS
	Engine EngineName `json:"engine"`

	// Configures segment management: rotation/compaction thresholds
	// and where segment files live.
	SegmentOptions *segmentOptions `json:"segmentOptions"`
}

// OptionFunc is a function type that modifies the Ignite system's configuration.
type OptionFunc func(*Options)

// Applies a predefined set of default configuration values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.DataDir = opts.DataDir
		o.Engine = opts.Engine
		o.SegmentOptions = opts.SegmentOptions
	}
}

// Sets the primary data directory for Ignite.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// Sets which engine backend a store opens with.
func WithEngine(name EngineName) OptionFunc {
	return func(o *Options) {
		switch name {
		case EngineKVS, EngineBolt:
			o.Engine = name
		}
	}
}

// Sets the directory specifically for storing segment files.
func WithSegmentDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.SegmentOptions.Directory = directory
		}
	}
}

// Sets T_active, the rotation threshold for the active segment.
func WithActiveThreshold(bytes uint64) OptionFunc {
	return func(o *Options) {
		if bytes > 0 {
			o.SegmentOptions.ActiveThreshold = bytes
		}
	}
}

// Sets T_compact, the cumulative sealed-segment byte threshold that
// triggers compaction after a rotation.
func WithCompactThreshold(bytes uint64) OptionFunc {
	return func(o *Options) {
		if bytes > 0 {
			o.SegmentOptions.CompactThreshold = bytes
		}
	}
}
