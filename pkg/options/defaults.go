package options

const (
	// Specifies the default base directory where IgniteDB will store its data files.
	// If no other directory is specified during initialization, this path will be used.
	DefaultDataDir = "/var/lib/ignitedb"

	// DefaultEngine is the backend a store opens with when none is given.
	DefaultEngine = EngineKVS

	// DefaultActiveThreshold is T_active: the byte length the active
	// segment must reach before rotation. Kept small relative to a
	// production workload so rotation and compaction exercise regularly;
	// callers writing larger records should raise it with
	// WithActiveThreshold.
	DefaultActiveThreshold uint64 = 1 * 1024 * 1024

	// DefaultCompactThreshold is T_compact: the cumulative sealed-segment
	// byte length that triggers a compaction pass after rotation.
	DefaultCompactThreshold uint64 = 4 * 1024 * 1024

	// Specifies the default subdirectory within the main data directory
	// where segment files will be stored.
	DefaultSegmentDirectory = "log"
)

// Holds the default configuration settings for an IgniteDB instance.
var defaultOptions = Options{
	DataDir: DefaultDataDir,
	Engine:  DefaultEngine,
	SegmentOptions: &segmentOptions{
		ActiveThreshold:  DefaultActiveThreshold,
		CompactThreshold: DefaultCompactThreshold,
		Directory:        DefaultSegmentDirectory,
	},
}

func NewDefaultOptions() Options {
	opts := defaultOptions
	segCopy := *defaultOptions.SegmentOptions
	opts.SegmentOptions = &segCopy
	return opts
}
