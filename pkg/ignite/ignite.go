// Package ignite provides a high-performance key/value data store
// designed for fast read and write operations, inspired by Bitcask.
// It combines an in-memory hash table (Index) with an append-only log
// structure on disk to achieve high throughput. It is designed for applications
// requiring fast read and write operations, such as caching, session management,
// and real-time data processing, aiming to provide a simple, efficient, and
// reliable solution for in-memory data storage in Go applications.
package ignite

import (
	"context"

	"github.com/ignitedb/ignite/internal/engine"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/ignitedb/ignite/pkg/options"
)

// Represents an instance of the Ignite key/value data store.
// It encapsulates the core engine responsible for data handling and
// the configuration options for this specific database instance.
//
// Instance is the primary entry point for interacting with the Ignite store,
// providing methods for setting, getting, and deleting key-value pairs.
type Instance struct {
	engine  engine.Engine    // The underlying database engine handling read/write operations.
	options *options.Options // Configuration options applied to this DB instance.
}

// Creates and initializes a new Ignite DB instance.
func NewInstance(ctx context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	// Initialize a logger for the given service.
	log := logger.New(service)

	// Initialize default options.
	defaultOpts := options.NewDefaultOptions()

	// Apply any provided functional options to override defaults.
	for _, opt := range opts {
		opt(&defaultOpts)
	}

	// Create a new internal engine with the initialized logger.
	eng, err := engine.Open(ctx, &engine.Config{Logger: log, Options: &defaultOpts})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &defaultOpts}, nil
}

// Set stores a key-value pair in the database.
// If the key already exists, its value will be updated.
// The operation is durable and will be written to the append-only log
// before Set returns.
func (i *Instance) Set(ctx context.Context, key, value string) error {
	return i.engine.Set(ctx, key, value)
}

// Get retrieves the value associated with the given key. The returned
// bool reports whether the key was present; a missing key is a
// successful, not an error, outcome.
func (i *Instance) Get(ctx context.Context, key string) (string, bool, error) {
	return i.engine.Get(ctx, key)
}

// Delete removes a key-value pair from the database. It fails with
// errors.ErrorCodeKeyNotFound if the key is already absent.
func (i *Instance) Delete(ctx context.Context, key string) error {
	return i.engine.Remove(ctx, key)
}

// Close gracefully shuts down the Ignite DB instance, flushing any
// pending writes and closing open file handles in the engine.
func (i *Instance) Close(ctx context.Context) error {
	return i.engine.Close()
}

// IsKeyNotFound reports whether err is the "key not found" error Delete
// returns for an absent key.
func IsKeyNotFound(err error) bool {
	return errors.IsKeyNotFound(err)
}
