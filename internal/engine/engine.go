// Package engine defines the storage engine contract (spec §4.1, §6.1)
// and dispatches to a concrete implementation by name: the core
// log-structured internal/bitcask engine, or the bbolt-backed
// internal/boltengine alternative.
package engine

import (
	"context"
	"fmt"

	"github.com/ignitedb/ignite/internal/bitcask"
	"github.com/ignitedb/ignite/internal/boltengine"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/options"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Engine is the operation set every backend must satisfy. Get never
// fails with KeyNotFound - absence is reported through the bool.
type Engine interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Remove(ctx context.Context, key string) error
	Close() error
}

// Duplicable engines expose a cheap handle duplication, so a server can
// hand out one logical engine to many worker goroutines while each
// keeps a private reader cache (spec §5, §9).
type Duplicable interface {
	Duplicate() Engine
}

// Config holds the dependencies needed to open any backend.
type Config struct {
	Options    *options.Options
	Logger     *zap.SugaredLogger
	Registerer prometheus.Registerer
}

// Open opens the backend named by config.Options.Engine.
func Open(ctx context.Context, config *Config) (Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "engine configuration is required",
		).WithField("config").WithRule("required")
	}

	switch config.Options.Engine {
	case options.EngineKVS, "":
		store, err := bitcask.Open(ctx, &bitcask.Config{
			Options:    config.Options,
			Logger:     config.Logger,
			Registerer: config.Registerer,
		})
		if err != nil {
			return nil, err
		}
		return &duplicableHandle{Handle: bitcask.NewHandle(store), store: store}, nil

	case options.EngineBolt:
		return boltengine.Open(ctx, &boltengine.Config{
			Options: config.Options,
			Logger:  config.Logger,
		})

	default:
		return nil, errors.NewUnexpectedTypeError(fmt.Sprintf("unknown engine %q", config.Options.Engine))
	}
}

// duplicableHandle adapts *bitcask.Handle's concrete Duplicate method
// (which returns *bitcask.Handle) to the Engine-typed Duplicable
// interface.
type duplicableHandle struct {
	*bitcask.Handle
	store *bitcask.Store // set only on the handle returned by Open
}

func (d *duplicableHandle) Duplicate() Engine {
	return &duplicableHandle{Handle: d.Handle.Duplicate()}
}

// Close releases this handle's reader cache and, on the handle returned
// by Open, also closes the shared Store.
func (d *duplicableHandle) Close() error {
	d.Handle.Close()
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}
