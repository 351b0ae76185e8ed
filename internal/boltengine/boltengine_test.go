package boltengine

import (
	"context"
	"testing"

	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/ignitedb/ignite/pkg/options"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()

	engine, err := Open(context.Background(), &Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestBoltEngineRoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Set(ctx, "a", "1"))

	v, found, err := engine.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "1", v)
}

func TestBoltEngineGetMiss(t *testing.T) {
	engine := newTestEngine(t)
	_, found, err := engine.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestBoltEngineRemoveMissingIsKeyNotFound(t *testing.T) {
	engine := newTestEngine(t)
	err := engine.Remove(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, errors.IsKeyNotFound(err))
}

func TestBoltEngineRemoveExisting(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Set(ctx, "a", "1"))
	require.NoError(t, engine.Remove(ctx, "a"))

	_, found, err := engine.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, found)
}
