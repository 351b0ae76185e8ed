package bitcask

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/ignitedb/ignite/pkg/options"
	"github.com/ignitedb/ignite/pkg/seginfo"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, activeThreshold, compactThreshold uint64) (*Store, string) {
	t.Helper()
	dir := t.TempDir()

	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	opts.SegmentOptions.ActiveThreshold = activeThreshold
	opts.SegmentOptions.CompactThreshold = compactThreshold

	store, err := Open(context.Background(), &Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	return store, dir
}

func TestEmptyStoreGetMiss(t *testing.T) {
	store, _ := newTestStore(t, 1<<20, 1<<20)
	defer store.Close()

	h := NewHandle(store)
	_, found, err := h.Get(context.Background(), "a")
	require.NoError(t, err)
	require.False(t, found)
}

func TestBasicRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, 1<<20, 1<<20)
	defer store.Close()

	h := NewHandle(store)
	ctx := context.Background()

	require.NoError(t, h.Set(ctx, "a", "1"))
	require.NoError(t, h.Set(ctx, "b", "2"))

	v, found, err := h.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "1", v)

	v, found, err = h.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2", v)

	require.NoError(t, h.Remove(ctx, "a"))
	_, found, err = h.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, found)

	err = h.Remove(ctx, "a")
	require.Error(t, err)
	require.True(t, errors.IsKeyNotFound(err))
}

func TestOverwrite(t *testing.T) {
	store, _ := newTestStore(t, 1<<20, 1<<20)
	defer store.Close()

	h := NewHandle(store)
	ctx := context.Background()

	require.NoError(t, h.Set(ctx, "k", "v1"))
	require.NoError(t, h.Set(ctx, "k", "v2"))

	v, found, err := h.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v2", v)
}

func TestRestartRecovery(t *testing.T) {
	store, dir := newTestStore(t, 1<<20, 1<<20)
	ctx := context.Background()
	h := NewHandle(store)

	require.NoError(t, h.Set(ctx, "a", "1"))
	require.NoError(t, h.Set(ctx, "b", "2"))
	require.NoError(t, h.Remove(ctx, "a"))
	require.NoError(t, store.Close())

	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	reopened, err := Open(ctx, &Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	defer reopened.Close()

	reopenedHandle := NewHandle(reopened)
	_, found, err := reopenedHandle.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, found)

	v, found, err := reopenedHandle.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2", v)
}

func TestCompactionBoundsDiskFootprint(t *testing.T) {
	store, dir := newTestStore(t, 1024, 1024*40)
	defer store.Close()

	ctx := context.Background()
	h := NewHandle(store)

	for i := 0; i < 10000; i++ {
		require.NoError(t, h.Set(ctx, "k", "x"))
	}

	v, found, err := h.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "x", v)

	segmentDir := filepath.Join(dir, options.DefaultSegmentDirectory)
	versions, err := seginfo.ListVersions(segmentDir)
	require.NoError(t, err)
	require.NotEmpty(t, versions)

	var total int64
	for _, v := range versions {
		info, err := seginfo.GetFileInfo(segmentPath(segmentDir, v))
		require.NoError(t, err)
		total += info.Size()
	}
	require.Less(t, total, int64(1024*20), "compaction should keep log/ bounded to a small multiple of the live footprint")
}

func TestConcurrentReaders(t *testing.T) {
	store, _ := newTestStore(t, 1<<20, 1<<20)
	defer store.Close()

	ctx := context.Background()
	writer := NewHandle(store)
	for i := 1; i <= 256; i++ {
		require.NoError(t, writer.Set(ctx, fmt.Sprintf("key%d", i), "value"))
	}

	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		go func(seed int) {
			h := writer.Duplicate()
			for i := 0; i < 1000; i++ {
				key := fmt.Sprintf("key%d", 1+(i+seed)%256)
				v, found, err := h.Get(ctx, key)
				if err != nil {
					errs <- err
					return
				}
				if !found || v != "value" {
					errs <- errors.NewCorruptionError(nil, "unexpected concurrent read result")
					return
				}
			}
			errs <- nil
		}(g)
	}

	for g := 0; g < 8; g++ {
		require.NoError(t, <-errs)
	}
}
