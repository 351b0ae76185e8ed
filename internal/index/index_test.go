package index

import (
	"context"
	"testing"

	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(context.Background(), &Config{DataDir: t.TempDir(), Logger: logger.Nop()})
	require.NoError(t, err)
	return idx
}

func TestPutGetDelete(t *testing.T) {
	idx := newTestIndex(t)

	_, ok := idx.Get("a")
	require.False(t, ok)

	idx.Put("a", IndexEntry{Version: 1, Offset: 10})
	entry, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, IndexEntry{Version: 1, Offset: 10}, entry)

	require.True(t, idx.Delete("a"))
	require.False(t, idx.Delete("a"))

	_, ok = idx.Get("a")
	require.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	idx := newTestIndex(t)
	idx.Put("a", IndexEntry{Version: 1, Offset: 0})

	snap := idx.Snapshot()
	idx.Put("b", IndexEntry{Version: 1, Offset: 5})

	require.Len(t, snap, 1)
	require.Equal(t, 2, idx.Len())
}

func TestCloseRejectsFurtherAccess(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Close())
	require.ErrorIs(t, idx.Close(), ErrIndexClosed)
}
