package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestSpawnRunsEveryTask(t *testing.T) {
	pool := New(4, logger.Nop())

	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(100)
	for i := 0; i < 100; i++ {
		pool.Spawn(func() {
			count.Add(1)
			wg.Done()
		})
	}

	wg.Wait()
	pool.Close()
	require.EqualValues(t, 100, count.Load())
}

func TestPanicInTaskDoesNotKillWorker(t *testing.T) {
	pool := New(1, logger.Nop())

	pool.Spawn(func() { panic("boom") })

	var ran atomic.Bool
	done := make(chan struct{})
	pool.Spawn(func() {
		ran.Store(true)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a panicking task")
	}

	require.True(t, ran.Load())
	pool.Close()
}

func TestNewClampsToOneWorker(t *testing.T) {
	pool := New(0, logger.Nop())
	defer pool.Close()

	done := make(chan struct{})
	pool.Spawn(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pool with n<1 did not run any worker")
	}
}
