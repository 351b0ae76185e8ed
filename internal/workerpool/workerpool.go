// Package workerpool implements the fixed-size, self-healing pool the
// server uses to run one task per accepted connection (spec §6.5).
//
// The source's pool (original_source/src/thread_pool/mod.rs) self-heals
// by polling for finished worker threads and respawning them; Go's
// recover gives a more direct equivalent, since a goroutine can catch
// its own panic without needing an external supervisor to notice it
// died. Each worker therefore wraps task execution in a deferred
// recover and keeps consuming from the shared queue for the pool's
// lifetime - no separate Poll call is needed, and Spawn/Close keep the
// same names and shapes as the source's spawn/drop.
package workerpool

import (
	"sync"

	"go.uber.org/zap"
)

// Task is a unit of work submitted to the pool.
type Task func()

// Pool is a fixed-size pool of worker goroutines draining a shared,
// unbuffered queue.
type Pool struct {
	tasks chan Task
	wg    sync.WaitGroup
	log   *zap.SugaredLogger
}

// New starts a Pool of n workers. n must be at least 1.
func New(n int, log *zap.SugaredLogger) *Pool {
	if n < 1 {
		n = 1
	}

	p := &Pool{tasks: make(chan Task), log: log}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(id, task)
	}
}

// run executes task, recovering a panic so the worker survives to serve
// the next task instead of leaving the pool permanently short one
// worker.
func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("worker recovered from panic", "worker", id, "panic", r)
		}
	}()
	task()
}

// Spawn enqueues task to be run by the next free worker. Blocks if every
// worker is busy.
func (p *Pool) Spawn(task Task) {
	p.tasks <- task
}

// Close stops accepting new tasks and blocks until every worker has
// drained the queue and exited.
func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()
}
