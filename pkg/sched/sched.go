// Package sched runs units of work that progress independently of the
// evaluation that created them. The evaluator's spawn hands it a computation
// and gets back a handle; await resolves the handle, suspending only the
// calling unit.
package sched

import "sync"

// Thunk is a deferred computation producing a value or a failure.
type Thunk func() (any, error)

// Scheduler creates and tracks tasks. The zero value is ready to use.
type Scheduler struct {
	wg sync.WaitGroup
}

// New creates a new Scheduler.
func New() *Scheduler { return &Scheduler{} }

// Spawn starts the computation as a new independently progressing task and
// returns its handle immediately.
func (s *Scheduler) Spawn(run Thunk) *Task {
	t := &Task{done: make(chan struct{})}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t.value, t.err = run()
		close(t.done)
	}()
	return t
}

// WaitAll blocks until every task spawned so far has resolved.
func (s *Scheduler) WaitAll() { s.wg.Wait() }

// Task is an opaque handle to a unit of work in flight. Resolving it yields
// the computation's return value or propagates its failure.
type Task struct {
	done  chan struct{}
	value any
	err   error
}

// Await blocks the calling unit until the task resolves, then returns its
// result. The result is cached: awaiting the same handle again returns the
// same value without blocking.
func (t *Task) Await() (any, error) {
	<-t.done
	return t.value, t.err
}

// Done reports whether the task has resolved, without blocking.
func (t *Task) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
