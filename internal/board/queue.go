package board

import (
	"context"
	"sync"
)

// job is one unit of persistence work
type job struct {
	name string
	run  func(ctx context.Context) error
	// done receives the result of synchronous jobs; nil for fire-and-forget commits
	done chan error
}

// commitQueue runs jobs one at a time, in submission order
type commitQueue struct {
	jobs chan job

	mu       sync.Mutex
	inflight int
	drained  chan struct{}
	firstErr error
	closed   bool

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

func newCommitQueue() *commitQueue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &commitQueue{
		jobs:    make(chan job, 64),
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go q.worker()
	return q
}

func (q *commitQueue) worker() {
	defer close(q.stopped)
	for {
		select {
		case <-q.ctx.Done():
			return
		case j := <-q.jobs:
			err := j.run(q.ctx)
			if j.done != nil {
				j.done <- err
				err = nil
			}
			q.finish(err)
		}
	}
}

// enqueue schedules j after every job submitted before it
func (q *commitQueue) enqueue(j job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.inflight++
	if q.inflight == 1 {
		q.drained = make(chan struct{})
	}
	q.mu.Unlock()

	q.jobs <- j
	return nil
}

// submit runs j through the queue and waits for its result
func (q *commitQueue) submit(ctx context.Context, j job) error {
	j.done = make(chan error, 1)
	if err := q.enqueue(j); err != nil {
		return err
	}
	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *commitQueue) finish(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err != nil && q.firstErr == nil {
		q.firstErr = err
	}
	q.inflight--
	if q.inflight == 0 {
		close(q.drained)
	}
}

// wait blocks until no job is queued or running, then returns and clears the
// first error produced by fire-and-forget jobs since the previous wait
func (q *commitQueue) wait(ctx context.Context) error {
	q.mu.Lock()
	if q.inflight > 0 {
		drained := q.drained
		q.mu.Unlock()
		select {
		case <-drained:
		case <-ctx.Done():
			return ctx.Err()
		}
		q.mu.Lock()
	}
	err := q.firstErr
	q.firstErr = nil
	q.mu.Unlock()
	return err
}

// close rejects new jobs, lets queued ones finish and stops the worker
func (q *commitQueue) close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	err := q.wait(ctx)
	q.cancel()
	<-q.stopped
	return err
}
