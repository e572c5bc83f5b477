// Package scheduler provides the deferred execution substrate for
// transaction resolution: an inspectable delay queue drained by a small
// worker pool, in place of fire-and-forget timers.
package scheduler

import (
	"container/heap"
	"log/slog"
	"sync"
	"time"
)

// ResolveFunc is invoked once for each due transaction id. It must handle
// its own errors; the scheduler only guards against panics.
type ResolveFunc func(id string)

type item struct {
	id     string
	fireAt time.Time
}

type delayQueue []*item

func (q delayQueue) Len() int           { return len(q) }
func (q delayQueue) Less(i, j int) bool { return q[i].fireAt.Before(q[j].fireAt) }
func (q delayQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *delayQueue) Push(x any)        { *q = append(*q, x.(*item)) }
func (q *delayQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

// Scheduler holds pending resolutions until their fire time and hands due
// ones to workers. Items are never cancelled; once scheduled, a resolution
// eventually fires as long as the process lives.
type Scheduler struct {
	logger  *slog.Logger
	workers int

	mu    sync.Mutex
	queue delayQueue

	wake chan struct{}
	work chan string
	quit chan struct{}
	stop sync.Once
	wg   sync.WaitGroup
}

func New(logger *slog.Logger, workers int) *Scheduler {
	if workers <= 0 {
		workers = 4
	}
	return &Scheduler{
		logger:  logger,
		workers: workers,
		wake:    make(chan struct{}, 1),
		work:    make(chan string),
		quit:    make(chan struct{}),
	}
}

// Start launches the dispatcher and worker goroutines. Items scheduled
// before Start are retained and dispatched once running.
func (s *Scheduler) Start(resolve ResolveFunc) {
	s.wg.Add(1)
	go s.dispatch()
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(resolve)
	}
}

// Schedule enqueues a resolution for id at fireAt.
func (s *Scheduler) Schedule(id string, fireAt time.Time) {
	s.mu.Lock()
	heap.Push(&s.queue, &item{id: id, fireAt: fireAt})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Stop terminates the scheduler. Items still queued are dropped.
func (s *Scheduler) Stop() {
	s.stop.Do(func() { close(s.quit) })
	s.wg.Wait()
}

func (s *Scheduler) dispatch() {
	defer s.wg.Done()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	drainTimer(timer)

	for {
		now := time.Now()
		var due []string

		s.mu.Lock()
		for len(s.queue) > 0 && !s.queue[0].fireAt.After(now) {
			due = append(due, heap.Pop(&s.queue).(*item).id)
		}
		wait := time.Duration(-1)
		if len(s.queue) > 0 {
			wait = s.queue[0].fireAt.Sub(now)
		}
		s.mu.Unlock()

		for _, id := range due {
			select {
			case s.work <- id:
			case <-s.quit:
				return
			}
		}

		if wait < 0 {
			// Queue empty: sleep until something is scheduled.
			select {
			case <-s.wake:
			case <-s.quit:
				return
			}
			continue
		}

		timer.Reset(wait)
		select {
		case <-timer.C:
		case <-s.wake:
			if !timer.Stop() {
				drainTimer(timer)
			}
		case <-s.quit:
			return
		}
	}
}

func (s *Scheduler) worker(resolve ResolveFunc) {
	defer s.wg.Done()
	for {
		select {
		case id := <-s.work:
			s.run(resolve, id)
		case <-s.quit:
			return
		}
	}
}

// run isolates a single resolution: a panic in one transaction must not
// take down the pool or affect other pending resolutions.
func (s *Scheduler) run(resolve ResolveFunc, id string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("resolution panicked", "transactionId", id, "panic", r)
		}
	}()
	resolve(id)
}

func drainTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
