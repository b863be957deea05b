package recognition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

var ErrPoolClosed = errors.New("inference pool is shut down")

// Pool bounds concurrent decode and inference work. Requests beyond the
// workers wait in a fixed queue; when the queue is full they are rejected
// instead of piling up.
type Pool struct {
	jobs    chan *job
	quit    chan struct{}
	workers int
	active  atomic.Int64
	wg      sync.WaitGroup
	logger  *slog.Logger

	// mu orders enqueues before close(quit), so every queued job is seen by
	// a worker's run or reject.
	mu     sync.RWMutex
	closed bool
}

type job struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

func NewPool(workers, queueSize int, logger *slog.Logger) *Pool {
	p := &Pool{
		jobs:    make(chan *job, queueSize),
		quit:    make(chan struct{}),
		workers: workers,
		logger:  logger.With("component", "pool"),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work(i)
	}

	p.logger.Info("inference pool started",
		slog.Int("workers", workers),
		slog.Int("queue_size", queueSize),
	)
	return p
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for {
		select {
		case j := <-p.jobs:
			p.run(id, j)
		case <-p.quit:
			p.reject()
			return
		}
	}
}

// reject fails whatever is still queued at shutdown.
func (p *Pool) reject() {
	for {
		select {
		case j := <-p.jobs:
			j.done <- domain.ErrOverloaded.WithError(ErrPoolClosed)
		default:
			return
		}
	}
}

func (p *Pool) run(id int, j *job) {
	if err := j.ctx.Err(); err != nil {
		j.done <- err
		return
	}

	p.active.Add(1)
	defer p.active.Add(-1)

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic in inference job", slog.Int("worker", id), slog.Any("panic", r))
			j.done <- domain.ErrInternal.WithError(fmt.Errorf("panic: %v", r))
		}
	}()

	j.done <- j.fn(j.ctx)
}

// Do runs fn on a worker and waits for it. It returns ErrOverloaded without
// waiting when the queue is full, and ctx.Err() if ctx ends first.
func (p *Pool) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j := &job{ctx: ctx, fn: fn, done: make(chan error, 1)}
	if err := p.enqueue(j); err != nil {
		return err
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) enqueue(j *job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return domain.ErrOverloaded.WithError(ErrPoolClosed)
	}
	select {
	case p.jobs <- j:
		return nil
	default:
		return domain.ErrOverloaded
	}
}

// Active is the number of jobs currently running.
func (p *Pool) Active() int { return int(p.active.Load()) }

func (p *Pool) Workers() int { return p.workers }

func (p *Pool) QueueCapacity() int { return cap(p.jobs) }

// Shutdown stops the workers after their current job and waits for them.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.quit)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
