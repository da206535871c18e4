package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Submitter records a finished run.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (*Score, error)
}

// DefaultOutboxSize bounds the number of queued submissions.
const DefaultOutboxSize = 16

const submitTimeout = 5 * time.Second

// Outbox queues finished runs so the game loop never waits on storage.
// Enqueue never blocks; the worker started by Start drains the queue and
// Close stops it without dropping a submission in flight.
type Outbox struct {
	queue  chan Submission
	sub    Submitter
	logger *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewOutbox creates an outbox holding up to size pending submissions.
func NewOutbox(sub Submitter, size int, logger *log.Logger) *Outbox {
	if size <= 0 {
		size = DefaultOutboxSize
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Outbox{
		queue:  make(chan Submission, size),
		sub:    sub,
		logger: logger,
	}
}

// Enqueue adds a submission. When the outbox is full the submission is
// dropped and false is returned.
func (o *Outbox) Enqueue(s Submission) bool {
	select {
	case o.queue <- s:
		return true
	default:
		o.logger.Warn("score outbox full, dropping submission", "level", s.Level, "won", s.Won)
		return false
	}
}

// Pending returns the number of queued submissions.
func (o *Outbox) Pending() int {
	return len(o.queue)
}

// Start runs the worker on its own goroutine until Close.
func (o *Outbox) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done != nil {
		return
	}
	ctx, o.cancel = context.WithCancel(ctx)
	o.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		o.Run(ctx)
	}(o.done)
}

// Close stops the worker, waits for the submission it is running, then
// submits everything still queued. ctx bounds the whole shutdown.
func (o *Outbox) Close(ctx context.Context) {
	o.mu.Lock()
	cancel, done := o.cancel, o.done
	o.cancel, o.done = nil, nil
	o.mu.Unlock()

	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
			o.logger.Warn("score outbox worker did not stop in time", "pending", o.Pending())
			return
		}
	}
	o.Flush(ctx)
}

// Run submits queued runs until ctx is cancelled. A submission already in
// flight is allowed to finish.
func (o *Outbox) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-o.queue:
			o.submit(context.WithoutCancel(ctx), s)
		}
	}
}

// Flush submits everything still queued and returns when the queue is empty
// or ctx is done.
func (o *Outbox) Flush(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-o.queue:
			o.submit(ctx, s)
		default:
			return
		}
	}
}

func (o *Outbox) submit(ctx context.Context, s Submission) {
	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	score, err := o.sub.Submit(ctx, s)
	if err != nil {
		o.logger.Warn("score submission failed", "level", s.Level, "error", err)
		return
	}
	o.logger.Info("score saved", "level", score.Level, "points", score.Points, "won", score.Won)
}
