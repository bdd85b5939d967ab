package submit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-tourneyform/pkg/model"
)

// DefaultResetDelay is how long a success stays visible before the status
// returns to idle.
const DefaultResetDelay = 5 * time.Second

// Resetter is cleared after a successful submission.
type Resetter interface {
	Reset()
}

// Observer is notified of every committed status change.
type Observer func(Status)

// Timer is the subset of *time.Timer the coordinator needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func defaultAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithResetter sets the form state cleared after a success.
func WithResetter(resetter Resetter) Option {
	return func(c *Coordinator) {
		c.resetter = resetter
	}
}

// WithObserver registers a status observer. Observers run on the goroutine
// that committed the change and must not block.
func WithObserver(observer Observer) Option {
	return func(c *Coordinator) {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
	}
}

// WithResetDelay overrides DefaultResetDelay.
func WithResetDelay(delay time.Duration) Option {
	return func(c *Coordinator) {
		if delay > 0 {
			c.delay = delay
		}
	}
}

// WithAfterFunc replaces the timer used for the success auto-reset.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.afterFunc = fn
		}
	}
}

// WithLogger sets the logger used for transition traces.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Coordinator drives the submission state machine:
//
//	idle -> pending -> success -> (delay) -> idle
//	             \--> error
//
// Every Submit takes a new sequence number and only the newest attempt may
// commit its outcome, so a slow earlier response never overwrites a later
// one. The coordinator does not serialise submissions itself. The Resetter
// runs after a success is committed, outside the lock.
type Coordinator struct {
	mu        sync.Mutex
	sender    Sender
	resetter  Resetter
	observers []Observer
	delay     time.Duration
	afterFunc AfterFunc
	logger    *slog.Logger

	status Status
	seq    uint64
	timer  Timer
}

// NewCoordinator builds an idle coordinator that delivers through sender.
func NewCoordinator(sender Sender, options ...Option) *Coordinator {
	c := &Coordinator{
		sender:    sender,
		delay:     DefaultResetDelay,
		afterFunc: defaultAfterFunc,
		logger:    slog.Default(),
		status:    idleStatus(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Status returns the committed status.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Clear returns the status to idle and cancels a pending auto-reset. An
// attempt still in flight will commit its outcome when it settles.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	c.stopTimerLocked()
	changed := !c.status.Idle()
	c.status = Status{State: StateIdle, Seq: c.status.Seq}
	current := c.status
	c.mu.Unlock()

	if changed {
		c.notify(current)
	}
}

// Submit sends record for collection and blocks until the attempt settles.
// It returns the outcome of this attempt, which is committed only if no newer
// Submit started meanwhile. Failures never escape as errors: they become
// a StateError status whose Err holds the cause.
func (c *Coordinator) Submit(ctx context.Context, collection string, record model.Record) Status {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.stopTimerLocked()

	if collection == "" {
		outcome := statusFor(ErrNoCollection)
		outcome.Seq = seq
		c.status = outcome
		c.mu.Unlock()

		c.logger.Debug("submission blocked", "seq", seq, "reason", "no collection")
		c.notify(outcome)
		return outcome
	}

	pending := Status{State: StatePending, Seq: seq}
	c.status = pending
	c.mu.Unlock()
	c.notify(pending)

	c.logger.Debug("submission pending", "seq", seq, "collection", collection, "fields", record.Len())

	var err error
	if c.sender == nil {
		err = &TransportError{Err: errNoSender}
	} else {
		err = c.sender.Send(ctx, model.NewEnvelope(collection, record))
	}
	outcome := statusFor(err)
	outcome.Seq = seq

	return c.commit(seq, outcome)
}

// Reject commits a client-side validation failure as a new attempt, without
// any network call.
func (c *Coordinator) Reject(err error) Status {
	c.mu.Lock()
	c.seq++
	outcome := statusFor(err)
	outcome.Seq = c.seq
	c.stopTimerLocked()
	c.status = outcome
	c.mu.Unlock()

	c.notify(outcome)
	return outcome
}

func (c *Coordinator) commit(seq uint64, outcome Status) Status {
	c.mu.Lock()
	if seq != c.seq {
		latest := c.seq
		c.mu.Unlock()
		c.logger.Debug("discarding stale submission outcome", "seq", seq, "latest", latest, "state", outcome.State)
		return outcome
	}
	c.status = outcome
	if outcome.State == StateSuccess {
		c.timer = c.afterFunc(c.delay, func() { c.expire(seq) })
	}
	c.mu.Unlock()

	if outcome.State == StateSuccess {
		c.logger.Info("submission succeeded", "seq", seq)
		if c.resetter != nil {
			c.resetter.Reset()
		}
	} else {
		c.logger.Warn("submission failed", "seq", seq, "message", outcome.Message, "error", outcome.Err)
	}

	c.notify(outcome)
	return outcome
}

func (c *Coordinator) expire(seq uint64) {
	c.mu.Lock()
	if c.seq != seq || c.status.State != StateSuccess {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.status = Status{State: StateIdle, Seq: seq}
	current := c.status
	c.mu.Unlock()

	c.notify(current)
}

func (c *Coordinator) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator) notify(status Status) {
	for _, observer := range c.observers {
		observer(status)
	}
}
