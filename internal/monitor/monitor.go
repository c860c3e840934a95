// Package monitor drives one backend sync job at a time: it triggers the job,
// polls its status on a fixed interval, and ends it on a terminal status or
// when the deadline passes.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmcdole/loofah/internal/domain"
)

const (
	// DefaultPollInterval is the spacing of status polls
	DefaultPollInterval = 2 * time.Second

	// DefaultDeadline is the hard ceiling on one job
	DefaultDeadline = 5 * time.Minute

	// SeedProgress is shown between the trigger ack and the first poll
	SeedProgress = 10

	// DefaultFailureMessage is used when the backend gives no reason
	DefaultFailureMessage = "sync failed"

	// TimeoutMessage accompanies the TimedOut phase
	TimeoutMessage = "sync timed out; data may still be updating on the server"
)

// ErrClosed is returned by Start after Close
var ErrClosed = errors.New("sync monitor closed")

// Options configures a Monitor. Zero values select the defaults.
type Options struct {
	PollInterval time.Duration
	Deadline     time.Duration
	Clock        Clock
	Logger       *slog.Logger
	Observer     domain.SyncObserver
}

// Monitor owns the sync job state machine. All transitions happen under mu;
// network calls never do. Every timer callback and poll response carries
// the generation it was issued for and is dropped if the generation moved on.
//
// The observer is called with mu held, in transition order. It must not
// block and must not call back into the Monitor.
type Monitor struct {
	backend      domain.SyncBackend
	clock        Clock
	logger       *slog.Logger
	observer     domain.SyncObserver
	pollInterval time.Duration
	deadline     time.Duration

	mu            sync.Mutex
	gen           uint64
	state         domain.SyncState
	completed     bool // the current job has reported 100%
	pollTimer     Timer
	deadlineTimer Timer
	jobCtx        context.Context
	jobCancel     context.CancelFunc
	closed        bool
}

// New creates an idle monitor
func New(backend domain.SyncBackend, opts Options) *Monitor {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Deadline <= 0 {
		opts.Deadline = DefaultDeadline
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Monitor{
		backend:      backend,
		clock:        opts.Clock,
		logger:       opts.Logger,
		observer:     opts.Observer,
		pollInterval: opts.PollInterval,
		deadline:     opts.Deadline,
		state:        domain.SyncState{Phase: domain.PhaseIdle},
	}
}

// State returns a snapshot of the current job
func (m *Monitor) State() domain.SyncState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start triggers a new sync job. It is rejected with
// domain.ErrSyncInProgress while a job is Starting or Polling, leaving that
// job untouched. Start blocks for the trigger request only; polling runs on
// the clock. A trigger failure moves the job to Failed and is returned.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state.Phase.Active() {
		m.logger.Info("sync start rejected", "job", m.state.JobID, "phase", m.state.Phase.String())
		m.mu.Unlock()
		return domain.ErrSyncInProgress
	}

	m.releaseLocked()
	gen := m.gen
	m.completed = false
	m.state = domain.SyncState{
		JobID:     uuid.NewString(),
		Phase:     domain.PhaseStarting,
		Progress:  SeedProgress,
		Message:   "starting sync",
		StartedAt: m.clock.Now(),
	}
	m.logger.Info("sync starting", "job", m.state.JobID)
	m.notifyLocked()
	m.mu.Unlock()

	err := m.backend.TriggerSync(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.state.Phase != domain.PhaseStarting {
		// Closed while the trigger was in flight
		return ErrClosed
	}

	if err != nil {
		m.releaseLocked()
		m.state.Phase = domain.PhaseFailed
		m.state.Message = "failed to start sync: " + domain.UserMessage(err)
		m.state.Err = err
		m.logger.Error("sync trigger failed", "job", m.state.JobID, "error", err)
		m.notifyLocked()
		return err
	}

	m.jobCtx, m.jobCancel = context.WithCancel(context.Background())
	m.state.Phase = domain.PhasePolling
	m.state.Message = "sync started"
	m.pollTimer = m.clock.AfterFunc(m.pollInterval, func() { m.tick(gen) })
	m.deadlineTimer = m.clock.AfterFunc(m.deadline, func() { m.expire(gen) })
	m.logger.Info("sync polling", "job", m.state.JobID,
		"interval", m.pollInterval, "deadline", m.deadline)
	m.notifyLocked()
	return nil
}

// Close stops the timers and cancels in-flight polls. An active job drops
// back to Idle so no snapshot taken afterwards reports a running sync; a
// terminal state is kept.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.releaseLocked()

	if m.state.Phase.Active() {
		m.logger.Info("sync monitor closed with job active", "job", m.state.JobID)
		m.state.Phase = domain.PhaseIdle
		m.state.Message = "sync monitor closed"
		m.notifyLocked()
	}
}

// tick re-arms the poll timer and requests the job status. The interval is
// not gated on the previous poll completing.
func (m *Monitor) tick(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.state.Phase != domain.PhasePolling {
		m.mu.Unlock()
		return
	}
	m.pollTimer = m.clock.AfterFunc(m.pollInterval, func() { m.tick(gen) })
	ctx := m.jobCtx
	m.mu.Unlock()

	status, err := m.backend.SyncStatus(ctx)
	m.applyStatus(gen, status, err)
}

// applyStatus is the transition for one poll response
func (m *Monitor) applyStatus(gen uint64, status domain.SyncStatus, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.state.Phase != domain.PhasePolling {
		m.logger.Debug("discarding stale sync status", "gen", gen, "current", m.gen)
		return
	}

	if err != nil {
		// The next tick retries; only the deadline forces an end.
		m.logger.Warn("sync status poll failed", "job", m.state.JobID, "error", err)
		return
	}

	if status.Progress > m.state.Progress {
		m.state.Progress = status.Progress
	}
	if status.Progress >= 100 {
		m.completed = true
	}
	if status.Message != "" {
		m.state.Message = status.Message
	}

	if status.Running {
		m.logger.Debug("sync progress", "job", m.state.JobID, "progress", status.Progress)
		m.notifyLocked()
		return
	}

	m.releaseLocked()

	if m.completed {
		m.state.Phase = domain.PhaseSucceeded
		m.state.Progress = 100
		// A reset progress means the message belongs to a later run
		if status.Message == "" || status.Progress < 100 {
			m.state.Message = "sync complete"
		}
		m.logger.Info("sync succeeded", "job", m.state.JobID,
			"elapsed", m.clock.Now().Sub(m.state.StartedAt))
	} else {
		msg := status.Message
		if msg == "" {
			msg = DefaultFailureMessage
		}
		m.state.Phase = domain.PhaseFailed
		m.state.Message = msg
		m.state.Err = fmt.Errorf("%w: %s", domain.ErrSyncFailed, msg)
		m.logger.Warn("sync failed", "job", m.state.JobID, "progress", status.Progress, "message", msg)
	}
	m.notifyLocked()
}

// expire is the deadline transition
func (m *Monitor) expire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.state.Phase != domain.PhasePolling {
		return
	}

	m.releaseLocked()
	m.state.Phase = domain.PhaseTimedOut
	m.state.Message = TimeoutMessage
	m.state.Err = domain.ErrSyncTimeout
	m.logger.Warn("sync timed out", "job", m.state.JobID, "deadline", m.deadline)
	m.notifyLocked()
}

// releaseLocked invalidates everything tied to the current generation:
// both timers, in-flight polls, and any callback already queued.
func (m *Monitor) releaseLocked() {
	if m.pollTimer != nil {
		m.pollTimer.Stop()
		m.pollTimer = nil
	}
	if m.deadlineTimer != nil {
		m.deadlineTimer.Stop()
		m.deadlineTimer = nil
	}
	if m.jobCancel != nil {
		m.jobCancel()
		m.jobCancel = nil
	}
	m.jobCtx = nil
	m.gen++
}

func (m *Monitor) notifyLocked() {
	if m.observer != nil {
		m.observer.OnSyncState(m.state)
	}
}
