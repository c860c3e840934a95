package domain

import "time"

// SyncPhase is the lifecycle position of a sync job.
type SyncPhase int

const (
	PhaseIdle SyncPhase = iota
	PhaseStarting
	PhasePolling
	PhaseSucceeded
	PhaseFailed
	PhaseTimedOut
)

func (p SyncPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStarting:
		return "starting"
	case PhasePolling:
		return "polling"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	case PhaseTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Active reports whether a job in this phase is still running.
func (p SyncPhase) Active() bool {
	return p == PhaseStarting || p == PhasePolling
}

// Terminal reports whether the phase ends a job.
func (p SyncPhase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed || p == PhaseTimedOut
}

// SyncState is a read-only snapshot of the sync monitor.
type SyncState struct {
	JobID     string
	Phase     SyncPhase
	Progress  int // 0-100
	Message   string
	StartedAt time.Time
	Err       error // set on Failed and TimedOut
}

// SyncObserver receives every sync state transition.
type SyncObserver interface {
	OnSyncState(state SyncState)
}

// SyncObserverFunc adapts a function to SyncObserver.
type SyncObserverFunc func(SyncState)

func (f SyncObserverFunc) OnSyncState(state SyncState) { f(state) }
