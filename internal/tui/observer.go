package tui

import "github.com/mmcdole/loofah/internal/domain"

// ChannelObserver adapts domain.SyncObserver to a channel for Bubble Tea.
// The channel acts as a one-slot mailbox: a state the UI has not read yet is
// replaced by the newer one, so the UI always catches up to the latest.
type ChannelObserver struct {
	ch chan domain.SyncState
}

// NewChannelObserver creates an observer and the channel it feeds
func NewChannelObserver() *ChannelObserver {
	return &ChannelObserver{ch: make(chan domain.SyncState, 1)}
}

// Updates is the receive side for WaitForSyncCmd
func (o *ChannelObserver) Updates() <-chan domain.SyncState {
	return o.ch
}

// OnSyncState never blocks. The monitor serializes calls, so the drain and
// resend cannot race with another sender.
func (o *ChannelObserver) OnSyncState(state domain.SyncState) {
	for {
		select {
		case o.ch <- state:
			return
		default:
		}
		select {
		case <-o.ch:
		default:
		}
	}
}
