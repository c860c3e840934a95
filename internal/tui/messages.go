package tui

import (
	"github.com/mmcdole/loofah/internal/dashboard"
	"github.com/mmcdole/loofah/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error from a one-off action
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + domain.UserMessage(e.Err)
	}
	return domain.UserMessage(e.Err)
}

// ItemsLoadedMsg carries the outcome of a list request
type ItemsLoadedMsg struct {
	Request dashboard.ListRequest
	Result  domain.ListResult
	Err     error
}

// StatsLoadedMsg carries the outcome of a stats request
type StatsLoadedMsg struct {
	Request dashboard.StatsRequest
	Stats   domain.StatsSnapshot
	Err     error
}

// ItemLoadedMsg carries a full item for the detail pane
type ItemLoadedMsg struct {
	Item domain.Item
	Err  error
}

// SyncStateMsg delivers a sync monitor transition
type SyncStateMsg struct {
	State domain.SyncState
}

// SyncStartedMsg reports that the trigger request returned
type SyncStartedMsg struct {
	Err error
}

// BrowserOpenedMsg signals the item URL was handed to the browser
type BrowserOpenedMsg struct {
	URL string
}

// ClearNoticeMsg clears the notice with the given id, if still shown
type ClearNoticeMsg struct {
	ID int
}
