package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/loofah/internal/dashboard"
	"github.com/mmcdole/loofah/internal/domain"
)

// Command factories for async operations

// ItemLoader is the item side of the service layer
type ItemLoader interface {
	ListItems(ctx context.Context, q domain.ListQuery) (domain.ListResult, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
}

// StatsLoader fetches dashboard statistics
type StatsLoader interface {
	GetStats(ctx context.Context) (domain.StatsSnapshot, error)
}

// SyncStarter starts a monitored sync job
type SyncStarter interface {
	Start(ctx context.Context) error
}

// URLOpener opens a link outside the terminal
type URLOpener interface {
	Open(rawURL string) error
}

// requestTimeout bounds a single command; the request client applies its own
// timeout underneath.
const requestTimeout = 60 * time.Second

// LoadItemsCmd runs a list request issued by the controller
func LoadItemsCmd(svc ItemLoader, req dashboard.ListRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := svc.ListItems(ctx, req.Query)
		return ItemsLoadedMsg{Request: req, Result: result, Err: err}
	}
}

// LoadStatsCmd runs a stats request issued by the controller
func LoadStatsCmd(svc StatsLoader, req dashboard.StatsRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		stats, err := svc.GetStats(ctx)
		return StatsLoadedMsg{Request: req, Stats: stats, Err: err}
	}
}

// LoadItemCmd fetches one item for the detail pane
func LoadItemCmd(svc ItemLoader, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		item, err := svc.GetItem(ctx, id)
		return ItemLoadedMsg{Item: item, Err: err}
	}
}

// StartSyncCmd triggers a sync. Progress arrives separately through the
// observer channel.
func StartSyncCmd(mon SyncStarter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return SyncStartedMsg{Err: mon.Start(ctx)}
	}
}

// WaitForSyncCmd reads the next sync transition. Update re-issues it after
// every SyncStateMsg so the listener stays alive for the program's lifetime.
func WaitForSyncCmd(ch <-chan domain.SyncState) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return SyncStateMsg{State: state}
	}
}

// OpenURLCmd hands a URL to the browser launcher
func OpenURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}
		return BrowserOpenedMsg{URL: url}
	}
}

// ClearNoticeCmd returns a command that clears a notice after a delay
func ClearNoticeCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearNoticeMsg{ID: id}
	})
}
