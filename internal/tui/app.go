package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/loofah/internal/dashboard"
	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/tui/components"
)

// ViewMode is the main pane currently shown
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewStats
)

// Notice lifetimes in the status bar
const (
	infoNoticeTTL  = 3 * time.Second
	alertNoticeTTL = 8 * time.Second
)

// Options wires the model to the service layer
type Options struct {
	Items      ItemLoader
	Stats      StatsLoader
	Sync       SyncStarter
	Browser    URLOpener
	Updates    <-chan domain.SyncState
	Controller *dashboard.Controller
	Logger     *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready    bool
	Mode     ViewMode
	ShowHelp bool

	// Services
	items   ItemLoader
	stats   StatsLoader
	sync    SyncStarter
	browser URLOpener
	updates <-chan domain.SyncState
	ctrl    *dashboard.Controller
	logger  *slog.Logger

	// UI Components
	List       components.ListColumn
	Inspector  components.Inspector
	StatsPanel components.StatsPanel
	Search     components.SearchBar
	SyncBar    components.SyncIndicator
	Help       help.Model

	// Dimensions
	Width  int
	Height int

	SpinnerFrame int

	scheduledNotice int // notice whose expiry is already scheduled
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Controller == nil {
		opts.Controller = dashboard.New(dashboard.Options{Logger: opts.Logger})
	}

	m := Model{
		Mode:       ViewList,
		items:      opts.Items,
		stats:      opts.Stats,
		sync:       opts.Sync,
		browser:    opts.Browser,
		updates:    opts.Updates,
		ctrl:       opts.Controller,
		logger:     opts.Logger,
		List:       components.NewListColumn(),
		Inspector:  components.NewInspector(),
		StatsPanel: components.NewStatsPanel(),
		Search:     components.NewSearchBar(),
		SyncBar:    components.NewSyncIndicator(),
		Help:       help.New(),
	}
	m.List.SetLoading(true)
	m.List.SetTitle(listTitle(m.ctrl.Query(), 0))
	m.StatsPanel.SetLoading(true)
	return m
}

// Controller exposes the dashboard state, mainly for tests
func (m Model) Controller() *dashboard.Controller { return m.ctrl }

// Init mounts the dashboard
func (m Model) Init() tea.Cmd {
	listReq, statsReq := m.ctrl.Mount()
	return tea.Batch(
		LoadItemsCmd(m.items, listReq),
		LoadStatsCmd(m.stats, statsReq),
		WaitForSyncCmd(m.updates),
		TickCmd(100*time.Millisecond),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(100 * time.Millisecond)

	case ItemsLoadedMsg:
		if m.ctrl.ApplyList(msg.Request.Seq, msg.Result, msg.Err) && msg.Err == nil {
			m.List.SetItems(msg.Result)
			m.List.SetTitle(listTitle(msg.Request.Query, msg.Result.Total))
		}
		m.List.SetLoading(m.ctrl.ListLoading())
		cmd := m.noticeCmd()
		return m, cmd

	case StatsLoadedMsg:
		if m.ctrl.ApplyStats(msg.Request.Seq, msg.Stats, msg.Err) && msg.Err == nil {
			m.StatsPanel.SetStats(msg.Stats)
		}
		m.StatsPanel.SetLoading(m.ctrl.StatsLoading())
		cmd := m.noticeCmd()
		return m, cmd

	case ItemLoadedMsg:
		if msg.Err != nil {
			// The row data is still shown; only the refresh failed
			m.logger.Warn("item detail load failed", "error", msg.Err)
			m.Inspector.SetLoading(false)
			if errors.Is(msg.Err, domain.ErrNotFound) {
				m.ctrl.Notify(dashboard.NoticeWarning, "This item no longer exists on the server")
				cmd := m.noticeCmd()
				return m, cmd
			}
			return m, nil
		}
		if cur, ok := m.Inspector.Item(); ok && cur.ID == msg.Item.ID {
			m.Inspector.SetItem(msg.Item)
		}
		return m, nil

	case SyncStateMsg:
		cmds := []tea.Cmd{WaitForSyncCmd(m.updates)}
		m.SyncBar.SetState(msg.State)
		if req, reload := m.ctrl.ApplySync(msg.State); reload {
			cmds = append(cmds, m.runList(req, false), m.runStats())
		}
		m.updateLayout()
		cmds = append(cmds, m.noticeCmd())
		return m, tea.Batch(cmds...)

	case SyncStartedMsg:
		if errors.Is(msg.Err, domain.ErrSyncInProgress) {
			m.ctrl.Notify(dashboard.NoticeWarning, "A sync is already in progress")
			cmd := m.noticeCmd()
			return m, cmd
		}
		// Other outcomes arrive as monitor transitions
		if msg.Err != nil {
			m.logger.Debug("sync start returned", "error", msg.Err)
		}
		return m, nil

	case BrowserOpenedMsg:
		m.ctrl.Notify(dashboard.NoticeInfo, "Opened in browser")
		cmd := m.noticeCmd()
		return m, cmd

	case ErrMsg:
		m.logger.Error("action failed", "context", msg.Context, "error", msg.Err)
		m.ctrl.Notify(dashboard.NoticeError, msg.Error())
		cmd := m.noticeCmd()
		return m, cmd

	case ClearNoticeMsg:
		m.ctrl.ClearNotice(msg.ID)
		return m, nil
	}

	if m.Search.IsActive() {
		var cmd tea.Cmd
		m.Search, cmd, _ = m.Search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// runList starts a list request and updates the list chrome for it
func (m *Model) runList(req dashboard.ListRequest, resetCursor bool) tea.Cmd {
	if resetCursor {
		m.List.ResetCursor()
	}
	m.List.SetLoading(true)
	m.List.SetHighlight(req.Query.Search)
	return LoadItemsCmd(m.items, req)
}

// runStats starts a stats refresh
func (m *Model) runStats() tea.Cmd {
	m.StatsPanel.SetLoading(true)
	return LoadStatsCmd(m.stats, m.ctrl.RefreshStats())
}

// noticeCmd schedules expiry of a newly raised notice
func (m *Model) noticeCmd() tea.Cmd {
	n, ok := m.ctrl.Notice()
	if !ok || n.ID == m.scheduledNotice {
		return nil
	}
	m.scheduledNotice = n.ID
	ttl := infoNoticeTTL
	if n.Level != dashboard.NoticeInfo {
		ttl = alertNoticeTTL
	}
	return ClearNoticeCmd(n.ID, ttl)
}

// TickMsg drives the loading spinner
type TickMsg struct{}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}
