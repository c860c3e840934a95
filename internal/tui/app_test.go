package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/loofah/internal/adapter"
	"github.com/mmcdole/loofah/internal/domain"
)

type fakeItems struct {
	mu      sync.Mutex
	queries []domain.ListQuery
	total   int
	items   []domain.Item
}

func (f *fakeItems) ListItems(_ context.Context, q domain.ListQuery) (domain.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return domain.ListResult{Items: f.items, Total: f.total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (f *fakeItems) GetItem(_ context.Context, id string) (domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.Item{}, domain.ErrNotFound
}

func (f *fakeItems) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeStats struct{ calls int }

func (f *fakeStats) GetStats(context.Context) (domain.StatsSnapshot, error) {
	f.calls++
	return domain.StatsSnapshot{Total: 1234, TodayNew: 5}, nil
}

type fakeSync struct {
	mu     sync.Mutex
	starts int
}

func (f *fakeSync) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	return nil
}

type fakeOpener struct{ urls []string }

func (f *fakeOpener) Open(u string) error {
	f.urls = append(f.urls, u)
	return nil
}

type fixture struct {
	items  *fakeItems
	stats  *fakeStats
	sync   *fakeSync
	opener *fakeOpener
}

func newTestModel(t *testing.T) (Model, *fixture) {
	t.Helper()
	f := &fixture{
		items: &fakeItems{
			total: 100,
			items: []domain.Item{
				{ID: "j1", Fields: map[string]any{"_id": "j1", "title": "Backend Engineer", "pc_job_url": "https://jobs.example.com/j1"}},
				{ID: "j2", Fields: map[string]any{"_id": "j2", "title": "SRE"}},
			},
		},
		stats:  &fakeStats{},
		sync:   &fakeSync{},
		opener: &fakeOpener{},
	}
	updates := make(chan domain.SyncState)
	t.Cleanup(func() { close(updates) })

	m := NewModel(Options{
		Items:   f.items,
		Stats:   f.stats,
		Sync:    f.sync,
		Browser: f.opener,
		Updates: updates,
		Logger:  adapter.NullLogger(),
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, f
}

// collect runs cmd and returns the messages that arrive promptly. Blocking
// commands (sync listener, tickers, notice expiry) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var msgs []tea.Msg
			for _, c := range batch {
				msgs = append(msgs, collect(c)...)
			}
			return msgs
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// send delivers msg and feeds every prompt follow-up message back in
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, follow := range collect(cmd) {
		m = send(t, m, follow)
	}
	return m
}

// boot runs Init and feeds its results back in
func boot(t *testing.T, m Model) Model {
	t.Helper()
	for _, msg := range collect(m.Init()) {
		m = send(t, m, msg)
	}
	return m
}

func press(keys string) tea.KeyMsg {
	switch keys {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
}

func TestInit_LoadsListAndStats(t *testing.T) {
	m, f := newTestModel(t)
	m = boot(t, m)

	require.Equal(t, 1, f.items.count())
	assert.Equal(t, domain.ListQuery{Category: domain.CategoryAll, Page: 1, PageSize: 20}, f.items.queries[0])
	assert.Equal(t, 1, f.stats.calls)

	assert.Equal(t, 2, m.List.Len())
	_, ok := m.Controller().Stats()
	assert.True(t, ok)
	assert.False(t, m.Controller().ListLoading())

	view := m.View()
	assert.Contains(t, view, "Backend Engineer")
	assert.Contains(t, view, "1,234")
}

func TestSearchSubmit_ResetsToFirstPage(t *testing.T) {
	m, f := newTestModel(t)
	m = boot(t, m)

	m = send(t, m, press("l"))
	require.Equal(t, 2, f.items.count())
	assert.Equal(t, 2, f.items.queries[1].Page)

	m = send(t, m, press("/"))
	require.True(t, m.Search.IsActive())
	m = send(t, m, press("go"))
	// Typing alone issues nothing
	assert.Equal(t, 2, f.items.count())

	m = send(t, m, press("enter"))
	require.Equal(t, 3, f.items.count())
	q := f.items.queries[2]
	assert.Equal(t, "go", q.Search)
	assert.Equal(t, 1, q.Page)
	assert.False(t, m.Search.IsActive())
	assert.Equal(t, "go", m.Controller().Query().Search)
}

func TestCategoryKeys(t *testing.T) {
	m, f := newTestModel(t)
	m = boot(t, m)

	m = send(t, m, press("3"))
	assert.Equal(t, domain.CategoryCampus, f.items.queries[f.items.count()-1].Category)

	// Same tab again changes nothing
	before := f.items.count()
	m = send(t, m, press("3"))
	assert.Equal(t, before, f.items.count())

	send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.CategoryExperienced, f.items.queries[f.items.count()-1].Category)
}

func TestStaleListResponseIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	first, _ := m.Controller().Mount()
	second, _ := m.Controller().SetCategory(domain.CategoryIntern)

	stale := domain.ListResult{Items: []domain.Item{{ID: "old"}}, Total: 1, PageSize: 20}
	m = send(t, m, ItemsLoadedMsg{Request: first, Result: stale})
	assert.Equal(t, 0, m.List.Len())

	fresh := domain.ListResult{Items: []domain.Item{{ID: "a"}, {ID: "b"}}, Total: 2, PageSize: 20}
	m = send(t, m, ItemsLoadedMsg{Request: second, Result: fresh})
	assert.Equal(t, 2, m.List.Len())
}

func TestSyncKey_RejectedWhileActive(t *testing.T) {
	m, f := newTestModel(t)
	m = boot(t, m)

	m = send(t, m, SyncStateMsg{State: domain.SyncState{JobID: "j", Phase: domain.PhasePolling, Progress: 40}})
	assert.Contains(t, m.View(), "Syncing 40%")

	m = send(t, m, press("s"))
	assert.Equal(t, 0, f.sync.starts)
	n, ok := m.Controller().Notice()
	require.True(t, ok)
	assert.Contains(t, n.Text, "already in progress")

	m = send(t, m, SyncStateMsg{State: domain.SyncState{JobID: "j", Phase: domain.PhaseFailed, Message: "boom"}})
	send(t, m, press("s"))
	assert.Equal(t, 1, f.sync.starts)
}

func TestSyncSucceeded_ReloadsOnce(t *testing.T) {
	m, f := newTestModel(t)
	m = boot(t, m)
	require.Equal(t, 1, f.items.count())

	m = send(t, m, SyncStateMsg{State: domain.SyncState{JobID: "j", Phase: domain.PhaseStarting, Progress: 10}})
	m = send(t, m, SyncStateMsg{State: domain.SyncState{JobID: "j", Phase: domain.PhasePolling, Progress: 60}})
	assert.Equal(t, 1, f.items.count())

	done := domain.SyncState{JobID: "j", Phase: domain.PhaseSucceeded, Progress: 100}
	m = send(t, m, SyncStateMsg{State: done})
	assert.Equal(t, 2, f.items.count())
	assert.Equal(t, 2, f.stats.calls)

	send(t, m, SyncStateMsg{State: done})
	assert.Equal(t, 2, f.items.count())
}

func TestDetailAndOpen(t *testing.T) {
	m, f := newTestModel(t)
	m = boot(t, m)

	m = send(t, m, press("enter"))
	require.Equal(t, ViewDetail, m.Mode)
	item, ok := m.Inspector.Item()
	require.True(t, ok)
	assert.Equal(t, "j1", item.ID)

	m = send(t, m, press("o"))
	assert.Equal(t, []string{"https://jobs.example.com/j1"}, f.opener.urls)

	m = send(t, m, press("esc"))
	assert.Equal(t, ViewList, m.Mode)

	// The second row has no link
	m = send(t, m, press("j"))
	m = send(t, m, press("o"))
	assert.Len(t, f.opener.urls, 1)
	n, ok := m.Controller().Notice()
	require.True(t, ok)
	assert.Contains(t, n.Text, "no link")
}

func TestClearNotice_OnlyMatchingID(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, SyncStateMsg{State: domain.SyncState{JobID: "a", Phase: domain.PhaseFailed, Message: "first"}})
	first, _ := m.Controller().Notice()
	m = send(t, m, SyncStateMsg{State: domain.SyncState{JobID: "b", Phase: domain.PhaseFailed, Message: "second"}})

	m = send(t, m, ClearNoticeMsg{ID: first.ID})
	n, ok := m.Controller().Notice()
	require.True(t, ok)
	assert.Contains(t, n.Text, "second")

	m = send(t, m, ClearNoticeMsg{ID: n.ID})
	_, ok = m.Controller().Notice()
	assert.False(t, ok)
	assert.False(t, strings.Contains(m.View(), "second"))
}

func TestChannelObserver_LatestWins(t *testing.T) {
	o := NewChannelObserver()
	o.OnSyncState(domain.SyncState{Phase: domain.PhaseStarting})
	o.OnSyncState(domain.SyncState{Phase: domain.PhasePolling, Progress: 40})
	o.OnSyncState(domain.SyncState{Phase: domain.PhaseSucceeded, Progress: 100})

	got := <-o.Updates()
	assert.Equal(t, domain.PhaseSucceeded, got.Phase)

	select {
	case extra := <-o.Updates():
		t.Fatalf("unexpected extra state %v", extra.Phase)
	default:
	}
}

func TestWaitForSyncCmd(t *testing.T) {
	assert.Nil(t, WaitForSyncCmd(nil))

	ch := make(chan domain.SyncState, 1)
	ch <- domain.SyncState{JobID: "j", Phase: domain.PhasePolling}
	msg := WaitForSyncCmd(ch)()
	assert.Equal(t, SyncStateMsg{State: domain.SyncState{JobID: "j", Phase: domain.PhasePolling}}, msg)

	close(ch)
	assert.Nil(t, WaitForSyncCmd(ch)())
}
