package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/loofah/internal/adapter"
	"github.com/mmcdole/loofah/internal/domain"
)

func newTestController() *Controller {
	return New(Options{PageSize: 20, Logger: adapter.NullLogger()})
}

func page(total int, ids ...string) domain.ListResult {
	items := make([]domain.Item, len(ids))
	for i, id := range ids {
		items[i] = domain.Item{ID: id}
	}
	return domain.ListResult{Items: items, Total: total, PageSize: 20}
}

func TestMount(t *testing.T) {
	c := newTestController()
	list, stats := c.Mount()

	assert.Equal(t, domain.ListQuery{Category: domain.CategoryAll, Page: 1, PageSize: 20}, list.Query)
	assert.NotZero(t, list.Seq)
	assert.NotZero(t, stats.Seq)
	assert.True(t, c.ListLoading())
	assert.True(t, c.StatsLoading())
}

func TestFilterChangesResetPage(t *testing.T) {
	tests := []struct {
		name   string
		change func(c *Controller) (ListRequest, bool)
		check  func(t *testing.T, q domain.ListQuery)
	}{
		{
			name:   "search",
			change: func(c *Controller) (ListRequest, bool) { return c.SetSearch("backend") },
			check:  func(t *testing.T, q domain.ListQuery) { assert.Equal(t, "backend", q.Search) },
		},
		{
			name:   "category",
			change: func(c *Controller) (ListRequest, bool) { return c.SetCategory(domain.CategoryCampus) },
			check:  func(t *testing.T, q domain.ListQuery) { assert.Equal(t, domain.CategoryCampus, q.Category) },
		},
		{
			name:   "new only",
			change: func(c *Controller) (ListRequest, bool) { return c.ToggleNewOnly(), true },
			check:  func(t *testing.T, q domain.ListQuery) { assert.True(t, q.NewOnly) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			req, _ := c.Mount()
			require.True(t, c.ApplyList(req.Seq, page(100, "a"), nil))

			req, ok := c.SetPage(3)
			require.True(t, ok)
			require.Equal(t, 3, req.Query.Page)

			before := c.listSeq
			req, ok = tt.change(c)
			require.True(t, ok)

			// Exactly one new query, on page 1
			assert.Equal(t, before+1, c.listSeq)
			assert.Equal(t, c.listSeq, req.Seq)
			assert.Equal(t, 1, req.Query.Page)
			assert.Equal(t, 1, c.Query().Page)
			tt.check(t, req.Query)
		})
	}
}

func TestUnchangedInputIssuesNothing(t *testing.T) {
	c := newTestController()
	c.Mount()
	before := c.listSeq

	_, ok := c.SetCategory(domain.CategoryAll)
	assert.False(t, ok)
	_, ok = c.SetCategory("")
	assert.False(t, ok)
	_, ok = c.SetSearch("   ")
	assert.False(t, ok)
	_, ok = c.SetPage(1)
	assert.False(t, ok)
	assert.Equal(t, before, c.listSeq)
}

func TestSearchTrimmed(t *testing.T) {
	c := newTestController()
	req, ok := c.SetSearch("  sre  ")
	require.True(t, ok)
	assert.Equal(t, "sre", req.Query.Search)

	_, ok = c.SetSearch("sre")
	assert.False(t, ok)
}

func TestPagingClampedToPageCount(t *testing.T) {
	c := newTestController()
	req, _ := c.Mount()
	c.ApplyList(req.Seq, page(45, "a", "b"), nil) // 3 pages

	_, ok := c.PrevPage()
	assert.False(t, ok)

	req, ok = c.SetPage(10)
	require.True(t, ok)
	assert.Equal(t, 3, req.Query.Page)

	_, ok = c.NextPage()
	assert.False(t, ok)

	req, ok = c.PrevPage()
	require.True(t, ok)
	assert.Equal(t, 2, req.Query.Page)
}

func TestApplyList_DiscardsStale(t *testing.T) {
	c := newTestController()
	first, _ := c.Mount()
	second, _ := c.SetSearch("go")

	assert.False(t, c.ApplyList(first.Seq, page(1, "stale"), nil))
	_, ok := c.List()
	assert.False(t, ok)
	assert.True(t, c.ListLoading())

	assert.True(t, c.ApplyList(second.Seq, page(1, "fresh"), nil))
	got, ok := c.List()
	require.True(t, ok)
	assert.Equal(t, "fresh", got.Items[0].ID)
	assert.False(t, c.ListLoading())
}

func TestApplyList_FailureKeepsPriorData(t *testing.T) {
	c := newTestController()
	req, _ := c.Mount()
	c.ApplyList(req.Seq, page(1, "kept"), nil)

	req = c.Reload()
	err := &domain.RequestError{Op: "GET /items", Kind: domain.KindServer, Status: 500, Message: "database unavailable"}
	assert.True(t, c.ApplyList(req.Seq, domain.ListResult{}, err))

	got, ok := c.List()
	require.True(t, ok)
	assert.Equal(t, "kept", got.Items[0].ID)

	n, ok := c.Notice()
	require.True(t, ok)
	assert.Equal(t, NoticeError, n.Level)
	assert.Contains(t, n.Text, "database unavailable")
}

func TestApplyStats(t *testing.T) {
	c := newTestController()
	_, stats := c.Mount()
	newer := c.RefreshStats()

	assert.False(t, c.ApplyStats(stats.Seq, domain.StatsSnapshot{Total: 1}, nil))
	assert.True(t, c.ApplyStats(newer.Seq, domain.StatsSnapshot{Total: 2}, nil))
	got, ok := c.Stats()
	require.True(t, ok)
	assert.Equal(t, 2, got.Total)

	again := c.RefreshStats()
	c.ApplyStats(again.Seq, domain.StatsSnapshot{}, errors.New("boom"))
	got, _ = c.Stats()
	assert.Equal(t, 2, got.Total)
}

func TestSyncInProgressDerivedFromPhase(t *testing.T) {
	c := newTestController()
	for _, tt := range []struct {
		phase  domain.SyncPhase
		active bool
	}{
		{domain.PhaseIdle, false},
		{domain.PhaseStarting, true},
		{domain.PhasePolling, true},
		{domain.PhaseSucceeded, false},
		{domain.PhaseFailed, false},
		{domain.PhaseTimedOut, false},
	} {
		c.ApplySync(domain.SyncState{JobID: "j", Phase: tt.phase})
		assert.Equal(t, tt.active, c.SyncInProgress(), tt.phase.String())
		if tt.active {
			assert.ErrorIs(t, c.CanStartSync(), domain.ErrSyncInProgress)
		} else {
			assert.NoError(t, c.CanStartSync())
		}
	}
}

func TestApplySync_ReloadsOnceOnSuccess(t *testing.T) {
	c := newTestController()
	req, _ := c.Mount()
	c.ApplyList(req.Seq, page(1, "a"), nil)

	_, reload := c.ApplySync(domain.SyncState{JobID: "job-1", Phase: domain.PhaseStarting, Progress: 10})
	assert.False(t, reload)
	_, reload = c.ApplySync(domain.SyncState{JobID: "job-1", Phase: domain.PhasePolling, Progress: 40})
	assert.False(t, reload)

	before := c.listSeq
	req, reload = c.ApplySync(domain.SyncState{JobID: "job-1", Phase: domain.PhaseSucceeded, Progress: 100})
	require.True(t, reload)
	assert.Equal(t, c.Query(), req.Query)
	assert.Equal(t, before+1, c.listSeq)

	_, reload = c.ApplySync(domain.SyncState{JobID: "job-1", Phase: domain.PhaseSucceeded, Progress: 100})
	assert.False(t, reload)
	assert.Equal(t, before+1, c.listSeq)

	n, ok := c.Notice()
	require.True(t, ok)
	assert.Equal(t, NoticeInfo, n.Level)
}

func TestApplySync_FailureAndTimeoutNotices(t *testing.T) {
	c := newTestController()
	c.Mount()
	before := c.listSeq

	_, reload := c.ApplySync(domain.SyncState{JobID: "a", Phase: domain.PhaseFailed, Message: "crawler crashed"})
	assert.False(t, reload)
	n, _ := c.Notice()
	assert.Equal(t, NoticeError, n.Level)
	assert.Contains(t, n.Text, "crawler crashed")

	_, reload = c.ApplySync(domain.SyncState{JobID: "b", Phase: domain.PhaseTimedOut})
	assert.False(t, reload)
	n, _ = c.Notice()
	assert.Equal(t, NoticeWarning, n.Level)
	assert.Contains(t, n.Text, "timed out")

	assert.Equal(t, before, c.listSeq)

	// Clearing a superseded notice leaves the current one
	c.ClearNotice(n.ID - 1)
	_, ok := c.Notice()
	assert.True(t, ok)

	c.ClearNotice(n.ID)
	_, ok = c.Notice()
	assert.False(t, ok)
}
