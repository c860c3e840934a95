// Package dashboard holds the view state of the item dashboard. The
// Controller is pure state: it never performs I/O itself but returns the
// requests the caller must run, and accepts their results back.
package dashboard

import (
	"log/slog"
	"strings"

	"github.com/mmcdole/loofah/internal/domain"
)

// DefaultPageSize is used when Options.PageSize is not positive
const DefaultPageSize = 20

// ListRequest is a list query the caller must run and hand back to ApplyList
// together with Seq.
type ListRequest struct {
	Seq   uint64
	Query domain.ListQuery
}

// StatsRequest is a stats fetch the caller must run and hand back to
// ApplyStats together with Seq.
type StatsRequest struct {
	Seq uint64
}

// NoticeLevel ranks a user-visible notice
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// Notice is a one-line message for the status bar. ID increases with every
// notice raised, so a repeated text is still a new notice.
type Notice struct {
	ID    int
	Level NoticeLevel
	Text  string
}

// Options configures a Controller
type Options struct {
	Category domain.Category
	PageSize int
	Logger   *slog.Logger
}

// Controller is the dashboard page state
type Controller struct {
	logger *slog.Logger

	query domain.ListQuery

	listSeq      uint64
	list         domain.ListResult
	hasList      bool
	listLoading  bool
	statsSeq     uint64
	stats        domain.StatsSnapshot
	hasStats     bool
	statsLoading bool

	sync       domain.SyncState
	settledJob string // last job whose terminal state was handled

	notice    Notice
	hasNotice bool
	noticeSeq int
}

// New creates a controller for a freshly mounted dashboard
func New(opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Category == "" {
		opts.Category = domain.CategoryAll
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Controller{
		logger: opts.Logger,
		query: domain.ListQuery{
			Category: opts.Category,
			Page:     1,
			PageSize: opts.PageSize,
		},
		sync: domain.SyncState{Phase: domain.PhaseIdle},
	}
}

// Query returns the current list parameters
func (c *Controller) Query() domain.ListQuery { return c.query }

// Mount issues the initial list and stats loads
func (c *Controller) Mount() (ListRequest, StatsRequest) {
	return c.issueList(), c.RefreshStats()
}

// Reload re-issues the current list query unchanged
func (c *Controller) Reload() ListRequest { return c.issueList() }

// RefreshStats issues a stats fetch
func (c *Controller) RefreshStats() StatsRequest {
	c.statsSeq++
	c.statsLoading = true
	return StatsRequest{Seq: c.statsSeq}
}

// SetCategory switches the type filter and returns to the first page. It
// reports false and issues nothing when the category is unchanged.
func (c *Controller) SetCategory(cat domain.Category) (ListRequest, bool) {
	if cat == "" {
		cat = domain.CategoryAll
	}
	if cat == c.query.Category {
		return ListRequest{}, false
	}
	c.query.Category = cat
	c.query.Page = 1
	return c.issueList(), true
}

// SetSearch replaces the search text and returns to the first page.
// Surrounding whitespace is ignored, so a blank search equals no search.
func (c *Controller) SetSearch(text string) (ListRequest, bool) {
	text = strings.TrimSpace(text)
	if text == c.query.Search {
		return ListRequest{}, false
	}
	c.query.Search = text
	c.query.Page = 1
	return c.issueList(), true
}

// ToggleNewOnly flips the new-items filter and returns to the first page
func (c *Controller) ToggleNewOnly() ListRequest {
	c.query.NewOnly = !c.query.NewOnly
	c.query.Page = 1
	return c.issueList()
}

// SetPage moves to page p, clamped to the known page range
func (c *Controller) SetPage(p int) (ListRequest, bool) {
	if p < 1 {
		p = 1
	}
	if c.hasList && p > c.list.PageCount() {
		p = c.list.PageCount()
	}
	if p == c.query.Page {
		return ListRequest{}, false
	}
	c.query.Page = p
	return c.issueList(), true
}

// NextPage advances one page if there is one
func (c *Controller) NextPage() (ListRequest, bool) { return c.SetPage(c.query.Page + 1) }

// PrevPage goes back one page if there is one
func (c *Controller) PrevPage() (ListRequest, bool) { return c.SetPage(c.query.Page - 1) }

func (c *Controller) issueList() ListRequest {
	c.listSeq++
	c.listLoading = true
	return ListRequest{Seq: c.listSeq, Query: c.query}
}

// ApplyList accepts the outcome of a ListRequest. Responses to superseded
// requests are dropped and it reports false. A failure keeps the previous
// page on screen and raises an error notice.
func (c *Controller) ApplyList(seq uint64, result domain.ListResult, err error) bool {
	if seq != c.listSeq {
		c.logger.Debug("discarding stale list response", "seq", seq, "current", c.listSeq)
		return false
	}
	c.listLoading = false

	if err != nil {
		c.logger.Warn("list load failed", "error", err)
		c.setNotice(NoticeError, "Failed to load items: "+domain.UserMessage(err))
		return true
	}

	c.list = result
	c.hasList = true
	return true
}

// ApplyStats accepts the outcome of a StatsRequest, with the same rules as
// ApplyList.
func (c *Controller) ApplyStats(seq uint64, stats domain.StatsSnapshot, err error) bool {
	if seq != c.statsSeq {
		return false
	}
	c.statsLoading = false

	if err != nil {
		c.logger.Warn("stats load failed", "error", err)
		c.setNotice(NoticeError, "Failed to load stats: "+domain.UserMessage(err))
		return true
	}

	c.stats = stats
	c.hasStats = true
	return true
}

// List returns the last successfully loaded page
func (c *Controller) List() (domain.ListResult, bool) { return c.list, c.hasList }

// Stats returns the last successfully loaded stats
func (c *Controller) Stats() (domain.StatsSnapshot, bool) { return c.stats, c.hasStats }

// ListLoading reports whether the latest list request is outstanding
func (c *Controller) ListLoading() bool { return c.listLoading }

// StatsLoading reports whether the latest stats request is outstanding
func (c *Controller) StatsLoading() bool { return c.statsLoading }

// SyncState returns the latest monitor snapshot seen
func (c *Controller) SyncState() domain.SyncState { return c.sync }

// SyncInProgress is derived from the monitor phase only
func (c *Controller) SyncInProgress() bool { return c.sync.Phase.Active() }

// CanStartSync returns domain.ErrSyncInProgress, and raises a notice, while
// a job is Starting or Polling.
func (c *Controller) CanStartSync() error {
	if c.SyncInProgress() {
		c.setNotice(NoticeWarning, "A sync is already in progress")
		return domain.ErrSyncInProgress
	}
	return nil
}

// ApplySync records a monitor snapshot. The first time a job is seen in a
// terminal phase its outcome is surfaced; on Succeeded a reload of the
// current page is returned.
func (c *Controller) ApplySync(state domain.SyncState) (ListRequest, bool) {
	c.sync = state

	if !state.Phase.Terminal() || state.JobID == c.settledJob {
		return ListRequest{}, false
	}
	c.settledJob = state.JobID

	switch state.Phase {
	case domain.PhaseSucceeded:
		c.setNotice(NoticeInfo, "Sync complete")
		return c.issueList(), true
	case domain.PhaseFailed:
		c.setNotice(NoticeError, "Sync failed: "+state.Message)
	case domain.PhaseTimedOut:
		c.setNotice(NoticeWarning, "Sync timed out; data may still be updating on the server")
	}
	return ListRequest{}, false
}

// Notice returns the current notice, if any
func (c *Controller) Notice() (Notice, bool) { return c.notice, c.hasNotice }

// Notify raises a notice for an outcome the controller does not track
// itself, such as opening a browser.
func (c *Controller) Notify(level NoticeLevel, text string) {
	c.setNotice(level, text)
}

// ClearNotice dismisses the notice with the given ID. A newer notice stays.
func (c *Controller) ClearNotice(id int) {
	if !c.hasNotice || c.notice.ID != id {
		return
	}
	c.notice = Notice{}
	c.hasNotice = false
}

func (c *Controller) setNotice(level NoticeLevel, text string) {
	c.noticeSeq++
	c.notice = Notice{ID: c.noticeSeq, Level: level, Text: text}
	c.hasNotice = true
}
