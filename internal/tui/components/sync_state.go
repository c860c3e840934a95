package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/tui/styles"
)

// SyncIndicator renders the sync button and, while a job runs, its
// progress bar.
type SyncIndicator struct {
	state domain.SyncState
	bar   progress.Model
	width int
}

// NewSyncIndicator creates an indicator in the idle state
func NewSyncIndicator() SyncIndicator {
	return SyncIndicator{
		state: domain.SyncState{Phase: domain.PhaseIdle},
		bar:   progress.New(progress.WithSolidFill(string(styles.LoofahGreen))),
	}
}

// SetState records the latest monitor snapshot
func (s *SyncIndicator) SetState(state domain.SyncState) { s.state = state }

// SetWidth sets the progress bar width
func (s *SyncIndicator) SetWidth(width int) {
	s.width = width
	s.bar.Width = max(width-4, 10)
}

// Button renders the header button label
func (s SyncIndicator) Button() string {
	if s.state.Phase.Active() {
		return styles.SyncBusyStyle.Render(fmt.Sprintf("Syncing %d%%", s.state.Progress))
	}
	return styles.SyncButtonStyle.Render("s Sync")
}

// Active reports whether the progress line should be shown
func (s SyncIndicator) Active() bool { return s.state.Phase.Active() }

// View renders the progress bar and message. Empty when idle.
func (s SyncIndicator) View(now time.Time) string {
	if !s.Active() {
		return ""
	}
	line := s.bar.ViewAs(float64(s.state.Progress) / 100)
	detail := s.state.Message
	if !s.state.StartedAt.IsZero() {
		detail += styles.DimStyle.Render(" · started " + humanize.RelTime(s.state.StartedAt, now, "ago", "from now"))
	}
	return line + "\n" + styles.SubtitleStyle.Render(detail)
}
