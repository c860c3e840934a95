package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mmcdole/loofah/internal/dashboard"
	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	parts := []string{m.renderHeader()}
	if m.SyncBar.Active() {
		parts = append(parts, m.SyncBar.View(time.Now()))
	}
	parts = append(parts, m.renderTabs(), m.Search.View())

	switch {
	case m.ShowHelp:
		parts = append(parts, m.renderHelp())
	case m.Mode == ViewDetail:
		parts = append(parts, m.Inspector.View())
	case m.Mode == ViewStats:
		parts = append(parts, m.StatsPanel.View())
	default:
		parts = append(parts, m.List.View())
	}

	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("Loofah") + styles.DimStyle.Render(" job board")
	if stats, ok := m.ctrl.Stats(); ok {
		title += styles.DimStyle.Render(fmt.Sprintf("  ·  %s total, %s new today",
			humanize.Comma(int64(stats.Total)), humanize.Comma(int64(stats.TodayNew))))
	}

	button := m.SyncBar.Button()
	gap := m.Width - lipgloss.Width(title) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + button
}

func (m Model) renderTabs() string {
	q := m.ctrl.Query()
	tabs := make([]string, 0, len(domain.Categories)+1)
	for i, c := range domain.Categories {
		label := fmt.Sprintf("%d %s", i+1, c.Label())
		if c == q.Category {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}
	newOnly := styles.TabStyle.Render("n new only")
	if q.NewOnly {
		newOnly = styles.ActiveTabStyle.Render("n new only")
	}
	tabs = append(tabs, newOnly)
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	if n, ok := m.ctrl.Notice(); ok {
		switch n.Level {
		case dashboard.NoticeError:
			return styles.ErrorStyle.Render("✗ " + n.Text)
		case dashboard.NoticeWarning:
			return styles.WarningStyle.Render("! " + n.Text)
		default:
			return styles.SuccessStyle.Render("✓ " + n.Text)
		}
	}
	return m.Help.View(Keys)
}

func (m Model) renderHelp() string {
	content := styles.AccentStyle.Render("Keyboard shortcuts") + "\n\n" + m.Help.View(Keys) +
		"\n\n" + styles.DimStyle.Render("Press ? or esc to close")
	return styles.InactiveBorder.
		Width(max(m.Width-2, 1)).
		Height(max(m.contentHeight()-2, 1)).
		Padding(1, 2).
		Render(content)
}

// listTitle describes the active filters above the list
func listTitle(q domain.ListQuery, total int) string {
	var b strings.Builder
	b.WriteString(q.Category.Label())
	if q.Search != "" {
		fmt.Fprintf(&b, " · %q", q.Search)
	}
	if q.NewOnly {
		b.WriteString(" · new only")
	}
	if total > 0 {
		fmt.Fprintf(&b, " · page %d", max(q.Page, 1))
	}
	return b.String()
}
