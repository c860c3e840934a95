package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/loofah/internal/dashboard"
	"github.com/mmcdole/loofah/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The search input swallows every key while focused
	if m.Search.IsActive() {
		var cmd tea.Cmd
		var submitted bool
		m.Search, cmd, submitted = m.Search.Update(msg)
		if submitted {
			if req, ok := m.ctrl.SetSearch(m.Search.Value()); ok {
				next := tea.Batch(cmd, m.runList(req, true))
				return m, next
			}
		}
		return m, cmd
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Help, Keys.Back, Keys.Quit) {
			m.ShowHelp = false
			m.Help.ShowAll = false
		}
		return m, nil
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		m.Help.ShowAll = true
		return m, nil

	case key.Matches(msg, Keys.Sync):
		if err := m.ctrl.CanStartSync(); err != nil {
			cmd := m.noticeCmd()
			return m, cmd
		}
		return m, StartSyncCmd(m.sync)

	case key.Matches(msg, Keys.Refresh):
		cmd := tea.Batch(m.runList(m.ctrl.Reload(), false), m.runStats())
		return m, cmd
	}

	switch m.Mode {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewStats:
		return m.handleStatsKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		m.List.MoveUp()
	case key.Matches(msg, Keys.Down):
		m.List.MoveDown()
	case key.Matches(msg, Keys.Home):
		m.List.MoveTop()
	case key.Matches(msg, Keys.End):
		m.List.MoveBottom()

	case key.Matches(msg, Keys.PrevPage):
		cmd := m.listIf(m.ctrl.PrevPage())
		return m, cmd
	case key.Matches(msg, Keys.NextPage):
		cmd := m.listIf(m.ctrl.NextPage())
		return m, cmd

	case key.Matches(msg, Keys.Search):
		cmd := m.Search.Focus()
		return m, cmd
	case key.Matches(msg, Keys.ClearSearch):
		m.Search.Clear()
		cmd := m.listIf(m.ctrl.SetSearch(""))
		return m, cmd

	case key.Matches(msg, Keys.NextTab):
		cmd := m.listIf(m.ctrl.SetCategory(m.ctrl.Query().Category.Next()))
		return m, cmd
	case key.Matches(msg, Keys.TabAll):
		cmd := m.listIf(m.ctrl.SetCategory(domain.CategoryAll))
		return m, cmd
	case key.Matches(msg, Keys.TabIntern):
		cmd := m.listIf(m.ctrl.SetCategory(domain.CategoryIntern))
		return m, cmd
	case key.Matches(msg, Keys.TabCampus):
		cmd := m.listIf(m.ctrl.SetCategory(domain.CategoryCampus))
		return m, cmd
	case key.Matches(msg, Keys.TabExpert):
		cmd := m.listIf(m.ctrl.SetCategory(domain.CategoryExperienced))
		return m, cmd
	case key.Matches(msg, Keys.ToggleNew):
		cmd := m.runList(m.ctrl.ToggleNewOnly(), true)
		return m, cmd

	case key.Matches(msg, Keys.Enter):
		item, ok := m.List.Selected()
		if !ok {
			return m, nil
		}
		m.Mode = ViewDetail
		m.Inspector.SetItem(item)
		m.Inspector.SetLoading(true)
		return m, LoadItemCmd(m.items, item.ID)

	case key.Matches(msg, Keys.Open):
		if item, ok := m.List.Selected(); ok {
			cmd := m.openItem(item)
			return m, cmd
		}

	case key.Matches(msg, Keys.Stats):
		m.Mode = ViewStats
		if _, ok := m.ctrl.Stats(); !ok && !m.ctrl.StatsLoading() {
			cmd := m.runStats()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.Mode = ViewList
		return m, nil
	case key.Matches(msg, Keys.Open):
		if item, ok := m.Inspector.Item(); ok {
			cmd := m.openItem(item)
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, Keys.Stats):
		m.Mode = ViewStats
		return m, nil
	}

	var cmd tea.Cmd
	m.Inspector, cmd = m.Inspector.Update(msg)
	return m, cmd
}

func (m Model) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Back, Keys.Stats) {
		m.Mode = ViewList
	}
	return m, nil
}

// listIf runs a controller request when the input actually changed it
func (m *Model) listIf(req dashboard.ListRequest, changed bool) tea.Cmd {
	if !changed {
		return nil
	}
	return m.runList(req, true)
}

func (m *Model) openItem(item domain.Item) tea.Cmd {
	url := item.URL()
	if url == "" {
		m.ctrl.Notify(dashboard.NoticeWarning, "This item has no link")
		return m.noticeCmd()
	}
	if m.browser == nil {
		return nil
	}
	return OpenURLCmd(m.browser, url)
}
