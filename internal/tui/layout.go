package tui

// Chrome rows around the main pane
const (
	// header, tabs, search line, status bar
	ChromeHeight = 4

	// progress bar and sync message
	SyncChromeHeight = 2

	MinContentHeight = 5
)

// contentHeight is what remains for the main pane
func (m Model) contentHeight() int {
	h := m.Height - ChromeHeight
	if m.SyncBar.Active() {
		h -= SyncChromeHeight
	}
	return max(h, MinContentHeight)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	h := m.contentHeight()
	m.List.SetSize(m.Width, h)
	m.Inspector.SetSize(m.Width, h)
	m.StatsPanel.SetSize(m.Width, h)
	m.Search.SetWidth(m.Width)
	m.SyncBar.SetWidth(m.Width)
	m.Help.Width = m.Width
}
