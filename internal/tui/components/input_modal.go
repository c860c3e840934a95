package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/loofah/internal/tui/styles"
)

// SearchBar is the inline search input above the list
type SearchBar struct {
	active    bool
	committed string // value last submitted
	input     textinput.Model
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search titles..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Focus starts editing with the committed value
func (s *SearchBar) Focus() tea.Cmd {
	s.active = true
	s.input.SetValue(s.committed)
	s.input.CursorEnd()
	return s.input.Focus()
}

// Blur stops editing, discarding uncommitted text
func (s *SearchBar) Blur() {
	s.active = false
	s.input.SetValue(s.committed)
	s.input.Blur()
}

// Clear drops the committed value
func (s *SearchBar) Clear() {
	s.committed = ""
	s.input.SetValue("")
}

// IsActive returns whether the input has focus
func (s SearchBar) IsActive() bool { return s.active }

// Value returns the committed search
func (s SearchBar) Value() string { return s.committed }

// SetWidth sets the input width
func (s *SearchBar) SetWidth(width int) { s.input.Width = max(width-12, 10) }

// Update handles input events, returns (bar, cmd, submitted)
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.active {
		return s, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			s.committed = s.input.Value()
			s.active = false
			s.input.Blur()
			return s, nil, true
		case "esc":
			s.Blur()
			return s, nil, false
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

// View renders the search line
func (s SearchBar) View() string {
	prompt := styles.FilterPromptStyle.Render("/ ")
	if s.active {
		return prompt + s.input.View()
	}
	if s.committed == "" {
		return prompt + styles.DimStyle.Render("press / to search")
	}
	return prompt + s.committed + styles.DimStyle.Render("  (x to clear)")
}
