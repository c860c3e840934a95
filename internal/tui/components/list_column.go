package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/tui/styles"
)

// Spinner frames for loading animation
var listColumnSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Title line and paginator line
	listChromeLines = 2
)

// ListColumn is a scrollable list of one server page of items
type ListColumn struct {
	rows []ItemRow

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width  int
	height int

	title        string
	highlight    string
	loading      bool
	spinnerFrame int
	total        int

	pager paginator.Model
	now   func() time.Time
}

// NewListColumn creates an empty list
func NewListColumn() ListColumn {
	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = styles.AccentStyle.Render("•")
	p.InactiveDot = styles.DimStyle.Render("•")
	return ListColumn{pager: p, now: time.Now}
}

// SetItems replaces the rows with one page of results
func (c *ListColumn) SetItems(result domain.ListResult) {
	c.rows = WrapItems(result.Items)
	c.total = result.Total
	c.loading = false
	c.pager.TotalPages = max(result.PageCount(), 1)
	c.pager.Page = max(result.Page, 1) - 1
	if c.pager.TotalPages > 10 {
		c.pager.Type = paginator.Arabic
	} else {
		c.pager.Type = paginator.Dots
	}
	if c.cursor >= len(c.rows) {
		c.cursor = max(len(c.rows)-1, 0)
	}
	c.ensureVisible()
}

// ResetCursor moves the selection back to the first row
func (c *ListColumn) ResetCursor() {
	c.cursor = 0
	c.offset = 0
}

// SetTitle sets the header line
func (c *ListColumn) SetTitle(title string) { c.title = title }

// SetHighlight sets the search term to highlight in titles
func (c *ListColumn) SetHighlight(term string) { c.highlight = term }

// SetLoading toggles the loading indicator
func (c *ListColumn) SetLoading(loading bool) { c.loading = loading }

// SetSpinnerFrame advances the loading animation
func (c *ListColumn) SetSpinnerFrame(frame int) { c.spinnerFrame = frame }

// SetSize updates the component dimensions
func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.maxVisible = max(height-BorderHeight-listChromeLines, 1)
	c.ensureVisible()
}

// Selected returns the row under the cursor
func (c ListColumn) Selected() (domain.Item, bool) {
	if c.cursor < 0 || c.cursor >= len(c.rows) {
		return domain.Item{}, false
	}
	return c.rows[c.cursor].Item, true
}

// Cursor returns the selected index
func (c ListColumn) Cursor() int { return c.cursor }

// Len returns the number of rows on the page
func (c ListColumn) Len() int { return len(c.rows) }

// MoveUp moves the cursor one row up
func (c *ListColumn) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
		c.ensureVisible()
	}
}

// MoveDown moves the cursor one row down
func (c *ListColumn) MoveDown() {
	if c.cursor < len(c.rows)-1 {
		c.cursor++
		c.ensureVisible()
	}
}

// MoveTop jumps to the first row
func (c *ListColumn) MoveTop() {
	c.cursor = 0
	c.ensureVisible()
}

// MoveBottom jumps to the last row
func (c *ListColumn) MoveBottom() {
	c.cursor = max(len(c.rows)-1, 0)
	c.ensureVisible()
}

func (c *ListColumn) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

// View renders the component
func (c ListColumn) View() string {
	return styles.ActiveBorder.
		Width(max(c.width-BorderWidth, 1)).
		Height(max(c.height-BorderHeight, 1)).
		Render(c.renderContent())
}

func (c ListColumn) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading && len(c.rows) == 0 {
		spinner := listColumnSpinnerFrames[c.spinnerFrame%len(listColumnSpinnerFrames)]
		return titleLine + "\n" + styles.DimStyle.Render(spinner+" Loading...")
	}

	if len(c.rows) == 0 {
		emptyMsg := "No items"
		if c.highlight != "" {
			emptyMsg = "No matches for " + fmt.Sprintf("%q", c.highlight)
		}
		return titleLine + "\n" + styles.DimStyle.Render(emptyMsg)
	}

	var b strings.Builder
	b.WriteString(titleLine)
	b.WriteString("\n")

	end := min(c.offset+c.maxVisible, len(c.rows))
	now := c.now()
	for i := c.offset; i < end; i++ {
		b.WriteString(c.renderRow(c.rows[i], i == c.cursor, itemWidth, now))
		b.WriteString("\n")
	}

	footer := c.pager.View()
	if c.loading {
		footer += " " + styles.DimStyle.Render(listColumnSpinnerFrames[c.spinnerFrame%len(listColumnSpinnerFrames)])
	}
	footer += styles.DimStyle.Render("  " + humanize.Comma(int64(c.total)) + " items")
	b.WriteString(footer)

	return b.String()
}

func (c ListColumn) renderRow(row ItemRow, selected bool, width int, now time.Time) string {
	var badge string
	if row.Item.IsNew() {
		badge = styles.NewBadgeStyle.Render("NEW") + " "
	}

	right := row.Published(now)
	rightWidth := lipgloss.Width(right)
	available := width - lipgloss.Width(badge) - rightWidth - 2

	title := styles.Truncate(row.ItemTitle(), max(available/2, 8))
	subtitle := row.ItemSubtitle()
	if subtitle != "" {
		subtitle = "  " + styles.Truncate(subtitle, max(available-lipgloss.Width(title)-2, 0))
	}

	line := badge + highlightMatches(title, matchIndexes(c.highlight, title), selected)
	subStyle := styles.DimStyle
	if selected {
		subStyle = subStyle.Background(styles.SlateLight)
	}
	line += subStyle.Render(subtitle)

	gap := width - lipgloss.Width(line) - rightWidth
	if gap > 0 {
		pad := lipgloss.NewStyle()
		if selected {
			pad = pad.Background(styles.SlateLight)
		}
		line += pad.Render(strings.Repeat(" ", gap))
	}
	return line + subStyle.Render(right)
}
