package components

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/tui/styles"
)

// Inspector shows every detail of one item in a scrollable viewport
type Inspector struct {
	item    domain.Item
	hasItem bool
	loading bool
	width   int
	height  int
	vp      viewport.Model
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{vp: viewport.New(0, 0)}
}

// SetItem sets the item to display and scrolls back to the top
func (i *Inspector) SetItem(item domain.Item) {
	i.item = item
	i.hasItem = true
	i.loading = false
	i.refresh()
	i.vp.GotoTop()
}

// SetLoading shows a placeholder while the full item is fetched
func (i *Inspector) SetLoading(loading bool) { i.loading = loading }

// Item returns the displayed item
func (i Inspector) Item() (domain.Item, bool) { return i.item, i.hasItem }

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	i.vp.Width = max(width-BorderWidth-2, 10)
	i.vp.Height = max(height-BorderHeight-2, 1)
	i.refresh()
}

// Update forwards scrolling keys to the viewport
func (i Inspector) Update(msg tea.Msg) (Inspector, tea.Cmd) {
	var cmd tea.Cmd
	i.vp, cmd = i.vp.Update(msg)
	return i, cmd
}

// View renders the component
func (i Inspector) View() string {
	contentWidth := max(i.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate("Details", contentWidth))

	body := i.vp.View()
	if i.loading && !i.hasItem {
		body = styles.DimStyle.Render("Loading...")
	}

	footer := styles.DimStyle.Render("esc back · o open in browser")
	if !i.vp.AtBottom() {
		footer = styles.DimStyle.Render("↓ more · ") + footer
	}

	return styles.ActiveBorder.
		Width(max(i.width-BorderWidth, 1)).
		Height(max(i.height-BorderHeight, 1)).
		Render(titleLine + "\n" + body + "\n" + footer)
}

func (i *Inspector) refresh() {
	if !i.hasItem {
		return
	}
	i.vp.SetContent(renderItemDetail(i.item, i.vp.Width, time.Now()))
}

// renderItemDetail lays out the known fields first, then every other
// pass-through field.
func renderItemDetail(item domain.Item, width int, now time.Time) string {
	var b strings.Builder

	title := item.Title()
	if title == "" {
		title = item.ID
	}
	b.WriteString(styles.TitleStyle.Render(title))
	if item.IsNew() {
		b.WriteString(" " + styles.NewBadgeStyle.Render("NEW"))
	}
	b.WriteString("\n")
	if sub := item.Subtitle(); sub != "" {
		b.WriteString(styles.SubtitleStyle.Render(sub) + "\n")
	}
	b.WriteString("\n")

	published := ""
	if t, ok := item.PublishedAt(); ok {
		published = t.Format("2006-01-02") + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
	}

	facts := [][2]string{
		{"Type", item.TypeName()},
		{"Category", item.SheetName()},
		{"City", item.City()},
		{"Salary", item.SalaryRange()},
		{"Degree", item.Degree()},
		{"Experience", item.Experience()},
		{"Department", item.Department()},
		{"Published", published},
		{"URL", item.URL()},
	}
	for _, f := range facts {
		if f[1] == "" {
			continue
		}
		b.WriteString(styles.DimStyle.Render(styles.Pad(f[0], 12)))
		b.WriteString(f[1])
		b.WriteString("\n")
	}

	wrap := lipgloss.NewStyle().Width(max(width, 10))
	for _, section := range [][2]string{
		{"Description", item.Description()},
		{"Requirements", item.Requirement()},
	} {
		if section[1] == "" {
			continue
		}
		b.WriteString("\n" + styles.AccentStyle.Render(section[0]) + "\n")
		b.WriteString(wrap.Render(section[1]))
		b.WriteString("\n")
	}

	var extra []string
	for key := range item.Fields {
		if !detailFields[key] && item.Field(key) != "" {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		b.WriteString("\n" + styles.AccentStyle.Render("Other fields") + "\n")
		for _, key := range extra {
			b.WriteString(styles.DimStyle.Render(styles.Pad(styles.Truncate(key, 15), 16)))
			b.WriteString(styles.Truncate(item.Field(key), max(width-16, 10)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// detailFields are rendered above; everything else is listed as-is
var detailFields = map[string]bool{
	"_id": true, "id": true, "title": true, "sub_title": true, "is_new": true,
	"type_name": true, "sheet_name": true, "city_list": true,
	"min_salary": true, "max_salary": true, "degree": true, "experience": true,
	"department": true, "publish_time": true, "pc_job_url": true, "wap_job_url": true,
	"description": true, "requirement": true,
}
