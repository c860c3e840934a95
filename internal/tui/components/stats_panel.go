package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/tui/styles"
)

// StatsPanel renders the counters, the category distribution and the daily
// trend as bar charts.
type StatsPanel struct {
	stats    domain.StatsSnapshot
	hasStats bool
	loading  bool
	width    int
	height   int
}

// NewStatsPanel creates an empty panel
func NewStatsPanel() StatsPanel { return StatsPanel{} }

// SetStats replaces the snapshot
func (p *StatsPanel) SetStats(stats domain.StatsSnapshot) {
	p.stats = stats
	p.hasStats = true
	p.loading = false
}

// SetLoading toggles the loading indicator
func (p *StatsPanel) SetLoading(loading bool) { p.loading = loading }

// SetSize updates the component dimensions
func (p *StatsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the component
func (p StatsPanel) View() string {
	width := max(p.width-BorderWidth, 20)
	var b strings.Builder
	b.WriteString(styles.AccentStyle.Render("Statistics"))
	if p.loading {
		b.WriteString(styles.DimStyle.Render("  refreshing..."))
	}
	b.WriteString("\n\n")

	if !p.hasStats {
		b.WriteString(styles.DimStyle.Render("No statistics loaded"))
	} else {
		b.WriteString(p.renderCounters())
		b.WriteString("\n\n")
		b.WriteString(styles.TitleStyle.Render("By category") + "\n")
		b.WriteString(p.renderDistribution(width))
		b.WriteString("\n")
		b.WriteString(styles.TitleStyle.Render("Daily new items") + "\n")
		b.WriteString(p.renderTrend(width))
	}

	return styles.ActiveBorder.
		Width(max(p.width-BorderWidth, 1)).
		Height(max(p.height-BorderHeight, 1)).
		Render(b.String())
}

func (p StatsPanel) renderCounters() string {
	counter := func(label string, n int) string {
		return styles.DimStyle.Render(label+" ") + styles.TitleStyle.Render(humanize.Comma(int64(n)))
	}
	return strings.Join([]string{
		counter("Total", p.stats.Total),
		counter("Today", p.stats.TodayNew),
		counter("This week", p.stats.WeekNew),
	}, "    ")
}

func (p StatsPanel) renderDistribution(width int) string {
	if len(p.stats.TypeDistribution) == 0 {
		return styles.DimStyle.Render("no data") + "\n"
	}

	names := make([]string, 0, len(p.stats.TypeDistribution))
	peak := 0
	for name, n := range p.stats.TypeDistribution {
		names = append(names, name)
		peak = max(peak, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := p.stats.TypeDistribution[names[i]], p.stats.TypeDistribution[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})

	return renderBars(names, func(i int) int { return p.stats.TypeDistribution[names[i]] }, peak, width)
}

func (p StatsPanel) renderTrend(width int) string {
	if len(p.stats.DailyTrend) == 0 {
		return styles.DimStyle.Render("no data") + "\n"
	}
	labels := make([]string, len(p.stats.DailyTrend))
	peak := 0
	for i, pt := range p.stats.DailyTrend {
		labels[i] = pt.Date
		peak = max(peak, pt.Count)
	}
	return renderBars(labels, func(i int) int { return p.stats.DailyTrend[i].Count }, peak, width)
}

func renderBars(labels []string, value func(int) int, peak, width int) string {
	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, len([]rune(l))*2)
	}
	labelWidth = min(labelWidth, 16)
	barWidth := max(width-labelWidth-10, 5)

	var b strings.Builder
	for i, l := range labels {
		n := value(i)
		b.WriteString(styles.SubtitleStyle.Render(styles.Pad(styles.Truncate(l, labelWidth), labelWidth)))
		b.WriteString(" ")
		b.WriteString(styles.RenderBar(n, peak, barWidth))
		b.WriteString(fmt.Sprintf(" %d\n", n))
	}
	return b.String()
}
