package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/loofah/internal/domain"
)

func TestItemRow(t *testing.T) {
	row := ItemRow{Item: domain.Item{ID: "j1", Fields: map[string]any{
		"title":        "Backend Engineer",
		"type_name":    "Intern",
		"city_list":    []any{"Shanghai", "Beijing"},
		"min_salary":   float64(300),
		"publish_time": "2026-10-14T09:00:00",
	}}}

	assert.Equal(t, "Backend Engineer", row.ItemTitle())
	assert.Equal(t, "Intern · Shanghai, Beijing · 300+", row.ItemSubtitle())

	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2 days ago", row.Published(now))

	untitled := ItemRow{Item: domain.Item{ID: "j2"}}
	assert.Equal(t, "j2", untitled.ItemTitle())
	assert.Empty(t, untitled.ItemSubtitle())
	assert.Empty(t, untitled.Published(now))
}

func TestMatchIndexes(t *testing.T) {
	assert.Nil(t, matchIndexes("", "Backend Engineer"))
	assert.Nil(t, matchIndexes("  ", "Backend Engineer"))
	assert.Nil(t, matchIndexes("xyz", "Backend Engineer"))

	idx := matchIndexes("eng", "Backend Engineer")
	require.Len(t, idx, 3)
	for _, i := range idx {
		assert.Less(t, i, len("Backend Engineer"))
	}
}

func TestHighlightMatches_KeepsText(t *testing.T) {
	got := highlightMatches("SRE 工程师", []int{0, 4}, false)
	assert.Contains(t, got, "S")
	assert.Contains(t, got, "工")
	assert.Contains(t, got, "程师")
}

func TestListColumn_Cursor(t *testing.T) {
	c := NewListColumn()
	c.SetSize(80, 20)
	c.SetItems(domain.ListResult{
		Items:    []domain.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Total:    43,
		Page:     2,
		PageSize: 20,
	})

	c.MoveUp()
	assert.Equal(t, 0, c.Cursor())
	c.MoveBottom()
	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "c", sel.ID)
	c.MoveDown()
	assert.Equal(t, 2, c.Cursor())

	c.ResetCursor()
	assert.Equal(t, 0, c.Cursor())
	assert.Contains(t, c.View(), "43")
}

func TestStatsPanel_View(t *testing.T) {
	p := NewStatsPanel()
	p.SetSize(80, 30)
	p.SetStats(domain.StatsSnapshot{
		Total:            12345,
		TodayNew:         7,
		WeekNew:          70,
		TypeDistribution: map[string]int{"intern": 9000, "campus": 3345},
		DailyTrend:       []domain.TrendPoint{{Date: "2026-10-15", Count: 7}},
	})

	view := p.View()
	assert.Contains(t, view, "12,345")
	assert.Contains(t, view, "intern")
	assert.Contains(t, view, "campus")
	assert.Contains(t, view, "2026-10-15")
}

func TestRenderItemDetail(t *testing.T) {
	item := domain.Item{ID: "j1", Fields: map[string]any{
		"_id":         "j1",
		"title":       "Backend Engineer",
		"description": "Build the crawler",
		"pc_job_url":  "https://jobs.example.com/j1",
		"company":     "Loofah Labs",
		"empty":       nil,
	}}

	got := renderItemDetail(item, 60, time.Now())
	assert.Contains(t, got, "Backend Engineer")
	assert.Contains(t, got, "https://jobs.example.com/j1")
	assert.Contains(t, got, "Build the crawler")
	assert.Contains(t, got, "Other fields")
	assert.Contains(t, got, "Loofah Labs")
	assert.NotContains(t, got, "empty")
}
