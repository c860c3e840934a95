package components

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/tui/styles"
)

// ItemRow is the display projection of one domain.Item in the list
type ItemRow struct {
	Item domain.Item
}

// ItemTitle returns the title, falling back to the ID for untitled records
func (r ItemRow) ItemTitle() string {
	if t := r.Item.Title(); t != "" {
		return t
	}
	return r.Item.ID
}

// ItemSubtitle joins the short facts shown after the title
func (r ItemRow) ItemSubtitle() string {
	var parts []string
	for _, s := range []string{r.Item.TypeName(), r.Item.City(), r.Item.SalaryRange()} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

// Published returns a humanized publish time, or ""
func (r ItemRow) Published(now time.Time) string {
	t, ok := r.Item.PublishedAt()
	if !ok {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// WrapItems converts a page of items to rows
func WrapItems(items []domain.Item) []ItemRow {
	rows := make([]ItemRow, len(items))
	for i, it := range items {
		rows[i] = ItemRow{Item: it}
	}
	return rows
}

// matchIndexes returns the byte offsets of title that match the search
// term, for highlighting. The backend does the actual searching; this only
// marks where the term shows up.
func matchIndexes(term, title string) []int {
	term = strings.TrimSpace(term)
	if term == "" || title == "" {
		return nil
	}
	matches := fuzzy.Find(term, []string{title})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

// highlightMatches renders text with matched bytes highlighted
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	normal := styles.NormalItemStyle
	match := styles.MatchHighlightStyle
	if selected {
		normal = styles.SelectedItemStyle
		match = styles.MatchHighlightSelectedStyle
	}
	if len(matchedIndexes) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// Batch consecutive runes with the same style
	var result, batch strings.Builder
	batchMatch := false
	flush := func() {
		if batch.Len() == 0 {
			return
		}
		if batchMatch {
			result.WriteString(match.Render(batch.String()))
		} else {
			result.WriteString(normal.Render(batch.String()))
		}
		batch.Reset()
	}
	for i, r := range text {
		if matchSet[i] != batchMatch {
			flush()
			batchMatch = matchSet[i]
		}
		batch.WriteRune(r)
	}
	flush()

	return result.String()
}
