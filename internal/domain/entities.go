package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Item is a synchronized job posting. Only ID is interpreted; every other
// field is passed through from the backend untouched.
type Item struct {
	ID     string
	Fields map[string]any
}

// UnmarshalJSON decodes an item, taking the ID from "_id" or "id".
func (it *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	it.Fields = fields
	it.ID = ""
	for _, key := range []string{"_id", "id"} {
		if v, ok := fields[key]; ok && v != nil {
			it.ID = stringify(v)
			break
		}
	}
	return nil
}

// MarshalJSON re-emits the pass-through fields.
func (it Item) MarshalJSON() ([]byte, error) {
	if it.Fields == nil {
		return json.Marshal(map[string]any{"_id": it.ID})
	}
	return json.Marshal(it.Fields)
}

// Field returns a pass-through field rendered as a string ("" when absent)
func (it Item) Field(key string) string {
	v, ok := it.Fields[key]
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

func (it Item) Title() string       { return it.Field("title") }
func (it Item) Subtitle() string    { return it.Field("sub_title") }
func (it Item) TypeName() string    { return it.Field("type_name") }
func (it Item) SheetName() string   { return it.Field("sheet_name") }
func (it Item) City() string        { return it.Field("city_list") }
func (it Item) Degree() string      { return it.Field("degree") }
func (it Item) Experience() string  { return it.Field("experience") }
func (it Item) Description() string { return it.Field("description") }
func (it Item) Requirement() string { return it.Field("requirement") }
func (it Item) Department() string  { return it.Field("department") }

// URL returns the desktop job URL, falling back to the mobile one.
func (it Item) URL() string {
	if u := it.Field("pc_job_url"); u != "" {
		return u
	}
	return it.Field("wap_job_url")
}

// IsNew reports the backend's is_new flag.
func (it Item) IsNew() bool {
	b, _ := it.Fields["is_new"].(bool)
	return b
}

// SalaryRange formats min/max salary, or "" when neither is set.
func (it Item) SalaryRange() string {
	lo, hi := it.Field("min_salary"), it.Field("max_salary")
	switch {
	case lo != "" && hi != "":
		return lo + "-" + hi
	case lo != "":
		return lo + "+"
	case hi != "":
		return "≤" + hi
	default:
		return ""
	}
}

// PublishedAt parses publish_time, falling back to the harvest timestamp.
func (it Item) PublishedAt() (time.Time, bool) {
	for _, key := range []string{"publish_time", "采摘时间", "created_at"} {
		if t, ok := ParseTimestamp(it.Field(key)); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// ListQuery describes one page request against the item list.
type ListQuery struct {
	Category Category
	Page     int
	PageSize int
	Search   string
	NewOnly  bool
}

// ListResult is one page of items. Total is authoritative for pagination.
type ListResult struct {
	Items    []Item `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"limit"`
	Pages    int    `json:"pages"`
}

// PageCount returns the number of pages for Total at PageSize.
func (r ListResult) PageCount() int {
	if r.Pages > 0 {
		return r.Pages
	}
	return PageCount(r.Total, r.PageSize)
}

// PageCount computes ceil(total/pageSize), never less than 1.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// TrendPoint is one day of the daily trend series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatsSnapshot holds aggregate counters. It is replaced wholesale on each fetch.
type StatsSnapshot struct {
	Total            int            `json:"total"`
	TodayNew         int            `json:"today_new"`
	WeekNew          int            `json:"week_new"`
	TypeDistribution map[string]int `json:"type_distribution"`
	DailyTrend       []TrendPoint   `json:"daily_trend"`
}

// SyncStatus is the backend's view of the running sync job.
type SyncStatus struct {
	Running  bool   `json:"running"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

// SyncLog is one entry of the backend's sync history.
type SyncLog struct {
	ID           string  `json:"_id"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	NewCount     int     `json:"new_count"`
	TotalCount   int     `json:"total_count"`
	Duration     float64 `json:"duration"` // seconds
	ErrorMessage string  `json:"error_message"`
	SyncTime     string  `json:"sync_time"`
}

// Succeeded reports whether the logged sync finished successfully.
func (l SyncLog) Succeeded() bool {
	return strings.EqualFold(l.Status, "success")
}

// Elapsed returns Duration as a time.Duration.
func (l SyncLog) Elapsed() time.Duration {
	return time.Duration(l.Duration * float64(time.Second))
}

// Time parses SyncTime.
func (l SyncLog) Time() (time.Time, bool) {
	return ParseTimestamp(l.SyncTime)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the timestamp shapes the backend emits
// (RFC 1123 from JSON-encoded datetimes, ISO 8601, plain dates).
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, stringify(e))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		for _, key := range []string{"name", "zh_name", "en_name", "title"} {
			if n, ok := t[key]; ok {
				return stringify(n)
			}
		}
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
