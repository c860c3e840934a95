package domain

import (
	"fmt"
	"strings"
)

// Category is the list type filter. The backend calls it "type" (sheet_name).
type Category string

const (
	CategoryAll         Category = "all"
	CategoryIntern      Category = "intern"
	CategoryCampus      Category = "campus"
	CategoryExperienced Category = "experienced"
)

// Categories lists the filters in tab order.
var Categories = []Category{CategoryAll, CategoryIntern, CategoryCampus, CategoryExperienced}

// ParseCategory normalizes user input. Empty input means CategoryAll.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return CategoryAll, nil
	}
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// QueryValue returns the value sent as the "type" parameter.
// ok is false when the parameter must be omitted.
func (c Category) QueryValue() (value string, ok bool, err error) {
	switch c {
	case "", CategoryAll:
		return "", false, nil
	case CategoryIntern, CategoryCampus, CategoryExperienced:
		return string(c), true, nil
	default:
		return "", false, fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
	}
}

// Label is the display name used by the dashboard tabs.
func (c Category) Label() string {
	switch c {
	case CategoryIntern:
		return "新丝瓜 Intern"
	case CategoryCampus:
		return "生丝瓜 Campus"
	case CategoryExperienced:
		return "熟丝瓜 Experienced"
	default:
		return "全部 All"
	}
}

// Next cycles to the following tab.
func (c Category) Next() Category {
	for i, known := range Categories {
		if known == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return CategoryAll
}
