package fixtures

import (
	"strings"

	"github.com/tamkeenai/careerd/internal/core/domain"
)

// Page is the slice of a filtered fixture array plus its pagination math.
type Page struct {
	Items      []any
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Filter applies the search and location filters to a fixture array.
// Matching is case-insensitive substring. Items that expose none of the
// searched fields are excluded by a non-empty filter.
func Filter(items []any, q domain.Query) []any {
	out := items

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		filtered := make([]any, 0, len(out))
		for _, item := range out {
			if matchesSearch(item, needle) {
				filtered = append(filtered, item)
			}
		}
		out = filtered
	}

	if q.Location != "" {
		needle := strings.ToLower(q.Location)
		filtered := make([]any, 0, len(out))
		for _, item := range out {
			if matchesLocation(item, needle) {
				filtered = append(filtered, item)
			}
		}
		out = filtered
	}

	return out
}

// Paginate slices items according to q and fills in the totals.
// Totals are computed over the already-filtered length.
func Paginate(items []any, q domain.Query) Page {
	q = q.Normalized()

	total := len(items)
	totalPages := (total + q.PageSize - 1) / q.PageSize

	start := (q.Page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	return Page{
		Items:      items[start:end],
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}
}

func matchesSearch(item any, needle string) bool {
	m, ok := item.(map[string]any)
	if !ok {
		return false
	}

	for _, field := range []string{"title", "description"} {
		if s, ok := m[field].(string); ok &&
			strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}

	// Company may be a plain string or an object with a name field.
	switch company := m["company"].(type) {
	case string:
		if strings.Contains(strings.ToLower(company), needle) {
			return true
		}
	case map[string]any:
		if name, ok := company["name"].(string); ok &&
			strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}

	return false
}

func matchesLocation(item any, needle string) bool {
	m, ok := item.(map[string]any)
	if !ok {
		return false
	}
	loc, ok := m["location"].(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(loc), needle)
}
