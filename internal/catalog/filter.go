package catalog

import "strings"

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Category is a filter chip shown on the services listing.
type Category struct {
	Key   string
	Label string
}

// ServiceCategories are the category tokens offered for the services catalog.
// Matching is by substring against id and lowercased title, not a tag field.
var ServiceCategories = []Category{
	{Key: CategoryAll, Label: "All"},
	{Key: "data", Label: "Data"},
	{Key: "demand", Label: "Demand"},
	{Key: "lead", Label: "Lead"},
	{Key: "abm", Label: "Abm"},
	{Key: "email", Label: "Email"},
	{Key: "content", Label: "Content"},
}

// IsServiceCategory reports whether key is one of ServiceCategories.
func IsServiceCategory(key string) bool {
	for _, c := range ServiceCategories {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Filter returns the entries matching category and query, preserving order.
//
// A category other than "all" keeps entries whose id or lowercased title
// contains it. The query is trimmed and lowercased; when non-empty it must
// appear in the title, short or long description.
func Filter(entries []Entry, query, category string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if category != "" && category != CategoryAll {
			if !strings.Contains(e.ID, category) && !strings.Contains(strings.ToLower(e.Title), category) {
				continue
			}
		}
		if q != "" && !matchesQuery(e, q) {
			continue
		}
		out = append(out, e.Clone())
	}
	return out
}

func matchesQuery(e Entry, q string) bool {
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Short), q) ||
		strings.Contains(strings.ToLower(e.Long), q)
}
