package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// DetailSeparator joins a catalog kind and an entry id in legacy routing keys.
const DetailSeparator = "-detail-"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidationError lists every schema problem found in a catalog.
type ValidationError struct {
	Kind     Kind
	problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog %s: validation failed [%s]", e.Kind, strings.Join(e.problems, "; "))
}

// Problems returns a copy of the individual findings.
func (e *ValidationError) Problems() []string {
	out := make([]string, len(e.problems))
	copy(out, e.problems)
	return out
}

// Validate checks that ids are present, unique, URL-safe and cannot be
// confused with a detail routing key, and that every entry has a title.
func Validate(c *Catalog) error {
	if c == nil {
		return &ValidationError{problems: []string{"catalog is nil"}}
	}
	var problems []string
	seen := make(map[string]int, len(c.entries))
	for i, e := range c.entries {
		switch {
		case e.ID == "":
			problems = append(problems, fmt.Sprintf("entry %d: missing id", i))
		case !slugPattern.MatchString(e.ID):
			problems = append(problems, fmt.Sprintf("entry %d: id %q is not a lowercase slug", i, e.ID))
		case strings.Contains(e.ID, DetailSeparator):
			problems = append(problems, fmt.Sprintf("entry %d: id %q contains the detail key separator", i, e.ID))
		}
		if e.ID != "" {
			if prev, dup := seen[e.ID]; dup {
				problems = append(problems, fmt.Sprintf("entry %d: id %q duplicates entry %d", i, e.ID, prev))
			} else {
				seen[e.ID] = i
			}
		}
		if strings.TrimSpace(e.Title) == "" {
			problems = append(problems, fmt.Sprintf("entry %d (%s): missing title", i, e.ID))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Kind: c.kind, problems: problems}
	}
	return nil
}
