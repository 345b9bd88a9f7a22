package catalog

import (
	"errors"
	"slices"
)

var (
	// ErrNotFound is returned by Resolve when no entry carries the requested id.
	ErrNotFound = errors.New("catalog: entry not found")
	// ErrEmptyCatalog is returned when a lookup needs a default entry but the catalog has none.
	ErrEmptyCatalog = errors.New("catalog: catalog is empty")
)

// Kind names one of the compiled-in catalogs. The value doubles as the
// routing-key prefix for its detail pages (e.g. "services-detail-<id>").
type Kind string

const (
	KindServices Kind = "services"
	KindAudience Kind = "audience"
	KindProducts Kind = "products"
)

// Kinds lists every catalog kind in navigation order.
var Kinds = []Kind{KindServices, KindAudience, KindProducts}

// Entry is a single catalog record. Services carry the full set of optional
// fields; audiences and products usually only fill the summary fields.
type Entry struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Logo         string   `yaml:"logo"`
	Short        string   `yaml:"short"`
	Long         string   `yaml:"long"`
	Image        string   `yaml:"image"`
	Offerings    []string `yaml:"offerings"`
	UseCases     []string `yaml:"use_cases"`
	Deliverables []string `yaml:"deliverables"`
	KPIs         []string `yaml:"kpis"`
	Tech         []string `yaml:"tech"`
	Timeline     string   `yaml:"timeline"`
	Pricing      string   `yaml:"pricing"`
}

// Clone returns a deep copy so callers cannot mutate shared catalog data.
func (e Entry) Clone() Entry {
	cp := e
	cp.Offerings = slices.Clone(e.Offerings)
	cp.UseCases = slices.Clone(e.UseCases)
	cp.Deliverables = slices.Clone(e.Deliverables)
	cp.KPIs = slices.Clone(e.KPIs)
	cp.Tech = slices.Clone(e.Tech)
	return cp
}

// Description returns the long description, or the short one when no long copy exists.
func (e Entry) Description() string {
	if e.Long != "" {
		return e.Long
	}
	return e.Short
}

// Catalog is an ordered, read-only list of entries of one kind.
type Catalog struct {
	kind    Kind
	entries []Entry
}

// New builds a catalog from entries. The slice is copied.
func New(kind Kind, entries []Entry) *Catalog {
	cp := make([]Entry, 0, len(entries))
	for _, e := range entries {
		cp = append(cp, e.Clone())
	}
	return &Catalog{kind: kind, entries: cp}
}

// Kind reports which catalog this is.
func (c *Catalog) Kind() Kind {
	if c == nil {
		return ""
	}
	return c.kind
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return []Entry{}
	}
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Clone())
	}
	return out
}

// Head returns up to n entries from the start of the catalog.
func (c *Catalog) Head(n int) []Entry {
	all := c.Entries()
	if n < 0 || n >= len(all) {
		return all
	}
	return all[:n]
}

// Lookup finds an entry by exact id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	for _, e := range c.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return Entry{}, false
}

// Resolution describes how ResolveOrDefault produced its entry.
type Resolution int

const (
	// Missing means no entry could be produced (empty catalog).
	Missing Resolution = iota
	// Found means the requested id matched exactly.
	Found
	// Fallback means the id was unknown and the first entry was substituted.
	Fallback
)

func (r Resolution) String() string {
	switch r {
	case Found:
		return "found"
	case Fallback:
		return "fallback"
	default:
		return "missing"
	}
}

// Resolve returns the entry with the given id or ErrNotFound.
func Resolve(c *Catalog, id string) (Entry, error) {
	if e, ok := c.Lookup(id); ok {
		return e, nil
	}
	return Entry{}, ErrNotFound
}

// ResolveOrDefault returns the entry with the given id. Unknown ids fall back
// to the first entry of the catalog; an empty catalog yields ErrEmptyCatalog.
func ResolveOrDefault(c *Catalog, id string) (Entry, Resolution, error) {
	if e, ok := c.Lookup(id); ok {
		return e, Found, nil
	}
	if c.Len() == 0 {
		return Entry{}, Missing, ErrEmptyCatalog
	}
	return c.entries[0].Clone(), Fallback, nil
}
