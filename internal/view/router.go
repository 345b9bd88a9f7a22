package view

import (
	"strings"

	"github.com/hoodion/prefiction-2/internal/catalog"
)

// Listener observes page changes. It receives the previous and the new key.
type Listener func(from, to string)

// State is a snapshot of the router.
type State struct {
	CurrentPage     string
	ServiceQuery    string
	ServiceCategory string
}

// Option customises a Router.
type Option func(*Router)

// WithListener registers a callback invoked after every navigation.
func WithListener(l Listener) Option {
	return func(r *Router) {
		if l != nil {
			r.listeners = append(r.listeners, l)
		}
	}
}

// WithState seeds the router with an existing state instead of the home page.
func WithState(s State) Option {
	return func(r *Router) {
		r.current = s.CurrentPage
		r.query = s.ServiceQuery
		r.SetServiceCategory(s.ServiceCategory)
	}
}

// Router owns the page state of one visitor session. It is not safe for
// concurrent use; the HTTP layer builds one per request.
type Router struct {
	current   string
	query     string
	category  string
	listeners []Listener
}

// NewRouter returns a router positioned on the home page with no service filters.
func NewRouter(opts ...Option) *Router {
	r := &Router{
		current:  keyHome,
		category: catalog.CategoryAll,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Navigate stores key verbatim and notifies listeners. Unknown keys are accepted.
func (r *Router) Navigate(key string) {
	from := r.current
	r.current = key
	for _, l := range r.listeners {
		l(from, key)
	}
}

// CurrentPage returns the last key passed to Navigate.
func (r *Router) CurrentPage() string {
	return r.current
}

// Page decodes the current key.
func (r *Router) Page() Page {
	return ParseKey(r.current)
}

// State returns a copy of the router state.
func (r *Router) State() State {
	return State{
		CurrentPage:     r.current,
		ServiceQuery:    r.query,
		ServiceCategory: r.category,
	}
}

func (r *Router) goTo(p Page) { r.Navigate(p.Key()) }

// Named transitions to the top-level pages.
func (r *Router) Home()     { r.goTo(Home()) }
func (r *Router) Services() { r.goTo(Services()) }
func (r *Router) Audience() { r.goTo(Audience()) }
func (r *Router) Products() { r.goTo(Products()) }
func (r *Router) About()    { r.goTo(About()) }
func (r *Router) Contact()  { r.goTo(Contact()) }

// Drill-down transitions to a catalog entry's detail page.
func (r *Router) OpenService(id string)  { r.goTo(ServiceDetail(id)) }
func (r *Router) OpenAudience(id string) { r.goTo(AudienceDetail(id)) }
func (r *Router) OpenProduct(id string)  { r.goTo(ProductDetail(id)) }

// Back returns from a detail page to its listing. It does nothing elsewhere.
func (r *Router) Back() {
	p := r.Page()
	if !p.IsDetail() {
		return
	}
	r.goTo(p.Parent())
}

// SetServiceQuery stores the free-text search used by the services listing.
func (r *Router) SetServiceQuery(q string) {
	r.query = q
}

// ClearServiceQuery empties the services search.
func (r *Router) ClearServiceQuery() {
	r.query = ""
}

// SetServiceCategory selects a category chip. An empty value selects "all".
func (r *Router) SetServiceCategory(category string) {
	if strings.TrimSpace(category) == "" {
		category = catalog.CategoryAll
	}
	r.category = category
}

// FilteredServices applies the current search and category to services.
func (r *Router) FilteredServices(services *catalog.Catalog) []catalog.Entry {
	return catalog.Filter(services.Entries(), r.query, r.category)
}

// ResolveDetail strips the "<kind>-detail-" prefix matching c from key and
// resolves the remaining id against c, falling back to the first entry.
// A key without that prefix resolves as an unknown id.
func ResolveDetail(key string, c *catalog.Catalog) (catalog.Entry, catalog.Resolution, error) {
	id, _ := cutDetail(key, c.Kind())
	return catalog.ResolveOrDefault(c, id)
}

// ResolveDetail resolves the router's current key against c.
func (r *Router) ResolveDetail(c *catalog.Catalog) (catalog.Entry, catalog.Resolution, error) {
	return ResolveDetail(r.current, c)
}
