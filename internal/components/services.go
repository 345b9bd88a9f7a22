package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/nav"
	"github.com/hoodion/prefiction-2/internal/view"
)

// ResultsID is the element htmx swaps when the service search changes.
const ResultsID = "service-results"

// ServicesData is the filter state and entries of the services listing.
type ServicesData struct {
	Query    string
	Category string
	Results  []catalog.Entry
	All      []catalog.Entry
}

// ServicesPage renders search, category chips, results and quick links.
func ServicesPage(t i18n.Translator, data ServicesData) g.Node {
	return Div(
		Class("container listing"),
		Breadcrumbs(t, nav.Breadcrumbs(view.Services(), "")),
		Div(
			Class("section-heading"),
			H1(g.Text(t.T("services.title"))),
			P(Class("lead"), g.Text(t.T("services.lead"))),
		),
		Div(
			Class("listing-layout"),
			Div(
				Class("listing-main"),
				searchForm(t, data),
				categoryChips(data),
				ServiceResults(t, data.Results),
			),
			QuickLinks(t.T("services.quick_links"), catalog.KindServices, data.All),
		),
	)
}

func searchForm(t i18n.Translator, data ServicesData) g.Node {
	return Form(
		ID("service-search"),
		Class("search"),
		g.Attr("role", "search"),
		Action(view.Services().Path()),
		Method("get"),
		g.Attr("hx-get", "/services/results"),
		g.Attr("hx-trigger", "input changed delay:300ms from:#service-q, submit"),
		g.Attr("hx-target", "#"+ResultsID),
		g.Attr("hx-swap", "outerHTML"),
		Label(g.Attr("for", "service-q"), Class("sr-only"), g.Text(t.T("services.search"))),
		Input(
			ID("service-q"),
			Type("search"),
			Name("q"),
			Value(data.Query),
			Placeholder(t.T("services.search")),
			g.Attr("autocomplete", "off"),
		),
		Input(Type("hidden"), Name("category"), Value(data.Category)),
		Button(Type("submit"), Class("btn"), g.Text(t.T("services.search_button"))),
		g.If(data.Query != "", A(
			Href(view.ServicesURL("", data.Category)),
			Class("clear-link"),
			g.Text(t.T("services.clear")),
		)),
	)
}

func categoryChips(data ServicesData) g.Node {
	return Div(
		Class("chips"),
		g.Map(catalog.ServiceCategories, func(c catalog.Category) g.Node {
			active := c.Key == data.Category
			class := "chip"
			if active {
				class = "chip active"
			}
			return A(
				Href(view.ServicesURL(data.Query, c.Key)),
				Class(class),
				g.If(active, g.Attr("aria-current", "true")),
				g.Attr("data-category", c.Key),
				g.Text(c.Label),
			)
		}),
	)
}

// ServiceResults renders the result grid, or the empty-state message. It is
// also the fragment returned to htmx search requests.
func ServiceResults(t i18n.Translator, results []catalog.Entry) g.Node {
	return Div(
		ID(ResultsID),
		Class("results"),
		g.Attr("aria-live", "polite"),
		g.Attr("data-count", strconv.Itoa(len(results))),
		g.If(len(results) == 0, P(Class("empty"), g.Text(t.T("services.empty")))),
		g.If(len(results) > 0, Div(Class("grid grid-3"), g.Map(results, func(e catalog.Entry) g.Node {
			return EntryCard(t, e, view.ServiceDetail(e.ID))
		}))),
	)
}

// QuickLinks renders the sidebar list of every entry in a catalog.
func QuickLinks(title string, kind catalog.Kind, entries []catalog.Entry) g.Node {
	return Aside(
		Class("quick-links"),
		H2(g.Text(title)),
		Ul(g.Map(entries, func(e catalog.Entry) g.Node {
			return Li(A(Href(detailPage(kind, e.ID).Path()), g.Text(e.Title)))
		})),
	)
}
