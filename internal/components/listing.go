package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/nav"
	"github.com/hoodion/prefiction-2/internal/view"
)

// ListingData describes a plain catalog listing.
type ListingData struct {
	Page       view.Page
	Kind       catalog.Kind
	Title      string
	Lead       string
	Entries    []catalog.Entry
	QuickLinks bool
}

// CatalogListing renders the audience and products listings.
func CatalogListing(t i18n.Translator, data ListingData) g.Node {
	grid := Div(Class("grid grid-3"), g.Map(data.Entries, func(e catalog.Entry) g.Node {
		return EntryCard(t, e, detailPage(data.Kind, e.ID))
	}))
	body := grid
	if data.QuickLinks {
		body = Div(
			Class("listing-layout"),
			Div(Class("listing-main"), grid),
			QuickLinks(t.T("services.quick_links"), data.Kind, data.Entries),
		)
	}
	return Div(
		Class("container listing"),
		g.Attr("data-kind", string(data.Kind)),
		Breadcrumbs(t, nav.Breadcrumbs(data.Page, "")),
		Div(
			Class("section-heading"),
			H1(g.Text(data.Title)),
			g.If(data.Lead != "", P(Class("lead"), g.Text(data.Lead))),
		),
		body,
	)
}
