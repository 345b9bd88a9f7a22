package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/nav"
	"github.com/hoodion/prefiction-2/internal/view"
)

// DetailData is a resolved catalog entry ready for display.
type DetailData struct {
	Kind     catalog.Kind
	Entry    catalog.Entry
	Fallback bool
}

// Page returns the detail page of the entry actually shown.
func (d DetailData) Page() view.Page {
	return detailPage(d.Kind, d.Entry.ID)
}

// DetailPage renders one service, audience or product.
func DetailPage(t i18n.Translator, data DetailData) g.Node {
	e := data.Entry
	page := data.Page()
	return Article(
		Class("container detail"),
		g.Attr("data-id", e.ID),
		Breadcrumbs(t, nav.Breadcrumbs(page, e.Title)),
		A(Href(page.Parent().Path()), Class("back-link"), g.Text("← "+t.T("detail.back"))),
		g.If(data.Fallback, P(Class("notice notice-info"), g.Attr("role", "status"), g.Text(t.T("detail.fallback")))),
		Header(
			Class("detail-header"),
			g.If(e.Logo != "", Span(Class("detail-logo"), g.Attr("aria-hidden", "true"), g.Text(e.Logo))),
			H1(g.Text(e.Title)),
			P(Class("lead"), g.Text(e.Short)),
		),
		Image(e.Image, e.Title, "detail-image"),
		Div(
			Class("detail-body"),
			P(g.Text(e.Description())),
			listSection(t.T("detail.offerings"), e.Offerings),
			listSection(t.T("detail.use_cases"), e.UseCases),
			listSection(t.T("detail.deliverables"), e.Deliverables),
			g.If(e.Timeline != "" || e.Pricing != "", Dl(
				Class("facts"),
				g.If(e.Timeline != "", g.Group([]g.Node{Dt(g.Text(t.T("detail.timeline"))), Dd(g.Text(e.Timeline))})),
				g.If(e.Pricing != "", g.Group([]g.Node{Dt(g.Text(t.T("detail.pricing"))), Dd(g.Text(e.Pricing))})),
			)),
			listSection(t.T("detail.kpis"), e.KPIs),
			listSection(t.T("detail.tech"), e.Tech),
		),
		A(Href(view.Contact().Path()), Class("btn btn-primary"), g.Text(t.T("nav.cta"))),
	)
}

func listSection(title string, items []string) g.Node {
	if len(items) == 0 {
		return nil
	}
	return Section(Class("detail-section"), H2(g.Text(title)), bulletList(items))
}
