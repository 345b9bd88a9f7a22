package components

import (
	"slices"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/nav"
	"github.com/hoodion/prefiction-2/internal/view"
)

// SiteNav renders the header: brand, the six top-level links, the contact
// CTA and a <select> menu for small screens that submits to /go.
func SiteNav(t i18n.Translator, current view.Page) g.Node {
	items := nav.Build(current)
	return Header(
		Class("site-header"),
		Div(
			Class("container header-inner"),
			Logo(),
			Nav(
				Class("primary-nav"),
				g.Attr("aria-label", t.T("site.name")),
				Ul(g.Map(items, func(it nav.RenderedItem) g.Node {
					return Li(A(
						Href(it.Href),
						g.If(it.Active, Class("active")),
						g.If(it.Active, g.Attr("aria-current", "page")),
						g.Text(t.T(it.LabelKey)),
					))
				})),
			),
			A(Href(view.Contact().Path()), Class("btn btn-primary nav-cta"), g.Text(t.T("nav.cta"))),
			mobileMenu(t, items),
		),
	)
}

func mobileMenu(t i18n.Translator, items []nav.RenderedItem) g.Node {
	return Form(
		Class("mobile-nav"),
		Action("/go"),
		Method("get"),
		g.Attr("hx-boost", "false"),
		Label(g.Attr("for", "mobile-nav-select"), Class("sr-only"), g.Text(t.T("nav.menu"))),
		Select(
			ID("mobile-nav-select"),
			Name("page"),
			g.Attr("onchange", "this.form.submit()"),
			g.Map(items, func(it nav.RenderedItem) g.Node {
				return Option(Value(it.Key), g.If(it.Active, Selected()), g.Text(t.T(it.LabelKey)))
			}),
		),
		NoScript(Button(Type("submit"), g.Text(t.T("nav.menu")))),
	)
}

// SiteFooter renders the subscribe form, link columns and contact details.
func SiteFooter(config PageConfig) g.Node {
	t := config.T
	year := config.Year
	return Footer(
		Class("site-footer"),
		Div(
			Class("container footer-grid"),
			Div(
				Class("footer-brand"),
				Logo(),
				P(g.Text(t.T("footer.blurb"))),
				Div(
					Class("social"),
					A(Href("https://www.linkedin.com/company/prefiction"), Rel("noopener"), Target("_blank"), g.Text("LinkedIn")),
					A(Href("https://twitter.com/prefiction"), Rel("noopener"), Target("_blank"), g.Text("Twitter")),
				),
			),
			Div(
				Class("footer-subscribe"),
				H3(g.Text(t.T("footer.subscribe_title"))),
				g.If(config.Subscribed, P(Class("notice notice-success"), g.Attr("role", "status"), g.Text(t.T("footer.subscribed")))),
				Form(
					ID("subscribe-form"),
					Action("/subscribe"),
					Method("post"),
					csrfField(config.CSRFToken),
					Input(Type("hidden"), Name("source"), Value(config.Current.Path())),
					Label(g.Attr("for", "subscribe-email"), Class("sr-only"), g.Text(t.T("footer.subscribe_placeholder"))),
					Input(ID("subscribe-email"), Type("email"), Name("email"), Placeholder(t.T("footer.subscribe_placeholder"))),
					Button(Type("submit"), Class("btn"), g.Text(t.T("footer.subscribe"))),
				),
			),
			footerColumn(t.T("footer.company"),
				link(view.About().Path(), t.T("nav.about")),
				link(view.Services().Path(), t.T("nav.services")),
				link(view.Products().Path(), t.T("nav.products")),
				link(view.Contact().Path(), t.T("nav.contact")),
			),
			footerColumn(t.T("footer.resources"),
				link(view.Audience().Path(), t.T("nav.audience")),
				link(view.ServiceDetail("data-enrichment").Path(), "Data Enrichment"),
				link(view.ProductDetail("insight").Path(), "Prefiction Insight"),
			),
			footerColumn(t.T("footer.reach"),
				g.If(config.Contact.Email != "", link("mailto:"+config.Contact.Email, config.Contact.Email)),
				g.If(config.Contact.Phone != "", link(config.Contact.TelHref(), config.Contact.Phone)),
			),
		),
		Div(
			Class("container footer-bottom"),
			P(g.Text("© "+strconv.Itoa(year)+" PREFICTION. "+t.T("footer.rights"))),
		),
	)
}

func footerColumn(title string, links ...g.Node) g.Node {
	return Div(
		Class("footer-column"),
		H3(g.Text(title)),
		Ul(g.Map(slices.DeleteFunc(links, func(n g.Node) bool { return n == nil }), func(n g.Node) g.Node {
			return Li(n)
		})),
	)
}

func link(href, text string) g.Node {
	return A(Href(href), g.Text(text))
}
