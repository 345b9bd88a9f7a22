package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/nav"
	"github.com/hoodion/prefiction-2/internal/view"
)

// FallbackImage replaces any image that fails to load.
const FallbackImage = "/assets/img/fallback.svg"

// Image renders a lazily loaded <img> that swaps to FallbackImage on error.
// The handler clears itself so a missing placeholder cannot loop.
func Image(src, alt, class string) g.Node {
	if src == "" {
		src = FallbackImage
	}
	return Img(
		Src(src),
		Alt(alt),
		g.If(class != "", Class(class)),
		g.Attr("loading", "lazy"),
		g.Attr("decoding", "async"),
		g.Attr("onerror", "this.onerror=null;this.src='"+FallbackImage+"';"),
	)
}

func Logo() g.Node {
	return A(
		Href("/"),
		Class("brand"),
		Span(Class("brand-mark"), g.Text("P")),
		Span(Class("brand-name"), g.Text("PREFICTION")),
	)
}

// SectionHeading renders an h2 with an optional lead paragraph.
func SectionHeading(title, lead string) g.Node {
	return Div(
		Class("section-heading"),
		H2(g.Text(title)),
		g.If(lead != "", P(Class("lead"), g.Text(lead))),
	)
}

// Breadcrumbs renders the trail built by nav.Breadcrumbs.
func Breadcrumbs(t i18n.Translator, crumbs []nav.Crumb) g.Node {
	if len(crumbs) < 2 {
		return nil
	}
	return Nav(
		Class("breadcrumbs"),
		g.Attr("aria-label", t.T("nav.breadcrumbs")),
		Ol(g.Map(crumbs, func(c nav.Crumb) g.Node {
			label := c.Label
			if c.LabelKey != "" {
				label = t.T(c.LabelKey)
			}
			if c.Active {
				return Li(Span(g.Attr("aria-current", "page"), g.Text(label)))
			}
			return Li(A(Href(c.Href), g.Text(label)))
		})),
	)
}

// EntryCard renders a catalog entry as a linked card.
func EntryCard(t i18n.Translator, e catalog.Entry, detail view.Page) g.Node {
	return Article(
		Class("card"),
		g.Attr("data-id", e.ID),
		Image(e.Image, e.Title, "card-image"),
		Div(
			Class("card-body"),
			g.If(e.Logo != "", Span(Class("card-logo"), g.Attr("aria-hidden", "true"), g.Text(e.Logo))),
			H3(Class("card-title"), g.Text(e.Title)),
			P(g.Text(e.Short)),
			A(Href(detail.Path()), Class("card-link"), g.Text(t.T("detail.view"))),
		),
	)
}

// detailPage maps an entry to its detail page for the given catalog.
func detailPage(kind catalog.Kind, id string) view.Page {
	switch kind {
	case catalog.KindAudience:
		return view.AudienceDetail(id)
	case catalog.KindProducts:
		return view.ProductDetail(id)
	default:
		return view.ServiceDetail(id)
	}
}

func bulletList(items []string) g.Node {
	return Ul(Class("bullets"), g.Map(items, func(s string) g.Node { return Li(g.Text(s)) }))
}

func csrfField(token string) g.Node {
	return Input(Type("hidden"), Name("csrf_token"), Value(token))
}
