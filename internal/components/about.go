package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/cms"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/nav"
	"github.com/hoodion/prefiction-2/internal/view"
)

// AboutPage renders the CMS-backed about page. page.Body is sanitised HTML.
func AboutPage(t i18n.Translator, page cms.ContentPage) g.Node {
	return Div(
		Class("container about"),
		Breadcrumbs(t, nav.Breadcrumbs(view.About(), "")),
		H1(g.Text(page.Title)),
		g.If(page.Summary != "", P(Class("lead"), g.Text(page.Summary))),
		Div(
			Class("about-layout"),
			Div(Class("prose"), g.Raw(page.Body)),
			g.If(len(page.Facts) > 0, Aside(
				Class("facts-panel"),
				H2(g.Text(t.T("about.facts"))),
				Dl(Class("facts"), g.Map(page.Facts, func(f cms.Fact) g.Node {
					return g.Group([]g.Node{Dt(g.Text(f.Label)), Dd(g.Text(f.Value))})
				})),
			)),
		),
		g.If(len(page.Team) > 0, Section(
			Class("section team"),
			H2(g.Text(t.T("about.team"))),
			Ul(Class("grid grid-3"), g.Map(page.Team, func(m cms.Member) g.Node {
				return Li(
					Class("card member"),
					Span(Class("avatar"), g.Attr("aria-hidden", "true"), g.Text(m.Initial())),
					Strong(g.Text(m.Name)),
					Span(Class("role"), g.Text(m.Role)),
				)
			})),
		)),
	)
}
