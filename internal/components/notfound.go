package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/i18n"
)

// NotFound is shown for unknown pages and, under the notfound policy,
// unknown detail ids.
func NotFound(t i18n.Translator) g.Node {
	return Div(
		Class("container not-found"),
		H1(g.Text(t.T("notfound.title"))),
		P(g.Text(t.T("notfound.body"))),
		A(Href("/"), Class("btn btn-primary"), g.Text(t.T("notfound.home"))),
	)
}

// ErrorPage is a standalone document for failures after which the page
// shell cannot be trusted to render.
func ErrorPage(t i18n.Translator) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang(t.Lang()),
			Head(
				Meta(Charset("utf-8")),
				TitleEl(g.Text(t.T("error.title"))),
				Link(Rel("stylesheet"), Href("/assets/css/site.css")),
			),
			Body(
				Main(
					Class("container not-found"),
					H1(g.Text(t.T("error.title"))),
					A(Href("/"), g.Text(t.T("notfound.home"))),
				),
			),
		),
	})
}
