package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/cms"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/seo"
	"github.com/hoodion/prefiction-2/internal/view"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// PageConfig carries the per-request values every page shell needs.
type PageConfig struct {
	Meta       seo.Meta
	T          i18n.Translator
	Current    view.Page
	CSRFToken  string
	Contact    cms.ContactDetails
	Subscribed bool
	Year       int
}

// Layout renders the full document around content.
func Layout(config PageConfig, content ...g.Node) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang(config.T.Lang()),
			Head(headNodes(config.Meta)...),
			Body(
				Class("site"),
				g.Attr("hx-boost", "true"),
				g.Attr("data-page", config.Current.Key()),
				A(Href("#main"), Class("skip-link"), g.Text("Skip to content")),
				SiteNav(config.T, config.Current),
				Main(ID("main"), Class("site-main"), g.Group(content)),
				SiteFooter(config),
				Script(Src(htmxSrc), Defer()),
				Script(Src("/assets/js/site.js"), Defer()),
			),
		),
	})
}

func headNodes(m seo.Meta) []g.Node {
	nodes := []g.Node{
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
		TitleEl(g.Text(m.Title)),
		Meta(Name("description"), Content(m.Description)),
	}
	if m.Canonical != "" {
		nodes = append(nodes, Link(Rel("canonical"), Href(m.Canonical)))
	}
	if m.Robots != "" {
		nodes = append(nodes, Meta(Name("robots"), Content(m.Robots)))
	}
	nodes = append(nodes,
		property("og:title", m.OG.Title),
		property("og:description", m.OG.Description),
		property("og:type", m.OG.Type),
		property("og:url", m.OG.URL),
		property("og:image", m.OG.Image),
		Meta(Name("twitter:card"), Content(m.Twitter.Card)),
	)
	if m.Twitter.Site != "" {
		nodes = append(nodes, Meta(Name("twitter:site"), Content(m.Twitter.Site)))
	}
	if m.Twitter.Image != "" {
		nodes = append(nodes, Meta(Name("twitter:image"), Content(m.Twitter.Image)))
	}
	for _, block := range m.JSONLD {
		if js := seo.JSON(block); js != "" {
			nodes = append(nodes, Script(Type("application/ld+json"), g.Raw(js)))
		}
	}
	nodes = append(nodes,
		Link(Rel("icon"), Href("/assets/img/favicon.svg"), Type("image/svg+xml")),
		Link(Rel("stylesheet"), Href("/assets/css/site.css")),
	)
	return nodes
}

func property(name, value string) g.Node {
	if value == "" {
		return nil
	}
	return Meta(g.Attr("property", name), Content(value))
}
