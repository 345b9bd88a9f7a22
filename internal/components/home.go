package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/cms"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/view"
)

// FeaturedServices is how many services the home page highlights.
const FeaturedServices = 8

// HomeData is everything the home page shows.
type HomeData struct {
	Content  cms.HomeContent
	Services []catalog.Entry
	Audience []catalog.Entry
	FAQ      []cms.FAQItem
}

// HomePage renders the landing page sections in order.
func HomePage(t i18n.Translator, data HomeData) g.Node {
	featured := data.Services
	if len(featured) > FeaturedServices {
		featured = featured[:FeaturedServices]
	}
	return g.Group([]g.Node{
		Hero(t),
		Section(
			ID("values"), Class("section container"),
			SectionHeading(t.T("home.values"), ""),
			Div(Class("grid grid-4"), g.Map(data.Content.Values, infoCard)),
		),
		Section(
			ID("audience"), Class("section container"),
			SectionHeading(t.T("home.audience"), t.T("audience.lead")),
			Div(Class("grid grid-4"), g.Map(data.Audience, func(e catalog.Entry) g.Node {
				return EntryCard(t, e, view.AudienceDetail(e.ID))
			})),
		),
		Section(
			ID("process"), Class("section container"),
			SectionHeading(t.T("home.process"), ""),
			Ol(Class("steps"), g.Map(data.Content.Process, func(c cms.Card) g.Node {
				return Li(Class("step"), H3(g.Text(c.Title)), P(g.Text(c.Text)))
			})),
		),
		Section(
			ID("featured"), Class("section container"),
			SectionHeading(t.T("home.featured"), t.T("services.lead")),
			Div(Class("grid grid-4"), g.Map(featured, func(e catalog.Entry) g.Node {
				return EntryCard(t, e, view.ServiceDetail(e.ID))
			})),
		),
		Section(
			ID("mission"), Class("section container grid grid-2"),
			statCard(data.Content.Mission),
			statCard(data.Content.Vision),
		),
		Section(
			ID("why"), Class("section container"),
			Div(Class("grid grid-4"), g.Map(data.Content.Why, infoCard)),
		),
		Section(
			ID("all-services"), Class("section container"),
			SectionHeading(t.T("home.all_services"), ""),
			Ul(Class("service-list"), g.Map(data.Services, func(e catalog.Entry) g.Node {
				return Li(
					A(Href(view.ServiceDetail(e.ID).Path()), Strong(g.Text(e.Title))),
					Span(g.Text(" "+e.Short)),
				)
			})),
		),
		Section(
			ID("faq"), Class("section container"),
			SectionHeading(t.T("home.faq"), ""),
			FAQ(data.FAQ),
		),
		Section(
			ID("contact"), Class("section container"),
			SectionHeading(t.T("home.contact"), ""),
			ContactSnippet(data.Content.Contact),
		),
		proposalCTA(t),
	})
}

// Hero renders the top banner.
func Hero(t i18n.Translator) g.Node {
	return Section(
		Class("hero"),
		Div(
			Class("container hero-inner"),
			P(Class("eyebrow"), g.Text(t.T("hero.eyebrow"))),
			H1(g.Text(t.T("hero.title"))),
			P(Class("lead"), g.Text(t.T("hero.subtitle"))),
			Div(
				Class("hero-actions"),
				A(Href(view.Services().Path()), Class("btn btn-primary"), g.Text(t.T("hero.primary"))),
				A(Href(view.Contact().Path()), Class("btn"), g.Text(t.T("hero.secondary"))),
			),
		),
	)
}

// FAQ renders a details/summary accordion, every item closed.
func FAQ(items []cms.FAQItem) g.Node {
	return Div(
		Class("faq"),
		g.Map(items, func(it cms.FAQItem) g.Node {
			return Details(
				Class("faq-item"),
				Summary(g.Text(it.Question)),
				P(g.Text(it.Answer)),
			)
		}),
	)
}

// ContactSnippet renders the public email and phone as links.
func ContactSnippet(c cms.ContactDetails) g.Node {
	return Ul(
		Class("contact-snippet"),
		g.If(c.Email != "", Li(A(Href("mailto:"+c.Email), g.Text(c.Email)))),
		g.If(c.Phone != "", Li(A(Href(c.TelHref()), g.Text(c.Phone)))),
	)
}

func proposalCTA(t i18n.Translator) g.Node {
	return Section(
		ID("cta"), Class("section cta"),
		Div(
			Class("container"),
			H2(g.Text(t.T("home.cta.title"))),
			Form(
				Action(view.Contact().Path()),
				Method("get"),
				Class("inline-form"),
				Input(Type("hidden"), Name("intent"), Value("proposal")),
				Label(g.Attr("for", "cta-email"), Class("sr-only"), g.Text(t.T("home.cta.placeholder"))),
				Input(ID("cta-email"), Type("email"), Name("email"), Placeholder(t.T("home.cta.placeholder"))),
				Button(Type("submit"), Class("btn btn-primary"), g.Text(t.T("home.cta.button"))),
			),
		),
	)
}

func infoCard(c cms.Card) g.Node {
	return Article(Class("card info-card"), H3(g.Text(c.Title)), P(g.Text(c.Text)))
}

func statCard(c cms.Card) g.Node {
	return Article(
		Class("card stat-card"),
		g.If(c.Image != "", Image(c.Image, c.Title, "card-image")),
		H2(g.Text(c.Title)),
		P(g.Text(c.Text)),
		g.If(c.StatValue != "", P(Class("stat"), Strong(g.Text(c.StatValue)), Span(g.Text(" "+c.StatLabel)))),
	)
}
