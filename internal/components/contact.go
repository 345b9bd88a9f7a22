package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hoodion/prefiction-2/internal/cms"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/nav"
	"github.com/hoodion/prefiction-2/internal/view"
)

// ContactData is the state of the contact page.
type ContactData struct {
	CSRFToken string
	Reference string // set after a submission was acknowledged
	Email     string // prefilled from the home page proposal form
	Intent    string
	Details   cms.ContactDetails
}

// ContactPage renders the acknowledgment banner, the form and contact details.
func ContactPage(t i18n.Translator, data ContactData) g.Node {
	return Div(
		Class("container contact"),
		Breadcrumbs(t, nav.Breadcrumbs(view.Contact(), "")),
		H1(g.Text(t.T("contact.title"))),
		P(Class("lead"), g.Text(t.T("contact.lead"))),
		g.If(data.Reference != "", Div(
			ID("contact-ack"),
			Class("notice notice-success"),
			g.Attr("role", "status"),
			P(g.Text(t.T("contact.sent"))),
			P(Small(g.Text(t.T("contact.reference")+": "), Code(g.Text(data.Reference)))),
		)),
		Div(
			Class("contact-layout"),
			Form(
				ID("contact-form"),
				Class("stacked-form"),
				Action(view.Contact().Path()),
				Method("post"),
				csrfField(data.CSRFToken),
				Input(Type("hidden"), Name("kind"), Value(data.Intent)),
				field("contact-name", "name", "text", t.T("contact.name"), ""),
				field("contact-company", "company", "text", t.T("contact.company"), ""),
				field("contact-email", "email", "email", t.T("contact.email"), data.Email),
				Label(g.Attr("for", "contact-message"), g.Text(t.T("contact.message"))),
				Textarea(ID("contact-message"), Name("message"), g.Attr("rows", "5")),
				Button(Type("submit"), Class("btn btn-primary"), g.Text(t.T("contact.send"))),
			),
			Aside(Class("contact-details"), ContactSnippet(data.Details)),
		),
	)
}

func field(id, name, typ, label, value string) g.Node {
	return g.Group([]g.Node{
		Label(g.Attr("for", id), g.Text(label)),
		Input(ID(id), Name(name), Type(typ), g.If(value != "", Value(value))),
	})
}
