package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/cms"
	"github.com/hoodion/prefiction-2/internal/components"
	"github.com/hoodion/prefiction-2/internal/config"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/middleware"
	"github.com/hoodion/prefiction-2/internal/nav"
	"github.com/hoodion/prefiction-2/internal/requestctx"
	"github.com/hoodion/prefiction-2/internal/seo"
	"github.com/hoodion/prefiction-2/internal/view"
)

const descriptionLength = 160

// Page renders the page addressed by the request path.
func (s *Site) Page(w http.ResponseWriter, r *http.Request) {
	rt := s.newRouter(w, r)
	rt.Navigate(view.ParsePath(r.URL.EscapedPath()).Key())
	r = r.WithContext(requestctx.With(r.Context(), zap.String("page", rt.CurrentPage())))
	if rt.Page().Kind == view.KindServices {
		q := r.URL.Query()
		rt.SetServiceQuery(q.Get("q"))
		rt.SetServiceCategory(q.Get("category"))
	}
	s.dispatch(w, r, rt)
}

// NotFound renders the not-found view for unmatched routes.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	s.renderNotFound(w, r, view.Unknown(r.URL.Path))
}

// dispatch renders the router's current page.
func (s *Site) dispatch(w http.ResponseWriter, r *http.Request, rt *view.Router) {
	page := rt.Page()
	switch page.Kind {
	case view.KindHome:
		s.renderHome(w, r)
	case view.KindServices:
		s.renderServices(w, r, rt)
	case view.KindAudience:
		s.renderListing(w, r, page, catalog.KindAudience, "audience")
	case view.KindProducts:
		s.renderListing(w, r, page, catalog.KindProducts, "products")
	case view.KindServiceDetail, view.KindAudienceDetail, view.KindProductDetail:
		s.renderDetail(w, r, rt)
	case view.KindAbout:
		s.renderAbout(w, r)
	case view.KindContact:
		s.renderContact(w, r)
	case view.KindUnknown:
		s.renderNotFound(w, r, page)
	default:
		s.renderNotFound(w, r, page)
	}
}

func (s *Site) renderHome(w http.ResponseWriter, r *http.Request) {
	t := s.translator(r)
	questions := make([]seo.Question, 0, len(s.faq))
	for _, item := range s.faq {
		questions = append(questions, seo.Question{Name: item.Question, Answer: item.Answer})
	}
	meta := s.seo.Page("", t.T("hero.subtitle"), view.Home().Path()).WithJSONLD(
		seo.Organization(s.seo.Name, s.seo.Absolute("/"), s.seo.Absolute("/assets/img/favicon.svg"), s.home.Contact.Email),
		seo.WebSite(s.seo.Name, s.seo.Absolute("/"), s.seo.Absolute("/services?q=")),
		seo.FAQPage(questions),
	)
	s.writePage(w, r, http.StatusOK, view.Home(), meta, components.HomePage(t, components.HomeData{
		Content:  s.home,
		Services: s.catalogs.Services.Entries(),
		Audience: s.catalogs.Audience.Entries(),
		FAQ:      s.faq,
	}))
}

func (s *Site) renderServices(w http.ResponseWriter, r *http.Request, rt *view.Router) {
	t := s.translator(r)
	state := rt.State()
	meta := s.seo.Page(t.T("services.title"), t.T("services.lead"), view.Services().Path()).
		WithJSONLD(s.breadcrumbLD(t, view.Services(), ""))
	if state.ServiceQuery != "" || state.ServiceCategory != catalog.CategoryAll {
		meta = meta.NoIndex()
	}
	s.writePage(w, r, http.StatusOK, view.Services(), meta, components.ServicesPage(t, components.ServicesData{
		Query:    state.ServiceQuery,
		Category: state.ServiceCategory,
		Results:  rt.FilteredServices(s.catalogs.Services),
		All:      s.catalogs.Services.Entries(),
	}))
}

func (s *Site) renderListing(w http.ResponseWriter, r *http.Request, page view.Page, kind catalog.Kind, prefix string) {
	t := s.translator(r)
	title, lead := t.T(prefix+".title"), t.T(prefix+".lead")
	meta := s.seo.Page(title, lead, page.Path()).WithJSONLD(s.breadcrumbLD(t, page, ""))
	s.writePage(w, r, http.StatusOK, page, meta, components.CatalogListing(t, components.ListingData{
		Page:       page,
		Kind:       kind,
		Title:      title,
		Lead:       lead,
		Entries:    s.catalogs.ByKind(kind).Entries(),
		QuickLinks: kind == catalog.KindAudience,
	}))
}

func (s *Site) renderDetail(w http.ResponseWriter, r *http.Request, rt *view.Router) {
	t := s.translator(r)
	requested := rt.Page()
	kind, _ := requested.Catalog()
	c := s.catalogs.ByKind(kind)

	var (
		entry catalog.Entry
		res   = catalog.Found
		err   error
	)
	if s.fallback == config.FallbackNotFound {
		entry, err = catalog.Resolve(c, requested.ID)
	} else {
		entry, res, err = rt.ResolveDetail(c)
	}
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrEmptyCatalog) {
		s.renderNotFound(w, r, requested)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := components.DetailData{Kind: kind, Entry: entry, Fallback: res == catalog.Fallback}
	shown := data.Page()
	description := seo.Summary(entry.Description(), descriptionLength)
	meta := s.seo.Page(entry.Title, description, shown.Path()).
		WithImage(entry.Image).
		WithJSONLD(s.breadcrumbLD(t, shown, entry.Title))
	switch kind {
	case catalog.KindServices:
		meta = meta.WithJSONLD(seo.Service(entry.Title, description, s.seo.Absolute(shown.Path()), entry.Image, s.seo.Name))
	case catalog.KindProducts:
		meta = meta.WithJSONLD(seo.Product(entry.Title, description, s.seo.Absolute(shown.Path()), entry.Image))
	}
	s.writePage(w, r, http.StatusOK, shown, meta, components.DetailPage(t, data))
}

func (s *Site) renderAbout(w http.ResponseWriter, r *http.Request) {
	t := s.translator(r)
	page, err := s.content.GetContentPage(r.Context(), "about", t.Lang())
	if errors.Is(err, cms.ErrNotFound) {
		s.renderNotFound(w, r, view.About())
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	title := page.Title
	if page.SEO.Title != "" {
		title = page.SEO.Title
	}
	description := page.SEO.Description
	if description == "" {
		description = page.Summary
	}
	if description == "" {
		description = seo.Describe(page.Body, descriptionLength)
	}
	meta := s.seo.Page(title, description, view.About().Path()).
		WithImage(page.SEO.OGImage).
		WithJSONLD(s.breadcrumbLD(t, view.About(), ""))
	s.writePage(w, r, http.StatusOK, view.About(), meta, components.AboutPage(t, page))
}

func (s *Site) renderContact(w http.ResponseWriter, r *http.Request) {
	t := s.translator(r)
	q := r.URL.Query()
	intent := "contact"
	if q.Get("intent") == "proposal" {
		intent = "proposal"
	}
	meta := s.seo.Page(t.T("contact.title"), t.T("contact.lead"), view.Contact().Path()).
		WithJSONLD(s.breadcrumbLD(t, view.Contact(), ""))
	s.writePage(w, r, http.StatusOK, view.Contact(), meta, components.ContactPage(t, components.ContactData{
		CSRFToken: middleware.CSRFTokenFromContext(r.Context()),
		Reference: q.Get("sent"),
		Email:     q.Get("email"),
		Intent:    intent,
		Details:   s.home.Contact,
	}))
}

func (s *Site) renderNotFound(w http.ResponseWriter, r *http.Request, page view.Page) {
	t := s.translator(r)
	meta := s.seo.Page(t.T("notfound.title"), t.T("notfound.body"), "").NoIndex()
	s.writePage(w, r, http.StatusNotFound, page, meta, components.NotFound(t))
}

func (s *Site) breadcrumbLD(t i18n.Translator, page view.Page, title string) map[string]any {
	items := []seo.BreadcrumbItem{{Name: t.T("nav.home"), Item: s.seo.Absolute("/")}}
	parent := page.Parent()
	if page.Kind != view.KindHome {
		items = append(items, seo.BreadcrumbItem{Name: t.T(nav.LabelKey(parent)), Item: s.seo.Absolute(parent.Path())})
	}
	if page.IsDetail() {
		items = append(items, seo.BreadcrumbItem{Name: title, Item: s.seo.Absolute(page.Path())})
	}
	return seo.BreadcrumbList(items)
}
