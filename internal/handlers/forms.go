package handlers

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/hoodion/prefiction-2/internal/components"
	"github.com/hoodion/prefiction-2/internal/inquiry"
	"github.com/hoodion/prefiction-2/internal/middleware"
	"github.com/hoodion/prefiction-2/internal/requestctx"
	"github.com/hoodion/prefiction-2/internal/view"
)

// Go handles the mobile navigation <select>. Known keys redirect to their
// canonical path; unknown keys render the not-found view. Detail keys whose
// id has no path of its own are rendered in place so the catalog fallback
// still applies.
func (s *Site) Go(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rt := s.newRouter(w, r)
	rt.Navigate(q.Get("page"))

	page := rt.Page()
	switch {
	case page.Kind == view.KindUnknown:
		s.dispatch(w, r, rt)
	case page.IsDetail() && view.ParsePath(page.Path()) != page:
		s.dispatch(w, r, rt)
	case page.Kind == view.KindServices:
		http.Redirect(w, r, view.ServicesURL(q.Get("q"), q.Get("category")), http.StatusSeeOther)
	default:
		http.Redirect(w, r, page.Path(), http.StatusSeeOther)
	}
}

// ServiceResults returns the result grid fragment for htmx live search and
// records the equivalent listing URL in browser history.
func (s *Site) ServiceResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rt := view.NewRouter(view.WithState(view.State{CurrentPage: view.Services().Key()}))
	rt.SetServiceQuery(q.Get("q"))
	rt.SetServiceCategory(q.Get("category"))
	state := rt.State()

	middleware.PushURL(w, view.ServicesURL(state.ServiceQuery, state.ServiceCategory))
	s.writeNode(w, r, http.StatusOK, components.ServiceResults(s.translator(r), rt.FilteredServices(s.catalogs.Services)))
}

// SubmitContact records a contact or proposal request and redirects to the
// acknowledgment banner. Fields are not validated.
func (s *Site) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	kind := inquiry.KindContact
	if r.PostForm.Get("kind") == string(inquiry.KindProposal) {
		kind = inquiry.KindProposal
	}
	sub := inquiry.FromForm(kind, r.PostForm)
	if sub.Source == "" {
		sub.Source = view.Contact().Path()
	}
	rec, err := s.sink.Record(r.Context(), sub)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	target := view.Contact().Path() + "?" + url.Values{"sent": {rec.Reference}}.Encode() + "#contact-ack"
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Subscribe records a newsletter signup and returns to the page it came from.
func (s *Site) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sub := inquiry.FromForm(inquiry.KindSubscribe, r.PostForm)
	back := view.ParsePath(sub.Source)
	if back.Kind == view.KindUnknown {
		back = view.Home()
	}
	sub.Source = back.Path()
	if _, err := s.sink.Record(r.Context(), sub); err != nil {
		s.fail(w, r, err)
		return
	}
	requestctx.Logger(r.Context()).Debug("subscribe redirect", zap.String("target", back.Path()))
	http.Redirect(w, r, back.Path()+"?subscribed=1#subscribe-form", http.StatusSeeOther)
}
