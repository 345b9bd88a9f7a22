package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/middleware"
	"github.com/hoodion/prefiction-2/internal/seo"
)

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func emptySet() catalog.Set {
	return catalog.Set{
		Services: catalog.New(catalog.KindServices, nil),
		Audience: catalog.New(catalog.KindAudience, nil),
		Products: catalog.New(catalog.KindProducts, nil),
	}
}

func newSite(t *testing.T, set catalog.Set) *Site {
	t.Helper()
	site, err := New(Config{
		Catalogs: set,
		SEO:      seo.Site{Name: "PREFICTION", BaseURL: "https://prefiction.example"},
		Now:      func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return site
}

func TestNewRejectsInvalidCatalogs(t *testing.T) {
	set := emptySet()
	set.Services = catalog.New(catalog.KindServices, []catalog.Entry{{ID: "abm", Title: "ABM"}, {ID: "abm", Title: "Again"}})

	_, err := New(Config{Catalogs: set})
	require.Error(t, err)
	var verr *catalog.ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = New(Config{})
	require.Error(t, err, "nil catalogs")
}

func TestEmptyCatalogDetailIsNotFound(t *testing.T) {
	site := newSite(t, emptySet())

	rec := httptest.NewRecorder()
	site.Page(rec, httptest.NewRequest(http.MethodGet, "/services/abm", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	doc := parse(t, rec)
	require.Equal(t, "Page not found", doc.Find("h1").Text())
}

func TestEmptyCatalogListing(t *testing.T) {
	site := newSite(t, emptySet())

	rec := httptest.NewRecorder()
	site.Page(rec, httptest.NewRequest(http.MethodGet, "/services?q=abm", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	require.Equal(t, 0, doc.Find("#service-results .card").Length())
	require.Equal(t, 1, doc.Find("#service-results .empty").Length())
	require.Contains(t, doc.Find(".footer-bottom").Text(), "2026")
}

func TestPageChangedOnlyForHTMX(t *testing.T) {
	site := newSite(t, catalog.MustLoad())
	h := middleware.HTMX()(http.HandlerFunc(site.Page))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, PageChangedEvent, rec.Header().Get("HX-Trigger"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Empty(t, rec.Header().Get("HX-Trigger"))
}

func TestDoubleEncodedIDIsDecodedOnce(t *testing.T) {
	site := newSite(t, catalog.MustLoad())

	rec := httptest.NewRecorder()
	site.Page(rec, httptest.NewRequest(http.MethodGet, "/services/%2561bm", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	require.Equal(t, 1, doc.Find(".notice-info").Length(), "%61bm is not abm")
}

func TestFailLogsAndAnswers500(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	site := newSite(t, emptySet())
	site.logger = zap.New(core)

	rec := httptest.NewRecorder()
	site.fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("render page").Len())
}

func TestPanicPage(t *testing.T) {
	site := newSite(t, emptySet())
	rec := httptest.NewRecorder()
	site.PanicPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	doc := parse(t, rec)
	require.Equal(t, "Something went wrong", doc.Find("h1").Text())
}
