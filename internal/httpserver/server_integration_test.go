package httpserver_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/hoodion/prefiction-2/internal/config"
	"github.com/hoodion/prefiction-2/internal/httpserver"
	"github.com/hoodion/prefiction-2/internal/inquiry"
	"github.com/hoodion/prefiction-2/internal/testutil"
)

type recordingSink struct {
	mu   sync.Mutex
	subs []inquiry.Submission
}

func (s *recordingSink) Record(_ context.Context, sub inquiry.Submission) (inquiry.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.Reference = "REF" + string(rune('0'+len(s.subs)))
	s.subs = append(s.subs, sub)
	return sub, nil
}

func (s *recordingSink) all() []inquiry.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]inquiry.Submission(nil), s.subs...)
}

func noRedirectClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, target string, header http.Header) (*http.Response, *goquery.Document) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, testutil.ParseHTML(t, body)
}

func TestServiceDetailRendersEntry(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, doc := get(t, http.DefaultClient, ts.URL+"/services/abm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Account-Based Marketing (ABM)", doc.Find("h1").First().Text())
	require.Equal(t, "Account-Based Marketing (ABM) | PREFICTION", doc.Find("title").Text())
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	require.Equal(t, "http://localhost:8080/services/abm", canonical)
	require.Equal(t, "Services", strings.TrimSpace(doc.Find(".primary-nav a.active").Text()))
	require.Contains(t, doc.Find(`script[type="application/ld+json"]`).Text(), `"@type":"Service"`)
}

func TestUnknownDetailFallsBackToFirstEntry(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, doc := get(t, http.DefaultClient, ts.URL+"/services/does-not-exist", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Data Enrichment & Management", doc.Find("h1").First().Text())
	require.Equal(t, 1, doc.Find(".notice-info").Length())
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	require.Equal(t, "http://localhost:8080/services/data-enrichment", canonical)
}

func TestDetailWithoutRoutableIDFallsBack(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	for _, target := range []string{
		"/go?page=services-detail-",
		"/services/a%2Fb",
	} {
		resp, doc := get(t, noRedirectClient(t), ts.URL+target, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, target)
		require.Equal(t, "Data Enrichment & Management", doc.Find("h1").First().Text(), target)
		require.Equal(t, 1, doc.Find(".notice-info").Length(), target)
	}

	resp, _ := get(t, noRedirectClient(t), ts.URL+"/go?page=services-detail-a/b", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/services/a%2Fb", resp.Header.Get("Location"))
}

func TestUnknownDetailNotFoundPolicy(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t, testutil.WithEnv("PREFICTION_WEB_DETAIL_FALLBACK", string(config.FallbackNotFound)))

	resp, doc := get(t, http.DefaultClient, ts.URL+"/products/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Page not found", doc.Find("h1").Text())

	resp, _ = get(t, http.DefaultClient, ts.URL+"/products/insight", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServicesCategoryFilter(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, doc := get(t, http.DefaultClient, ts.URL+"/services?category=content", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cards := doc.Find("#service-results .card")
	require.Equal(t, 1, cards.Length())
	id, _ := cards.Attr("data-id")
	require.Equal(t, "content-creation", id)
	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	require.Equal(t, "noindex", robots)
}

func TestServicesSearchIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	_, upper := get(t, http.DefaultClient, ts.URL+"/services?q=ABM", nil)
	_, lower := get(t, http.DefaultClient, ts.URL+"/services?q=abm", nil)
	require.Equal(t, 1, upper.Find("#service-results .card").Length())
	require.Equal(t, lower.Find("#service-results .card").Length(), upper.Find("#service-results .card").Length())

	_, none := get(t, http.DefaultClient, ts.URL+"/services?q=zzzz", nil)
	require.Equal(t, "No services match your search.", strings.TrimSpace(none.Find("#service-results .empty").Text()))
}

func TestGoRedirectsKnownKeys(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)
	client := noRedirectClient(t)

	cases := map[string]string{
		"/go?page=home":                    "/",
		"/go?page=services-detail-abm":     "/services/abm",
		"/go?page=audience":                "/audience",
		"/go?page=products-detail-predict": "/products/predict",
		"/go?page=services&q=abm":          "/services?q=abm",
	}
	for target, want := range cases {
		resp, _ := get(t, client, ts.URL+target, nil)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode, target)
		require.Equal(t, want, resp.Header.Get("Location"), target)
	}
}

func TestGoUnknownKeyRendersNotFound(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, doc := get(t, noRedirectClient(t), ts.URL+"/go?page=pricing", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Page not found", doc.Find("h1").Text())
	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	require.Equal(t, "noindex", robots)
}

func TestUnmatchedRouteRendersNotFoundPage(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, doc := get(t, http.DefaultClient, ts.URL+"/pricing/enterprise", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Page not found", doc.Find("h1").Text())
	require.Equal(t, 6, doc.Find(".primary-nav a").Length(), "not-found keeps the site shell")
}

func TestServiceResultsFragment(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, doc := get(t, http.DefaultClient, ts.URL+"/services/results?q=abm&category=all", http.Header{"Hx-Request": {"true"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/services?q=abm", resp.Header.Get("HX-Push-Url"))
	require.Empty(t, resp.Header.Get("HX-Trigger"), "search does not navigate")
	require.Equal(t, 1, doc.Find("#service-results .card").Length())
	require.Equal(t, 0, doc.Find("header.site-header").Length(), "fragment has no layout")

	resp, doc = get(t, http.DefaultClient, ts.URL+"/services/results?q=abm", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Page not found", doc.Find("h1").Text())
	require.Equal(t, 1, doc.Find("header.site-header").Length(), "direct navigation gets the site shell")
}

func TestNavigationTriggersScrollReset(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, _ := get(t, http.DefaultClient, ts.URL+"/about", http.Header{"Hx-Request": {"true"}, "Hx-Boosted": {"true"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "page-changed", resp.Header.Get("HX-Trigger"))

	resp, _ = get(t, http.DefaultClient, ts.URL+"/about", nil)
	require.Empty(t, resp.Header.Get("HX-Trigger"))
}

func TestAboutPageFromContent(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, doc := get(t, http.DefaultClient, ts.URL+"/about", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "About PREFICTION", doc.Find("h1").Text())
	require.NotZero(t, doc.Find(".facts dd").Length())
	require.NotZero(t, doc.Find(".member").Length())
}

func TestContactFlow(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	ts := testutil.NewServer(t, testutil.WithSink(sink))
	client := noRedirectClient(t)

	_, doc := get(t, client, ts.URL+"/contact", nil)
	token, ok := doc.Find(`#contact-form input[name="csrf_token"]`).Attr("value")
	require.True(t, ok)
	require.NotEmpty(t, token)

	resp, err := client.PostForm(ts.URL+"/contact", url.Values{
		"csrf_token": {token},
		"name":       {" Asha "},
		"company":    {"Acme"},
		"email":      {"asha@acme.test"},
		"message":    {"Hello"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/contact?sent=REF0#contact-ack", resp.Header.Get("Location"))

	subs := sink.all()
	require.Len(t, subs, 1)
	require.Equal(t, inquiry.KindContact, subs[0].Kind)
	require.Equal(t, "Asha", subs[0].Name)

	_, doc = get(t, client, ts.URL+"/contact?sent=REF0", nil)
	require.Contains(t, doc.Find("#contact-ack").Text(), "REF0")
}

func TestContactWithoutTokenIsForbidden(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	ts := testutil.NewServer(t, testutil.WithSink(sink))

	resp, err := noRedirectClient(t).PostForm(ts.URL+"/contact", url.Values{"name": {"x"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Empty(t, sink.all())
}

func TestSubscribeReturnsToSource(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	ts := testutil.NewServer(t, testutil.WithSink(sink))
	client := noRedirectClient(t)

	_, doc := get(t, client, ts.URL+"/services", nil)
	token, _ := doc.Find(`#subscribe-form input[name="csrf_token"]`).Attr("value")
	source, _ := doc.Find(`#subscribe-form input[name="source"]`).Attr("value")
	require.Equal(t, "/services", source)

	post := func(source string) string {
		resp, err := client.PostForm(ts.URL+"/subscribe", url.Values{
			"csrf_token": {token},
			"email":      {"a@b.test"},
			"source":     {source},
		})
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		return resp.Header.Get("Location")
	}
	require.Equal(t, "/services?subscribed=1#subscribe-form", post("/services"))
	require.Equal(t, "/?subscribed=1#subscribe-form", post("https://evil.example/"))
	require.Len(t, sink.all(), 2)
	require.Equal(t, inquiry.KindSubscribe, sink.all()[0].Kind)

	_, doc = get(t, client, ts.URL+"/services?subscribed=1", nil)
	require.Equal(t, 1, doc.Find(".footer-subscribe .notice-success").Length())
}

func TestLocaleSelection(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, doc := get(t, http.DefaultClient, ts.URL+"/?hl=hi", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "hi", resp.Header.Get("Content-Language"))
	lang, _ := doc.Find("html").Attr("lang")
	require.Equal(t, "hi", lang)

	resp, _ = get(t, http.DefaultClient, ts.URL+"/", http.Header{"Accept-Language": {"fr-FR"}})
	require.Equal(t, "en", resp.Header.Get("Content-Language"))
}

func TestHealthzAndAssets(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, "ok", string(body))

	resp, err = http.Get(ts.URL + "/assets/img/fallback.svg")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Image unavailable")
	require.NotEmpty(t, resp.Header.Get("ETag"))
}

func TestRouteTable(t *testing.T) {
	cfg, err := config.Load(context.Background(), config.WithEnvMap(map[string]string{}), config.WithoutSystemEnv(), config.WithEnvFile(""))
	require.NoError(t, err)
	srv, err := httpserver.New(cfg, httpserver.Deps{})
	require.NoError(t, err)

	routes, err := httpserver.RouteTable(srv.Handler)
	require.NoError(t, err)
	require.Contains(t, routes, "GET /services/{id}")
	require.Contains(t, routes, "POST /contact")
	require.Contains(t, routes, "GET /services/results")
}
