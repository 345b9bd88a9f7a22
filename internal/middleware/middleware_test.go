package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/hoodion/prefiction-2/internal/i18n"
)

func TestHTMXInfo(t *testing.T) {
	var got HTMXInfo
	h := HTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = HTMXInfoFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/services/results", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", "service-results")
	req.Header.Set("HX-Trigger", "service-search")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, got.IsHTMX)
	require.True(t, got.Partial())
	require.Equal(t, "service-results", got.Target)
	require.Equal(t, "service-search", got.TriggerID)
	require.Contains(t, rec.Header().Values("Vary"), "HX-Request")

	req.Header.Set("HX-Boosted", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, got.IsHTMX)
	require.False(t, got.Partial(), "boosted navigation renders the full page")
}

func TestRequireHTMX(t *testing.T) {
	fragment := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := HTMX()(RequireHTMX(nil)(fragment))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fragment", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	styled := HTMX()(RequireHTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<h1>Page not found</h1>"))
	}))(fragment))
	rec = httptest.NewRecorder()
	styled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fragment", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "<h1>Page not found</h1>", rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/fragment", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTriggerEventDeduplicates(t *testing.T) {
	rec := httptest.NewRecorder()
	TriggerEvent(rec, "page-changed")
	TriggerEvent(rec, "page-changed")
	TriggerEvent(rec, "filters-changed")
	require.Equal(t, "page-changed, filters-changed", rec.Header().Get("HX-Trigger"))

	PushURL(rec, "/services?q=seo")
	require.Equal(t, "/services?q=seo", rec.Header().Get("HX-Push-Url"))
}

func csrfHandler() http.Handler {
	return CSRF(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(CSRFTokenFromContext(r.Context())))
	}))
}

func TestCSRFIssuesTokenOnSafeRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "csrf_token", cookies[0].Name)
	require.Equal(t, cookies[0].Value, rec.Body.String())
	require.True(t, cookies[0].HttpOnly)
}

func TestCSRFRejectsMissingOrMismatchedToken(t *testing.T) {
	h := csrfHandler()

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=A"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code, "no cookie")

	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("csrf_token=wrong"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "right"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code, "mismatch")
}

func TestCSRFAcceptsFormFieldAndHeader(t *testing.T) {
	h := csrfHandler()

	form := url.Values{"csrf_token": {"tok"}, "email": {"a@b.co"}}
	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a@b.co", req.PostFormValue("email"), "form stays readable downstream")

	req = httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	req.Header.Set("X-CSRF-Token", "tok")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func localeHandler(t *testing.T) http.Handler {
	t.Helper()
	bundle, err := i18n.Default("en")
	require.NoError(t, err)
	return Locale(bundle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(Lang(r.Context(), "xx")))
	}))
}

func TestLocaleResolution(t *testing.T) {
	h := localeHandler(t)

	cases := []struct {
		name   string
		target string
		accept string
		cookie string
		want   string
	}{
		{name: "default", target: "/", want: "en"},
		{name: "accept language", target: "/", accept: "hi-IN,hi;q=0.9", want: "hi"},
		{name: "cookie beats header", target: "/", accept: "en", cookie: "hi", want: "hi"},
		{name: "query beats cookie", target: "/?hl=en", cookie: "hi", want: "en"},
		{name: "unsupported query ignored", target: "/?hl=fr", accept: "hi", want: "hi"},
		{name: "unsupported cookie ignored", target: "/", cookie: "de", want: "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "hl", Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Body.String())
			require.Equal(t, tc.want, rec.Header().Get("Content-Language"))
		})
	}
}

func TestLocaleQueryPersistsCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	localeHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?hl=hi", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "hl", cookies[0].Name)
	require.Equal(t, "hi", cookies[0].Value)
}

func TestLangWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "en", Lang(req.Context(), "en"))
}

func TestVaryLocale(t *testing.T) {
	rec := httptest.NewRecorder()
	VaryLocale(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"Accept-Language", "Cookie"}, rec.Header().Values("Vary"))
}

func TestAssetsWithCache(t *testing.T) {
	fsys := fstest.MapFS{
		"css/site.css": {Data: []byte("body{margin:0}")},
	}
	h := AssetsWithCache(fsys, "/assets")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{margin:0}", rec.Body.String())
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")
	etag := rec.Header().Get("ETag")
	require.True(t, strings.HasPrefix(etag, `W/"`))

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.js", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
