package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hoodion/prefiction-2/internal/i18n"
)

const (
	localeContextKey contextKey = "locale.lang"

	// LocaleParam is the query parameter and cookie carrying an explicit language choice.
	LocaleParam = "hl"
)

// Locale resolves the preferred language from the `hl` query parameter, the
// `hl` cookie, then Accept-Language. Unsupported explicit choices are ignored.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(LocaleParam))); q != "" && bundle.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     LocaleParam,
					Value:    q,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			} else if c, err := r.Cookie(LocaleParam); err == nil && bundle.IsSupported(strings.ToLower(c.Value)) {
				lang = strings.ToLower(c.Value)
			} else {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}

			w.Header().Set("Content-Language", lang)
			ctx := context.WithValue(r.Context(), localeContextKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Lang returns the language stored by Locale, or fallback when the request
// bypassed it.
func Lang(ctx context.Context, fallback string) string {
	if v, ok := ctx.Value(localeContextKey).(string); ok && v != "" {
		return v
	}
	return fallback
}

// VaryLocale adds Vary headers so caches keep per-language variants apart.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		w.Header().Add("Vary", "Cookie")
		next.ServeHTTP(w, r)
	})
}
