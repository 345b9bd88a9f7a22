package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/cms"
	"github.com/hoodion/prefiction-2/internal/components"
	"github.com/hoodion/prefiction-2/internal/config"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/inquiry"
	"github.com/hoodion/prefiction-2/internal/middleware"
	"github.com/hoodion/prefiction-2/internal/requestctx"
	"github.com/hoodion/prefiction-2/internal/seo"
	"github.com/hoodion/prefiction-2/internal/view"
)

// PageChangedEvent is the htmx event fired after every page navigation.
const PageChangedEvent = "page-changed"

// Config wires the dependencies of the site handlers.
type Config struct {
	Catalogs       catalog.Set
	Content        *cms.Client
	Bundle         *i18n.Bundle
	Sink           inquiry.Sink
	SEO            seo.Site
	DetailFallback config.FallbackPolicy
	Logger         *zap.Logger
	Now            func() time.Time
}

// Site renders every page of the marketing site.
type Site struct {
	catalogs catalog.Set
	content  *cms.Client
	bundle   *i18n.Bundle
	sink     inquiry.Sink
	seo      seo.Site
	fallback config.FallbackPolicy
	logger   *zap.Logger
	now      func() time.Time

	home cms.HomeContent
	faq  []cms.FAQItem
}

// New validates the catalogs, loads the static home copy and returns the site.
func New(cfg Config) (*Site, error) {
	for _, kind := range catalog.Kinds {
		if err := catalog.Validate(cfg.Catalogs.ByKind(kind)); err != nil {
			return nil, fmt.Errorf("handlers: %s catalog: %w", kind, err)
		}
	}
	if cfg.Content == nil {
		cfg.Content = cms.NewClient()
	}
	if cfg.Bundle == nil {
		b, err := i18n.Default("en")
		if err != nil {
			return nil, fmt.Errorf("handlers: load locales: %w", err)
		}
		cfg.Bundle = b
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Sink == nil {
		cfg.Sink = inquiry.NewLogSink(cfg.Logger)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.DetailFallback == "" {
		cfg.DetailFallback = config.FallbackFirst
	}

	home, err := cfg.Content.Home()
	if err != nil {
		return nil, fmt.Errorf("handlers: load home content: %w", err)
	}
	faq, err := cfg.Content.FAQ()
	if err != nil {
		return nil, fmt.Errorf("handlers: load faq: %w", err)
	}

	return &Site{
		catalogs: cfg.Catalogs,
		content:  cfg.Content,
		bundle:   cfg.Bundle,
		sink:     cfg.Sink,
		seo:      cfg.SEO,
		fallback: cfg.DetailFallback,
		logger:   cfg.Logger,
		now:      cfg.Now,
		home:     home,
		faq:      faq,
	}, nil
}

// newRouter builds the per-request view router. Every navigation asks htmx
// clients to reset their scroll position.
func (s *Site) newRouter(w http.ResponseWriter, r *http.Request) *view.Router {
	return view.NewRouter(view.WithListener(func(from, to string) {
		if middleware.IsHTMXRequest(r.Context()) {
			middleware.TriggerEvent(w, PageChangedEvent)
		}
		requestctx.Logger(r.Context()).Debug("view changed", zap.String("from", from), zap.String("to", to))
	}))
}

func (s *Site) translator(r *http.Request) i18n.Translator {
	return s.bundle.For(middleware.Lang(r.Context(), s.bundle.Fallback()))
}

// writePage renders content inside the layout. Rendering is buffered so a
// failure still produces a clean 500.
func (s *Site) writePage(w http.ResponseWriter, r *http.Request, status int, page view.Page, meta seo.Meta, content g.Node) {
	cfg := components.PageConfig{
		Meta:       meta,
		T:          s.translator(r),
		Current:    page,
		CSRFToken:  middleware.CSRFTokenFromContext(r.Context()),
		Contact:    s.home.Contact,
		Subscribed: r.URL.Query().Get("subscribed") == "1",
		Year:       s.now().Year(),
	}
	s.writeNode(w, r, status, components.Layout(cfg, content))
}

func (s *Site) writeNode(w http.ResponseWriter, r *http.Request, status int, node g.Node) {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Site) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger := requestctx.Logger(r.Context())
	if logger == requestctx.NoopLogger() {
		logger = s.logger
	}
	if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		logger.Warn("request canceled", zap.Error(err))
	} else {
		logger.Error("render page", zap.Error(err))
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// PanicPage is served by the recovery middleware.
func (s *Site) PanicPage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := components.ErrorPage(s.translator(r)).Render(&buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}
