package httpserver

import (
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/cms"
	"github.com/hoodion/prefiction-2/internal/config"
	"github.com/hoodion/prefiction-2/internal/handlers"
	"github.com/hoodion/prefiction-2/internal/i18n"
	"github.com/hoodion/prefiction-2/internal/inquiry"
	custommw "github.com/hoodion/prefiction-2/internal/middleware"
	"github.com/hoodion/prefiction-2/internal/observability"
	"github.com/hoodion/prefiction-2/internal/seo"
	"github.com/hoodion/prefiction-2/public"
)

const (
	siteName    = "PREFICTION"
	siteTwitter = "@prefiction"
	siteImage   = "/assets/img/og.svg"
)

// Deps are the collaborators of the HTTP server. Zero values are replaced
// with production defaults.
type Deps struct {
	Logger   *zap.Logger
	Catalogs *catalog.Set
	Content  *cms.Client
	Bundle   *i18n.Bundle
	Sink     inquiry.Sink
	Static   fs.FS
	Now      func() time.Time
}

// New constructs the HTTP server with middleware stack, embedded assets and
// the site routes.
func New(cfg config.Config, deps Deps) (*http.Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalogs := deps.Catalogs
	if catalogs == nil {
		set, err := catalog.Load()
		if err != nil {
			return nil, fmt.Errorf("httpserver: load catalogs: %w", err)
		}
		catalogs = &set
	}

	bundle := deps.Bundle
	if bundle == nil {
		b, err := i18n.Default(cfg.Site.DefaultLang)
		if err != nil {
			return nil, fmt.Errorf("httpserver: load locales: %w", err)
		}
		bundle = b
	}

	content := deps.Content
	if content == nil {
		content = cms.NewClient(
			cms.WithContentDir(cfg.Content.Dir),
			cms.WithCacheTTL(cfg.Content.CacheTTL),
		)
	}

	static := deps.Static
	if static == nil {
		s, err := public.StaticFS()
		if err != nil {
			return nil, fmt.Errorf("httpserver: embed static: %w", err)
		}
		static = s
	}

	site, err := handlers.New(handlers.Config{
		Catalogs: *catalogs,
		Content:  content,
		Bundle:   bundle,
		Sink:     deps.Sink,
		SEO: seo.Site{
			Name:    siteName,
			BaseURL: cfg.Site.BaseURL,
			Twitter: siteTwitter,
			Image:   siteImage,
		},
		DetailFallback: cfg.Site.DetailFallback,
		Logger:         logger,
		Now:            deps.Now,
	})
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	router.Use(chimw.RealIP)
	router.Use(observability.TraceMiddleware())
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware(logger, http.HandlerFunc(site.PanicPage)))
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(cfg.Server.RequestTimeout))

	router.Get("/healthz", handlers.Healthz)
	router.Handle("/assets/*", custommw.AssetsWithCache(static, "/assets"))

	pages := chi.Chain(
		custommw.HTMX(),
		custommw.Locale(bundle),
		custommw.VaryLocale,
		custommw.CSRF(custommw.CSRFConfig{Secure: !cfg.Server.IsLocal()}),
	)
	router.Group(func(r chi.Router) {
		r.Use(pages...)
		mountSiteRoutes(r, site)
	})
	router.NotFound(pages.HandlerFunc(site.NotFound).ServeHTTP)

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          zap.NewStdLog(logger.Named("http")),
	}, nil
}

func mountSiteRoutes(r chi.Router, site *handlers.Site) {
	r.Get("/", site.Page)
	r.Get("/services", site.Page)
	r.Get("/services/{id}", site.Page)
	r.Get("/audience", site.Page)
	r.Get("/audience/{id}", site.Page)
	r.Get("/products", site.Page)
	r.Get("/products/{id}", site.Page)
	r.Get("/about", site.Page)
	r.Get("/contact", site.Page)
	r.Get("/go", site.Go)
	RegisterFragment(r, "/services/results", site.ServiceResults, site.NotFound)

	r.Post("/contact", site.SubmitContact)
	r.Post("/subscribe", site.Subscribe)
}

// RegisterFragment registers a GET handler intended for htmx fragment
// rendering. Direct navigation is served by notFound.
func RegisterFragment(r chi.Router, pattern string, handler, notFound http.HandlerFunc) {
	r.With(custommw.RequireHTMX(notFound)).Get(pattern, handler)
}

// RouteTable lists "METHOD pattern" for every route registered on handler.
func RouteTable(handler http.Handler) ([]string, error) {
	routes, ok := handler.(chi.Routes)
	if !ok {
		return nil, fmt.Errorf("httpserver: handler %T is not a chi router", handler)
	}
	var out []string
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, method+" "+route)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
