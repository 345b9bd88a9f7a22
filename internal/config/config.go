package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile           = ".env"
	defaultPort              = "8080"
	defaultEnvironment       = "local"
	defaultBaseURL           = "http://localhost:8080"
	defaultReadHeaderTimeout = 10 * time.Second
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultRequestTimeout    = 30 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultContentCacheTTL   = 5 * time.Minute
	defaultLang              = "en"
	defaultLogLevel          = "info"
)

// FallbackPolicy selects what a detail page shows for an unknown id.
type FallbackPolicy string

const (
	// FallbackFirst renders the first catalog entry instead.
	FallbackFirst FallbackPolicy = "first"
	// FallbackNotFound answers 404.
	FallbackNotFound FallbackPolicy = "notfound"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Content ContentConfig
	Log     LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port              string
	Environment       string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// IsLocal reports whether the server runs in local development mode.
func (s ServerConfig) IsLocal() bool {
	return s.Environment == defaultEnvironment || s.Environment == "dev"
}

// SiteConfig holds public site behaviour.
type SiteConfig struct {
	BaseURL        string
	DetailFallback FallbackPolicy
	DefaultLang    string
}

// ContentConfig controls CMS lookups.
type ContentConfig struct {
	Dir      string
	CacheTTL time.Duration
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides. Empty disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the .env file, the process
// environment and an explicit map, in increasing order of precedence.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	p := parser{lookup: lookup}
	cfg := Config{
		Server: ServerConfig{
			Port:              p.string("PREFICTION_WEB_PORT", p.string("PORT", defaultPort)),
			Environment:       strings.ToLower(p.string("PREFICTION_WEB_ENV", defaultEnvironment)),
			ReadHeaderTimeout: p.duration("PREFICTION_WEB_READ_HEADER_TIMEOUT", defaultReadHeaderTimeout),
			ReadTimeout:       p.duration("PREFICTION_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      p.duration("PREFICTION_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       p.duration("PREFICTION_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout:    p.duration("PREFICTION_WEB_REQUEST_TIMEOUT", defaultRequestTimeout),
			ShutdownTimeout:   p.duration("PREFICTION_WEB_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Site: SiteConfig{
			BaseURL:        strings.TrimRight(p.string("PREFICTION_WEB_BASE_URL", defaultBaseURL), "/"),
			DetailFallback: FallbackPolicy(strings.ToLower(p.string("PREFICTION_WEB_DETAIL_FALLBACK", string(FallbackFirst)))),
			DefaultLang:    strings.ToLower(p.string("PREFICTION_WEB_DEFAULT_LANG", defaultLang)),
		},
		Content: ContentConfig{
			Dir:      p.string("PREFICTION_WEB_CONTENT_DIR", ""),
			CacheTTL: p.duration("PREFICTION_WEB_CONTENT_CACHE_TTL", defaultContentCacheTTL),
		},
		Log: LogConfig{
			Level: strings.ToLower(p.string("LOG_LEVEL", defaultLogLevel)),
		},
	}

	if err := validateConfig(cfg, p.invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	fields := append([]string(nil), invalid...)

	if strings.TrimSpace(cfg.Server.Port) == "" {
		fields = append(fields, "Server.Port")
	} else if n, err := strconv.Atoi(cfg.Server.Port); err != nil || n <= 0 || n > 65535 {
		fields = append(fields, "Server.Port")
	}
	for name, d := range map[string]time.Duration{
		"Server.ReadHeaderTimeout": cfg.Server.ReadHeaderTimeout,
		"Server.ReadTimeout":       cfg.Server.ReadTimeout,
		"Server.WriteTimeout":      cfg.Server.WriteTimeout,
		"Server.IdleTimeout":       cfg.Server.IdleTimeout,
		"Server.RequestTimeout":    cfg.Server.RequestTimeout,
		"Server.ShutdownTimeout":   cfg.Server.ShutdownTimeout,
		"Content.CacheTTL":         cfg.Content.CacheTTL,
	} {
		if d <= 0 {
			fields = append(fields, name)
		}
	}
	switch cfg.Site.DetailFallback {
	case FallbackFirst, FallbackNotFound:
	default:
		fields = append(fields, "Site.DetailFallback")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		fields = append(fields, "Site.BaseURL")
	}
	if cfg.Site.DefaultLang == "" {
		fields = append(fields, "Site.DefaultLang")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		fields = append(fields, "Log.Level")
	}

	if len(fields) > 0 {
		sort.Strings(fields)
		return &ValidationError{fields: fields}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

// parser reads typed values and remembers keys whose values did not parse.
type parser struct {
	lookup  func(string) (string, bool)
	invalid []string
}

func (p *parser) string(key, fallback string) string {
	if value, ok := p.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	value, ok := p.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return d
}
