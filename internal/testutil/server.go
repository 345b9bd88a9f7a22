package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hoodion/prefiction-2/internal/config"
	"github.com/hoodion/prefiction-2/internal/httpserver"
	"github.com/hoodion/prefiction-2/internal/inquiry"
)

type serverOptions struct {
	env  map[string]string
	deps httpserver.Deps
}

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*serverOptions)

// WithEnv sets configuration variables as if they came from the environment.
func WithEnv(key, value string) ServerOption {
	return func(o *serverOptions) {
		o.env[key] = value
	}
}

// WithSink replaces the inquiry sink.
func WithSink(sink inquiry.Sink) ServerOption {
	return func(o *serverOptions) {
		o.deps.Sink = sink
	}
}

// WithLogger routes server logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(o *serverOptions) {
		o.deps.Logger = logger
	}
}

// WithClock pins the clock used for rendering.
func WithClock(now func() time.Time) ServerOption {
	return func(o *serverOptions) {
		o.deps.Now = now
	}
}

// NewServer constructs an httptest server running the site HTTP stack with
// sensible defaults. The process environment and .env files are ignored.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	o := &serverOptions{env: map[string]string{}}
	for _, opt := range opts {
		opt(o)
	}

	cfg, err := config.Load(context.Background(), config.WithEnvMap(o.env), config.WithoutSystemEnv(), config.WithEnvFile(""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	srv, err := httpserver.New(cfg, o.deps)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
