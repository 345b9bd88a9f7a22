package cms

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gopkg.in/yaml.v3"
)

const metricNamespace = "github.com/hoodion/prefiction-2/internal/cms"

// ErrNotFound is returned when a content resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

//go:embed content
var embedded embed.FS

// ContentPage is a localized static page rendered from markdown.
type ContentPage struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      string // sanitised HTML
	Format    string // "markdown" (default) or "html"
	UpdatedAt time.Time
	Facts     []Fact
	Team      []Member
	SEO       ContentSEO
}

// Fact is a labelled value shown beside a page body.
type Fact struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Member is a person listed on a page.
type Member struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// Initial returns the first letter of the member's name.
func (m Member) Initial() string {
	for _, r := range m.Name {
		return string(r)
	}
	return ""
}

// ContentSEO holds optional metadata overrides for static pages.
type ContentSEO struct {
	Title       string
	Description string
	OGImage     string
}

type contentFrontMatter struct {
	Title     string                `yaml:"title"`
	Summary   string                `yaml:"summary"`
	Lang      string                `yaml:"lang"`
	Format    string                `yaml:"format"`
	UpdatedAt string                `yaml:"updated_at"`
	Facts     []Fact                `yaml:"facts"`
	Team      []Member              `yaml:"team"`
	SEO       contentFrontMatterSEO `yaml:"seo"`
}

type contentFrontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

const (
	defaultContentFormat = "markdown"
	defaultLang          = "en"
	defaultCacheTTL      = 5 * time.Minute
)

type contentCacheEntry struct {
	page    ContentPage
	expires time.Time
}

// Client reads pages, FAQ and home copy from an optional override directory
// and then from the content compiled into the binary.
type Client struct {
	sources []fs.FS
	ttl     time.Duration
	now     func() time.Time
	md      goldmark.Markdown
	policy  *bluemonday.Policy
	meter   metric.Meter
	lookups metric.Int64Counter

	mu    sync.RWMutex
	items map[string]contentCacheEntry
}

// Option configures a Client.
type Option func(*Client)

// WithContentDir consults dir before the embedded content. Empty dir is ignored.
func WithContentDir(dir string) Option {
	return func(c *Client) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		c.sources = append([]fs.FS{os.DirFS(dir)}, c.sources...)
	}
}

// WithFS consults fsys before the embedded content. Paths are relative to its root.
func WithFS(fsys fs.FS) Option {
	return func(c *Client) {
		if fsys != nil {
			c.sources = append([]fs.FS{fsys}, c.sources...)
		}
	}
}

// WithCacheTTL overrides the in-memory cache duration.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMeter injects a custom OpenTelemetry meter.
func WithMeter(m metric.Meter) Option {
	return func(c *Client) {
		c.meter = m
	}
}

// NewClient builds a content client.
func NewClient(opts ...Option) *Client {
	root, err := fs.Sub(embedded, "content")
	if err != nil {
		panic(err)
	}
	c := &Client{
		sources: []fs.FS{root},
		ttl:     defaultCacheTTL,
		now:     time.Now,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
		),
		policy: newContentHTMLPolicy(),
		items:  map[string]contentCacheEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.meter == nil {
		c.meter = otel.GetMeterProvider().Meter(metricNamespace)
	}
	lookups, err := c.meter.Int64Counter(
		"cms.page.cache_lookups",
		metric.WithDescription("Content page cache lookups by result"),
	)
	if err != nil {
		otel.Handle(err)
	}
	c.lookups = lookups
	return c
}

func newContentHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// GetContentPage returns the page for slug in lang, falling back to English.
func (c *Client) GetContentPage(ctx context.Context, slug, lang string) (ContentPage, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return ContentPage{}, ErrNotFound
	}
	lang = normalizeLang(lang)

	cacheKey := lang + "|" + slug
	page, ok := c.cachedContent(cacheKey)
	c.recordLookup(ctx, ok)
	if ok {
		return page, nil
	}

	priority := []string{lang}
	if lang != defaultLang {
		priority = append(priority, defaultLang)
	}
	for _, candidate := range priority {
		if err := ctx.Err(); err != nil {
			return ContentPage{}, err
		}
		raw, err := c.readFile(path.Join("pages", candidate, slug+".md"))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return ContentPage{}, err
		}
		page, err := c.parseContentPage(raw, slug, candidate)
		if err != nil {
			return ContentPage{}, err
		}
		c.storeContent(cacheKey, page)
		return cloneContentPage(page), nil
	}
	return ContentPage{}, ErrNotFound
}

// readFile returns the first match across sources.
func (c *Client) readFile(name string) ([]byte, error) {
	for _, src := range c.sources {
		raw, err := fs.ReadFile(src, name)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cms: read %s: %w", name, err)
		}
	}
	return nil, fs.ErrNotExist
}

func (c *Client) parseContentPage(data []byte, slug, lang string) (ContentPage, error) {
	fm, body := splitFrontMatter(string(data))
	front := contentFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return ContentPage{}, fmt.Errorf("cms: parse front matter %s/%s: %w", lang, slug, err)
		}
	}
	page := ContentPage{
		Slug:    slug,
		Lang:    firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Format:  firstNonEmpty(strings.TrimSpace(front.Format), defaultContentFormat),
		Facts:   append([]Fact(nil), front.Facts...),
		Team:    append([]Member(nil), front.Team...),
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
		UpdatedAt: parseContentDate(front.UpdatedAt),
	}
	rendered, err := c.render(page.Format, body)
	if err != nil {
		return ContentPage{}, fmt.Errorf("cms: render %s/%s: %w", lang, slug, err)
	}
	page.Body = rendered
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

// render converts body to sanitised HTML.
func (c *Client) render(format, body string) (string, error) {
	switch format {
	case "html":
		return c.policy.Sanitize(body), nil
	case defaultContentFormat:
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(body), &buf); err != nil {
			return "", err
		}
		return c.policy.Sanitize(buf.String()), nil
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if base, _, ok := strings.Cut(lang, "-"); ok {
		lang = base
	}
	if lang == "" || strings.ContainsAny(lang, `./\`) {
		return defaultLang
	}
	return lang
}

func (c *Client) cachedContent(key string) (ContentPage, bool) {
	now := c.now()
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || now.After(entry.expires) {
		return ContentPage{}, false
	}
	return cloneContentPage(entry.page), true
}

func (c *Client) storeContent(key string, page ContentPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = contentCacheEntry{
		page:    cloneContentPage(page),
		expires: c.now().Add(c.ttl),
	}
}

func (c *Client) recordLookup(ctx context.Context, hit bool) {
	if c.lookups == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// Purge drops every cached page.
func (c *Client) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string]contentCacheEntry{}
}

func cloneContentPage(src ContentPage) ContentPage {
	cp := src
	cp.Facts = append([]Fact(nil), src.Facts...)
	cp.Team = append([]Member(nil), src.Team...)
	return cp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
