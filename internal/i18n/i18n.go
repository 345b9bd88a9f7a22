package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localesFS embed.FS

// Bundle holds UI strings per language.
type Bundle struct {
	dict     map[string]map[string]string
	fallback string
	tags     []language.Tag
	bases    []string
	matcher  language.Matcher
}

// Default loads the embedded locales with the given fallback language.
func Default(fallback string) (*Bundle, error) {
	return Load(localesFS, "locales", fallback, []string{"en", "hi"})
}

// Load reads <dir>/<lang>.json from fsys for each supported language. Only
// the fallback locale is required to exist.
func Load(fsys fs.FS, dir, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{fallback}
	}
	b := &Bundle{
		dict:     map[string]map[string]string{},
		fallback: fallback,
	}
	for _, l := range supported {
		raw, err := fs.ReadFile(fsys, path.Join(dir, l+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", l, err)
		}
		b.dict[l] = m
		b.tags = append(b.tags, tag)
		b.bases = append(b.bases, l)
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	// the matcher returns its first tag when nothing matches
	for i, l := range b.bases {
		if l == fallback && i != 0 {
			b.tags[0], b.tags[i] = b.tags[i], b.tags[0]
			b.bases[0], b.bases[i] = b.bases[i], b.bases[0]
			break
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Supported lists the loaded languages, sorted.
func (b *Bundle) Supported() []string {
	out := append([]string(nil), b.bases...)
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang has a loaded dictionary.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.dict[lang]
	return ok
}

// T returns translation for key in lang, falling back to default and finally key.
func (b *Bundle) T(lang, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Resolve chooses the best supported language for an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No {
		return b.fallback
	}
	return b.bases[idx]
}

// Translator binds a bundle to one language.
type Translator struct {
	bundle *Bundle
	lang   string
}

// For returns a translator for lang. Unsupported languages use the fallback.
func (b *Bundle) For(lang string) Translator {
	if !b.IsSupported(lang) {
		lang = b.fallback
	}
	return Translator{bundle: b, lang: lang}
}

// Lang returns the translator's language.
func (t Translator) Lang() string { return t.lang }

// T translates key.
func (t Translator) T(key string) string {
	if t.bundle == nil {
		return key
	}
	return t.bundle.T(t.lang, key)
}
