package view

import (
	"net/url"
	"strings"

	"github.com/hoodion/prefiction-2/internal/catalog"
)

// Kind discriminates the page variants the site can display.
type Kind int

const (
	KindUnknown Kind = iota
	KindHome
	KindServices
	KindServiceDetail
	KindAudience
	KindAudienceDetail
	KindProducts
	KindProductDetail
	KindAbout
	KindContact
)

// Page is a tagged page state. ID is set only for detail kinds; Raw keeps the
// original key of an Unknown page.
type Page struct {
	Kind Kind
	ID   string
	Raw  string
}

// Top-level page constructors.
func Home() Page     { return Page{Kind: KindHome} }
func Services() Page { return Page{Kind: KindServices} }
func Audience() Page { return Page{Kind: KindAudience} }
func Products() Page { return Page{Kind: KindProducts} }
func About() Page    { return Page{Kind: KindAbout} }
func Contact() Page  { return Page{Kind: KindContact} }

// Detail page constructors. The id is not checked against any catalog.
func ServiceDetail(id string) Page  { return Page{Kind: KindServiceDetail, ID: id} }
func AudienceDetail(id string) Page { return Page{Kind: KindAudienceDetail, ID: id} }
func ProductDetail(id string) Page  { return Page{Kind: KindProductDetail, ID: id} }

// Unknown wraps a key the site does not recognise.
func Unknown(raw string) Page { return Page{Kind: KindUnknown, Raw: raw} }

// TopLevel lists the pages reachable from the main navigation, in menu order.
var TopLevel = []Page{Home(), Services(), Audience(), Products(), About(), Contact()}

const (
	keyHome     = "home"
	keyServices = "services"
	keyAudience = "audience"
	keyProducts = "products"
	keyAbout    = "about"
	keyContact  = "contact"
)

// Key returns the legacy string routing key for the page.
func (p Page) Key() string {
	switch p.Kind {
	case KindHome:
		return keyHome
	case KindServices:
		return keyServices
	case KindServiceDetail:
		return detailKey(catalog.KindServices, p.ID)
	case KindAudience:
		return keyAudience
	case KindAudienceDetail:
		return detailKey(catalog.KindAudience, p.ID)
	case KindProducts:
		return keyProducts
	case KindProductDetail:
		return detailKey(catalog.KindProducts, p.ID)
	case KindAbout:
		return keyAbout
	case KindContact:
		return keyContact
	case KindUnknown:
		return p.Raw
	}
	return p.Raw
}

// Path returns the URL path serving the page. Unknown pages have no path.
func (p Page) Path() string {
	switch p.Kind {
	case KindHome:
		return "/"
	case KindServices, KindAudience, KindProducts, KindAbout, KindContact:
		return "/" + p.Key()
	case KindServiceDetail:
		return "/services/" + url.PathEscape(p.ID)
	case KindAudienceDetail:
		return "/audience/" + url.PathEscape(p.ID)
	case KindProductDetail:
		return "/products/" + url.PathEscape(p.ID)
	case KindUnknown:
		return ""
	}
	return ""
}

// IsDetail reports whether the page shows a single catalog entry.
func (p Page) IsDetail() bool {
	switch p.Kind {
	case KindServiceDetail, KindAudienceDetail, KindProductDetail:
		return true
	}
	return false
}

// Catalog returns the catalog kind backing a listing or detail page.
func (p Page) Catalog() (catalog.Kind, bool) {
	switch p.Kind {
	case KindServices, KindServiceDetail:
		return catalog.KindServices, true
	case KindAudience, KindAudienceDetail:
		return catalog.KindAudience, true
	case KindProducts, KindProductDetail:
		return catalog.KindProducts, true
	}
	return "", false
}

// Parent returns the listing a detail page drills down from. Other pages are their own parent.
func (p Page) Parent() Page {
	switch p.Kind {
	case KindServiceDetail:
		return Services()
	case KindAudienceDetail:
		return Audience()
	case KindProductDetail:
		return Products()
	}
	return p
}

// Section returns the top-level page that should be highlighted in navigation.
func (p Page) Section() Page {
	return p.Parent()
}

// ParseKey decodes a legacy routing key. Keys that match no page become Unknown.
func ParseKey(key string) Page {
	switch key {
	case keyHome:
		return Home()
	case keyServices:
		return Services()
	case keyAudience:
		return Audience()
	case keyProducts:
		return Products()
	case keyAbout:
		return About()
	case keyContact:
		return Contact()
	}
	if id, ok := cutDetail(key, catalog.KindServices); ok {
		return ServiceDetail(id)
	}
	if id, ok := cutDetail(key, catalog.KindAudience); ok {
		return AudienceDetail(id)
	}
	if id, ok := cutDetail(key, catalog.KindProducts); ok {
		return ProductDetail(id)
	}
	return Unknown(key)
}

// ParsePath maps a URL path back to a page.
func ParsePath(p string) Page {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return Home()
	}
	section, rest, nested := strings.Cut(trimmed, "/")
	if !nested {
		page := ParseKey(section)
		if page.IsDetail() {
			return Unknown(p)
		}
		return page
	}
	if strings.Contains(rest, "/") {
		return Unknown(p)
	}
	// An escaped slash stays inside the id; the catalog decides whether it exists.
	id, err := url.PathUnescape(rest)
	if err != nil || id == "" {
		return Unknown(p)
	}
	switch section {
	case keyServices:
		return ServiceDetail(id)
	case keyAudience:
		return AudienceDetail(id)
	case keyProducts:
		return ProductDetail(id)
	}
	return Unknown(p)
}

// ServicesURL returns the services listing path carrying filter state.
// A blank query and the "all" category are omitted.
func ServicesURL(query, category string) string {
	v := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		v.Set("q", q)
	}
	if category != "" && category != catalog.CategoryAll {
		v.Set("category", category)
	}
	if len(v) == 0 {
		return Services().Path()
	}
	return Services().Path() + "?" + v.Encode()
}

func detailKey(kind catalog.Kind, id string) string {
	return string(kind) + catalog.DetailSeparator + id
}

func cutDetail(key string, kind catalog.Kind) (string, bool) {
	prefix := string(kind) + catalog.DetailSeparator
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	return strings.TrimPrefix(key, prefix), true
}
