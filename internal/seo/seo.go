package seo

import "strings"

// OpenGraph carries og:* meta values.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
}

// Twitter carries twitter:* meta values.
type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is the head metadata of a rendered page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []map[string]any
}

// Site describes defaults shared by every page.
type Site struct {
	Name    string
	BaseURL string
	Twitter string
	Image   string
}

// Absolute joins a site-relative path onto the base URL.
func (s Site) Absolute(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimRight(s.BaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Page builds Meta for a page at path. Title is suffixed with the site name
// unless it is empty, in which case the site name alone is used.
func (s Site) Page(title, description, path string) Meta {
	full := s.Name
	if title != "" && title != s.Name {
		full = title + " | " + s.Name
	}
	canonical := s.Absolute(path)
	return Meta{
		Title:       full,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Image:       s.Absolute(s.Image),
			Type:        "website",
			URL:         canonical,
		},
		Twitter: Twitter{
			Card:  "summary_large_image",
			Site:  s.Twitter,
			Image: s.Absolute(s.Image),
		},
	}
}

// WithImage overrides the social preview image.
func (m Meta) WithImage(url string) Meta {
	if url == "" {
		return m
	}
	m.OG.Image = url
	m.Twitter.Image = url
	return m
}

// WithJSONLD appends structured data blocks.
func (m Meta) WithJSONLD(blocks ...map[string]any) Meta {
	m.JSONLD = append(append([]map[string]any(nil), m.JSONLD...), blocks...)
	return m
}

// NoIndex marks the page as not indexable.
func (m Meta) NoIndex() Meta {
	m.Robots = "noindex"
	return m
}
