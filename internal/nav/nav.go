package nav

import (
	"github.com/hoodion/prefiction-2/internal/view"
)

// Item represents a top-level navigation item.
type Item struct {
	Page     view.Page
	LabelKey string // i18n key, e.g. "nav.services"
}

// RenderedItem is the view model the layout renders.
type RenderedItem struct {
	Href     string
	Key      string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition, in menu order.
var Main = []Item{
	{Page: view.Home(), LabelKey: "nav.home"},
	{Page: view.Services(), LabelKey: "nav.services"},
	{Page: view.Audience(), LabelKey: "nav.audience"},
	{Page: view.Products(), LabelKey: "nav.products"},
	{Page: view.About(), LabelKey: "nav.about"},
	{Page: view.Contact(), LabelKey: "nav.contact"},
}

// LabelKey returns the nav label key for a top-level page, or "".
func LabelKey(p view.Page) string {
	for _, it := range Main {
		if it.Page.Kind == p.Kind {
			return it.LabelKey
		}
	}
	return ""
}

// Build renders navigation items with active state for the current page.
// Detail pages highlight their listing.
func Build(current view.Page) []RenderedItem {
	section := current.Section()
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Page.Path(),
			Key:      it.Page.Key(),
			LabelKey: it.LabelKey,
			Active:   it.Page.Kind == section.Kind,
		})
	}
	return items
}

// Breadcrumbs builds the trail Home > section > entry. title labels the
// final crumb of a detail page.
func Breadcrumbs(current view.Page, title string) []Crumb {
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: current.Kind == view.KindHome}}
	switch current.Kind {
	case view.KindHome, view.KindUnknown:
		return crumbs
	}

	section := current.Parent()
	crumbs = append(crumbs, Crumb{
		Href:     section.Path(),
		LabelKey: LabelKey(section),
		Active:   !current.IsDetail(),
	})
	if current.IsDetail() {
		if title == "" {
			title = current.ID
		}
		crumbs = append(crumbs, Crumb{Href: current.Path(), Label: title, Active: true})
	}
	return crumbs
}
