package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

var dataFiles = map[Kind]string{
	KindServices: "data/services.yaml",
	KindAudience: "data/audience.yaml",
	KindProducts: "data/products.yaml",
}

// Set groups the three site catalogs.
type Set struct {
	Services *Catalog
	Audience *Catalog
	Products *Catalog
}

// ByKind returns the catalog for kind, or nil when kind is unknown.
func (s Set) ByKind(kind Kind) *Catalog {
	switch kind {
	case KindServices:
		return s.Services
	case KindAudience:
		return s.Audience
	case KindProducts:
		return s.Products
	}
	return nil
}

// Parse decodes a YAML list of entries and validates the result.
func Parse(kind Kind, raw []byte) (*Catalog, error) {
	var entries []Entry
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("catalog %s: decode: %w", kind, err)
	}
	c := New(kind, entries)
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFS reads and validates all catalogs from fsys using the standard file layout.
func LoadFS(fsys fs.FS) (Set, error) {
	var set Set
	for _, kind := range Kinds {
		raw, err := fs.ReadFile(fsys, dataFiles[kind])
		if err != nil {
			return Set{}, fmt.Errorf("catalog %s: read: %w", kind, err)
		}
		c, err := Parse(kind, raw)
		if err != nil {
			return Set{}, err
		}
		switch kind {
		case KindServices:
			set.Services = c
		case KindAudience:
			set.Audience = c
		case KindProducts:
			set.Products = c
		}
	}
	return set, nil
}

// Load returns the catalogs compiled into the binary.
func Load() (Set, error) {
	return LoadFS(dataFS)
}

// MustLoad is Load for package-level initialisation; it panics on invalid data.
func MustLoad() Set {
	set, err := Load()
	if err != nil {
		panic(err)
	}
	return set
}
