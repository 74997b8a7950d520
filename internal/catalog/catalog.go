// Package catalog holds the static product category data rendered on the
// public pages.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// NaturalStones is the category whose gallery is curated from the admin area.
const NaturalStones = "natural-stones"

type Image struct {
	Src   string `yaml:"src" json:"src"`
	Title string `yaml:"title" json:"title"`
}

type Category struct {
	Slug        string   `yaml:"slug"`
	Name        string   `yaml:"name"`
	Brochure    string   `yaml:"brochure"`
	Hero        string   `yaml:"hero"`
	Headline    []string `yaml:"headline"`
	Subheading  []string `yaml:"subheading"`
	Description string   `yaml:"description"`
	Gallery     []Image  `yaml:"gallery"`
}

// Path is the public route of the category page.
func (c Category) Path() string {
	return "/" + c.Slug
}

type Home struct {
	Headline  string `yaml:"headline"`
	Tagline   string `yaml:"tagline"`
	About     string `yaml:"about"`
	BrandNote string `yaml:"brand_note"`
}

type Catalog struct {
	Home       Home       `yaml:"home"`
	Categories []Category `yaml:"categories"`

	bySlug map[string]int
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Categories) == 0 {
		return nil, errors.New("catalog has no categories")
	}
	c.bySlug = make(map[string]int, len(c.Categories))
	for i, cat := range c.Categories {
		slug := strings.TrimSpace(cat.Slug)
		if slug == "" {
			return nil, fmt.Errorf("category %d has no slug", i)
		}
		if _, dup := c.bySlug[slug]; dup {
			return nil, fmt.Errorf("duplicate category %q", slug)
		}
		c.bySlug[slug] = i
	}
	return &c, nil
}

// Category looks up a category by slug.
func (c *Catalog) Category(slug string) (Category, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Category{}, false
	}
	return c.Categories[i], true
}
